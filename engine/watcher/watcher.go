package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when New is given a non-positive debounce.
const DefaultDebounce = 100 * time.Millisecond

// Event reports that a watched file was written or replaced.
type Event struct {
	Path string
}

// Watcher reports changes to a set of files. fsnotify watches their directories,
// so editors that save by rename are still seen.
type Watcher struct {
	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]struct{}

	debounce time.Duration
	fsnotify *fsnotify.Watcher
	events   chan Event
	errors   chan error
	isClosed bool
}

// New creates a Watcher that coalesces bursts of changes separated by less than debounce.
//
// Parameters:
//   - debounce: the quiet period before an event is emitted
//
// Returns:
//   - *Watcher: the watcher
//   - error: error if the fsnotify watcher cannot be created
func New(debounce time.Duration) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
		debounce: debounce,
		fsnotify: fsWatch,
		events:   make(chan Event, 16),
		errors:   make(chan error, 1),
	}, nil
}

// Add starts watching path.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.isClosed {
		return errors.New("watcher already closed")
	}

	w.files[abs] = struct{}{}
	dir := filepath.Dir(abs)
	if _, ok := w.dirs[dir]; ok {
		return nil
	}
	if err := w.fsnotify.Add(dir); err != nil {
		delete(w.files, abs)
		return err
	}
	w.dirs[dir] = struct{}{}
	return nil
}

// Events returns the channel debounced events are delivered on. It is closed when Run returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel fsnotify errors are delivered on. Errors are dropped while the channel is full.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Run processes filesystem notifications until ctx is done, then closes the Watcher.
//
// Parameters:
//   - ctx: cancels the loop
//
// Returns:
//   - error: ctx.Err() once cancelled
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	pending := make(map[string]struct{})

	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return nil
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 || !w.watching(e.Name) {
				continue
			}
			pending[filepath.Clean(e.Name)] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return nil
			}
			select {
			case w.errors <- err:
			default:
			}

		case <-timer.C:
			for _, path := range sortedPaths(pending) {
				select {
				case w.events <- Event{Path: path}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			clear(pending)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Watcher) watching(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[filepath.Clean(name)]
	return ok
}

func (w *Watcher) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.isClosed {
		return
	}
	w.isClosed = true
	w.fsnotify.Close()
	close(w.events)
	close(w.errors)
}

func sortedPaths(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
