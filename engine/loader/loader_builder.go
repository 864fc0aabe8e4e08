package loader

import (
	"io/fs"

	"github.com/charmbracelet/log"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers is an option builder that sets how many workers decode bindings in parallel.
// Values of 1 or less decode serially.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that applies the workers option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.opts.Workers = n
	}
}

// WithLayout is an option builder that sets the accessor addressing mode.
//
// Parameters:
//   - layout: LayoutSpec or LayoutLegacy
//
// Returns:
//   - LoaderBuilderOption: a function that applies the layout option to a loader
func WithLayout(layout Layout) LoaderBuilderOption {
	return func(l *loader) {
		l.opts.Layout = layout
	}
}

// WithBindingPolicy is an option builder that sets how same-named bindings across primitives combine.
//
// Parameters:
//   - policy: BindingLastWins or BindingConcatenate
//
// Returns:
//   - LoaderBuilderOption: a function that applies the binding policy to a loader
func WithBindingPolicy(policy BindingPolicy) LoaderBuilderOption {
	return func(l *loader) {
		l.opts.Bindings = policy
	}
}

// WithStrictComponentTypes is an option builder that makes unrecognized component types fatal.
//
// Parameters:
//   - strict: true to fail on an unrecognized component type instead of skipping the binding
//
// Returns:
//   - LoaderBuilderOption: a function that applies the component type policy to a loader
func WithStrictComponentTypes(strict bool) LoaderBuilderOption {
	return func(l *loader) {
		if strict {
			l.opts.ComponentTypes = ComponentTypeStrict
		} else {
			l.opts.ComponentTypes = ComponentTypeSkip
		}
	}
}

// WithDecodeOptions is an option builder that replaces all decode options at once.
//
// Parameters:
//   - opts: the decode options
//
// Returns:
//   - LoaderBuilderOption: a function that applies the decode options to a loader
func WithDecodeOptions(opts DecodeOptions) LoaderBuilderOption {
	return func(l *loader) {
		l.opts = opts
	}
}

// WithFS is an option builder that reads assets and companion buffers from fsys instead of the host filesystem.
//
// Parameters:
//   - fsys: the filesystem to read from
//
// Returns:
//   - LoaderBuilderOption: a function that applies the filesystem option to a loader
func WithFS(fsys fs.FS) LoaderBuilderOption {
	return func(l *loader) {
		l.fsys = fsys
	}
}

// WithLogger is an option builder that sets the logger the Loader reports to.
//
// Parameters:
//   - logger: the logger instance
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger *log.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}
