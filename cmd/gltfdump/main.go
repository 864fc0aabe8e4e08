package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Carmen-Shannon/oxy-gltf/engine/config"
	"github.com/Carmen-Shannon/oxy-gltf/engine/loader"
	"github.com/Carmen-Shannon/oxy-gltf/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gltf/engine/watcher"

	"github.com/charmbracelet/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML or YAML config file")
	workers := flag.Int("workers", 0, "Parallel binding decoders (default 1)")
	layout := flag.String("layout", "", "Accessor addressing: spec or legacy (default spec)")
	bindings := flag.String("bindings", "", "Same-name bindings across primitives: last or concat (default last)")
	strict := flag.Bool("strict", false, "Fail on unrecognized component types instead of skipping them")
	indexType := flag.String("index-type", "", "Index element type: int, uint16 or uint32 (default uint32)")
	positionType := flag.String("position-type", "", "Position element type: float32 or float64 (default float32)")
	watch := flag.Bool("watch", false, "Re-decode whenever the asset or its companion buffer changes")
	stats := flag.Bool("stats", false, "Log decode time and allocations")
	interactive := flag.Bool("i", false, "Pick the asset with an interactive file browser")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn or error (default info)")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "gltfdump",
	})

	var cfg config.Config
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logger.Fatal("failed to load config", "err", err)
		}
	}
	cfg.Resolve(config.Flags{
		Workers:      *workers,
		Layout:       *layout,
		Bindings:     *bindings,
		Strict:       *strict,
		IndexType:    *indexType,
		PositionType: *positionType,
		LogLevel:     *logLevel,
	})

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal("invalid log level", "level", cfg.LogLevel)
	}
	logger.SetLevel(level)

	opts, err := cfg.DecodeOptions()
	if err != nil {
		logger.Fatal("invalid decode options", "err", err)
	}
	decode, ok := lookupDecoder(cfg.IndexType, cfg.PositionType)
	if !ok {
		logger.Fatal("unsupported element types", "index", cfg.IndexType, "position", cfg.PositionType)
	}

	l := loader.NewLoader(loader.WithDecodeOptions(opts), loader.WithLogger(logger))

	path := flag.Arg(0)
	if *interactive || path == "" {
		path, err = loader.SelectFile(newPicker("."))
		if errors.Is(err, loader.ErrNoFileSelected) {
			fmt.Println("No file selected.")
			return
		}
		if err != nil {
			logger.Fatal("file picker failed", "err", err)
		}
	}

	r := &runner{loader: l, decode: decode, logger: logger, stats: *stats}
	asset, err := r.run(path)
	if err != nil {
		logger.Error("decode failed", "err", err)
		os.Exit(1)
	}

	if !*watch {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := r.watch(ctx, path, asset); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("watch failed", "err", err)
	}
}

// runner opens, decodes and prints one asset.
type runner struct {
	loader loader.Loader
	decode decodeFunc
	logger *log.Logger
	stats  bool
}

func (r *runner) run(path string) (*loader.Asset, error) {
	var p *profiler.Profiler
	if r.stats {
		p = profiler.NewProfiler()
		p.Start()
	}

	asset, err := r.loader.Open(path)
	if err != nil {
		return nil, err
	}
	s, err := r.decode(r.loader, asset)
	if err != nil {
		return asset, err
	}

	if p != nil {
		profiler.Log(r.logger, "decode stats", p.Stop())
	}
	printSummary(os.Stdout, s)
	return asset, nil
}

func (r *runner) watch(ctx context.Context, path string, asset *loader.Asset) error {
	w, err := watcher.New(watcher.DefaultDebounce)
	if err != nil {
		return err
	}
	if err := w.Add(path); err != nil {
		return err
	}
	if companion, ok := asset.CompanionPath(); ok {
		if err := w.Add(companion); err != nil {
			return err
		}
	}

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	r.logger.Info("watching for changes", "path", path)
	errs := w.Errors()
	for {
		select {
		case e, ok := <-w.Events():
			if !ok {
				return <-done
			}
			r.logger.Info("change detected", "path", e.Path)
			if _, err := r.run(path); err != nil {
				r.logger.Error("decode failed", "err", err)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			r.logger.Warn("watcher error", "err", err)
		}
	}
}
