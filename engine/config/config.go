package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/loader"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults applied by Resolve when neither the file nor a flag sets a value.
const (
	DefaultLayout       = "spec"
	DefaultBindings     = "last"
	DefaultIndexType    = "uint32"
	DefaultPositionType = "float32"
	DefaultLogLevel     = "info"
	DefaultWorkers      = 1
)

// Config holds decode and CLI settings read from a TOML or YAML file.
type Config struct {
	// Decode settings
	Workers  int    `toml:"workers" yaml:"workers"`
	Layout   string `toml:"layout" yaml:"layout"`
	Bindings string `toml:"bindings" yaml:"bindings"`
	Strict   bool   `toml:"strict" yaml:"strict"`

	// Output element types
	IndexType    string `toml:"index_type" yaml:"index_type"`
	PositionType string `toml:"position_type" yaml:"position_type"`

	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the file's value in place.
type Flags struct {
	Workers      int
	Layout       string
	Bindings     string
	Strict       bool
	IndexType    string
	PositionType string
	LogLevel     string
}

// Load reads a config file. The format is chosen by extension: .toml, .yaml or .yml.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: unsupported format %q for %s", ext, path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies flags over the file values and fills remaining empty fields with defaults.
func (c *Config) Resolve(flags Flags) {
	c.Workers = common.Coalesce(flags.Workers, c.Workers, DefaultWorkers)
	c.Layout = common.Coalesce(flags.Layout, c.Layout, DefaultLayout)
	c.Bindings = common.Coalesce(flags.Bindings, c.Bindings, DefaultBindings)
	c.IndexType = common.Coalesce(flags.IndexType, c.IndexType, DefaultIndexType)
	c.PositionType = common.Coalesce(flags.PositionType, c.PositionType, DefaultPositionType)
	c.LogLevel = common.Coalesce(flags.LogLevel, c.LogLevel, DefaultLogLevel)
	c.Strict = c.Strict || flags.Strict
}

// DecodeOptions converts the resolved settings into loader options.
//
// Returns:
//   - loader.DecodeOptions: the decode options
//   - error: error if layout or bindings name an unknown mode
func (c *Config) DecodeOptions() (loader.DecodeOptions, error) {
	opts := loader.DecodeOptions{Workers: c.Workers}

	switch c.Layout {
	case "spec":
		opts.Layout = loader.LayoutSpec
	case "legacy":
		opts.Layout = loader.LayoutLegacy
	default:
		return loader.DecodeOptions{}, fmt.Errorf("config: unknown layout %q (want spec or legacy)", c.Layout)
	}

	switch c.Bindings {
	case "last":
		opts.Bindings = loader.BindingLastWins
	case "concat":
		opts.Bindings = loader.BindingConcatenate
	default:
		return loader.DecodeOptions{}, fmt.Errorf("config: unknown bindings policy %q (want last or concat)", c.Bindings)
	}

	if c.Strict {
		opts.ComponentTypes = loader.ComponentTypeStrict
	}

	return opts, nil
}
