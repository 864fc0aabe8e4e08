package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-gltf/engine/loader"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFormats(t *testing.T) {
	want := Config{Workers: 4, Layout: "legacy", Bindings: "concat", Strict: true, IndexType: "uint16", PositionType: "float64", LogLevel: "debug"}

	tests := []struct {
		name string
		body string
	}{
		{"gltfdump.toml", `
workers = 4
layout = "legacy"
bindings = "concat"
strict = true
index_type = "uint16"
position_type = "float64"
log_level = "debug"
`},
		{"gltfdump.yaml", `
workers: 4
layout: legacy
bindings: concat
strict: true
index_type: uint16
position_type: float64
log_level: debug
`},
		{"gltfdump.yml", "workers: 4\nlayout: legacy\nbindings: concat\nstrict: true\nindex_type: uint16\nposition_type: float64\nlog_level: debug\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.name, tt.body))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg != want {
				t.Errorf("got %+v, want %+v", cfg, want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil || !strings.Contains(err.Error(), "read") {
		t.Errorf("missing file: got %v", err)
	}
	if _, err := Load(writeFile(t, "cfg.json", `{}`)); err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("unknown extension: got %v", err)
	}
	if _, err := Load(writeFile(t, "bad.toml", `workers = "many`)); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("bad toml: got %v", err)
	}
}

func TestResolve(t *testing.T) {
	cfg := Config{Workers: 2, Layout: "legacy"}
	cfg.Resolve(Flags{Workers: 8, Bindings: "concat"})

	want := Config{
		Workers:      8,
		Layout:       "legacy",
		Bindings:     "concat",
		IndexType:    DefaultIndexType,
		PositionType: DefaultPositionType,
		LogLevel:     DefaultLogLevel,
	}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}

	var empty Config
	empty.Resolve(Flags{Strict: true})
	if empty.Workers != DefaultWorkers || empty.Layout != DefaultLayout || !empty.Strict {
		t.Errorf("defaults not applied: %+v", empty)
	}
}

func TestDecodeOptions(t *testing.T) {
	cfg := Config{Workers: 3, Layout: "legacy", Bindings: "concat", Strict: true}
	opts, err := cfg.DecodeOptions()
	if err != nil {
		t.Fatalf("DecodeOptions: %v", err)
	}
	want := loader.DecodeOptions{Workers: 3, Layout: loader.LayoutLegacy, Bindings: loader.BindingConcatenate, ComponentTypes: loader.ComponentTypeStrict}
	if opts != want {
		t.Errorf("got %+v, want %+v", opts, want)
	}

	for _, bad := range []Config{{Layout: "packed", Bindings: "last"}, {Layout: "spec", Bindings: "first"}} {
		if _, err := bad.DecodeOptions(); err == nil {
			t.Errorf("%+v: expected error", bad)
		}
	}
}
