package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Fatalf("unexpected config\n got: %#v\nwant: %#v", cfg, DefaultConfig())
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output != "meta-data.csv" || cfg.Delimiter != "|" {
		t.Fatalf("unexpected config: %#v", cfg)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo-meta.yaml")
	data := []byte(`
output: cameras.csv
format: xlsx
unknown: "-"
keep_going: true
exclude_suffixes: [".txt"]
log:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Output != "cameras.csv" || cfg.Format != "xlsx" || cfg.Unknown != "-" || !cfg.KeepGoing {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if !reflect.DeepEqual(cfg.ExcludeSuffixes, []string{".txt"}) {
		t.Fatalf("unexpected exclusions: %v", cfg.ExcludeSuffixes)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected log config: %#v", cfg.Log)
	}
	if cfg.Delimiter != "|" {
		t.Fatalf("expected default delimiter to survive, got %q", cfg.Delimiter)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvOutput, "summary.csv")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output != "summary.csv" {
		t.Fatalf("unexpected output: %q", cfg.Output)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("unexpected level: %q", cfg.Log.Level)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("output: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "empty output", mutate: func(c *Config) { c.Output = "" }, field: "output"},
		{name: "output path", mutate: func(c *Config) { c.Output = "out/meta.csv" }, field: "output"},
		{name: "report equals output", mutate: func(c *Config) { c.ErrorReport = c.Output }, field: "error_report"},
		{name: "bad format", mutate: func(c *Config) { c.Format = "json" }, field: "format"},
		{name: "long delimiter", mutate: func(c *Config) { c.Delimiter = "||" }, field: "delimiter"},
		{name: "newline delimiter", mutate: func(c *Config) { c.Delimiter = "\n" }, field: "delimiter"},
		{name: "empty unknown", mutate: func(c *Config) { c.Unknown = "" }, field: "unknown"},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "loud" }, field: "log.level"},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, field: "log.format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("unexpected field\n got: %q\nwant: %q", verr.Field, tc.field)
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestDelimiterRune(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Delimiter = ";"

	r, err := cfg.DelimiterRune()
	if err != nil || r != ';' {
		t.Fatalf("unexpected result %q, %v", r, err)
	}
}
