// Package config loads photo-meta settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Config is the complete set of run settings.
type Config struct {
	Output          string    `yaml:"output"`
	ErrorReport     string    `yaml:"error_report"`
	Format          string    `yaml:"format"`
	Delimiter       string    `yaml:"delimiter"`
	Unknown         string    `yaml:"unknown"`
	ExcludeSuffixes []string  `yaml:"exclude_suffixes"`
	KeepGoing       bool      `yaml:"keep_going"`
	Log             LogConfig `yaml:"log"`
}

// LogConfig configures the diagnostic log.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Environment variables overriding file values.
const (
	EnvOutput   = "PHOTO_META_OUTPUT"
	EnvFormat   = "PHOTO_META_FORMAT"
	EnvLogLevel = "PHOTO_META_LOG_LEVEL"
)

func DefaultConfig() *Config {
	return &Config{
		Output:          "meta-data.csv",
		ErrorReport:     "meta-data.errors.csv",
		Format:          "csv",
		Delimiter:       "|",
		Unknown:         "unknown",
		ExcludeSuffixes: []string{".csv", ".csv#", ".gitignore", ".go", ".xlsx"},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults. Environment overrides are applied and the result validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from PHOTO_META_* variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Output == "" {
		return &ValidationError{Field: "output", Message: "output file name is required"}
	}
	if strings.ContainsAny(c.Output, `/\`) {
		return &ValidationError{Field: "output", Message: "output must be a file name, not a path"}
	}
	if c.ErrorReport == c.Output {
		return &ValidationError{Field: "error_report", Message: "error report must differ from output"}
	}
	switch strings.ToLower(c.Format) {
	case "csv", "xlsx":
	default:
		return &ValidationError{Field: "format", Message: fmt.Sprintf("unsupported format %q", c.Format)}
	}
	if _, err := c.DelimiterRune(); err != nil {
		return &ValidationError{Field: "delimiter", Message: err.Error()}
	}
	if c.Unknown == "" {
		return &ValidationError{Field: "unknown", Message: "placeholder for absent tags must not be empty"}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Field: "log.level", Message: fmt.Sprintf("unsupported level %q", c.Log.Level)}
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return &ValidationError{Field: "log.format", Message: fmt.Sprintf("unsupported format %q", c.Log.Format)}
	}
	return nil
}

// DelimiterRune returns the single-character delimiter.
func (c *Config) DelimiterRune() (rune, error) {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return 0, fmt.Errorf("delimiter must be exactly one character, got %q", c.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", c.Delimiter)
	}
	return r, nil
}

// ValidationError describes an invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Message)
}
