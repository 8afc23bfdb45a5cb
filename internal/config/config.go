// Package config loads the YAML configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cinedex/cinedex/internal/query"
)

// Config holds the runtime settings. Every field has a working default so a
// missing config file is never fatal.
type Config struct {
	// DataDir is the chunked dataset directory.
	DataDir string `yaml:"data_dir"`

	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Page size bounds for query pagination.
	PageSizeMin     int `yaml:"page_size_min"`
	PageSizeMax     int `yaml:"page_size_max"`
	PageSizeDefault int `yaml:"page_size_default"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir:         "data_chunks",
		Listen:          ":8000",
		LogLevel:        "info",
		PageSizeMin:     1,
		PageSizeMax:     100,
		PageSizeDefault: 20,
	}
}

// Load reads the config file at path, layering it over Default. An empty
// path returns the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.PageSizeMin < 1 || c.PageSizeMax < c.PageSizeMin {
		return fmt.Errorf("invalid page size bounds [%d,%d]", c.PageSizeMin, c.PageSizeMax)
	}
	if c.PageSizeDefault < c.PageSizeMin || c.PageSizeDefault > c.PageSizeMax {
		return fmt.Errorf("default page size %d outside [%d,%d]",
			c.PageSizeDefault, c.PageSizeMin, c.PageSizeMax)
	}
	return nil
}

// PageBounds converts the configured limits for the query engine.
func (c Config) PageBounds() query.PageBounds {
	return query.PageBounds{
		Min:     c.PageSizeMin,
		Max:     c.PageSizeMax,
		Default: c.PageSizeDefault,
	}
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
