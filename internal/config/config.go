// Package config loads photoquery settings from YAML and the environment
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/nainya/photoquery/pkg/grammar"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = "~/.photoquery.yaml"

// Config holds every setting of the CLI and server
type Config struct {
	Debounce  time.Duration     `yaml:"debounce"`
	Operators grammar.Operators `yaml:"operators"`
	HiddenTag string            `yaml:"hidden_tag"`
	Catalog   string            `yaml:"catalog"`
	Log       LogConfig         `yaml:"log"`
	Metrics   MetricsConfig     `yaml:"metrics"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty *bool  `yaml:"pretty"`
}

// MetricsConfig holds observability server settings
type MetricsConfig struct {
	Port int `yaml:"port"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Debounce:  500 * time.Millisecond,
		Operators: grammar.DefaultOperators(),
		HiddenTag: "Hidden",
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Port: 9090,
		},
	}
}

// Load reads path over the defaults. A missing file at the default path is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("config: expand %q: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
		return cfg, nil
	case err != nil:
		return cfg, fmt.Errorf("config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", expanded, err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from PHOTOQUERY_* environment variables
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PHOTOQUERY_DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: PHOTOQUERY_DEBOUNCE: %w", err)
		}
		c.Debounce = d
	}
	if v := os.Getenv("PHOTOQUERY_CATALOG"); v != "" {
		c.Catalog = v
	}
	if v := os.Getenv("PHOTOQUERY_HIDDEN_TAG"); v != "" {
		c.HiddenTag = v
	}
	if v := os.Getenv("PHOTOQUERY_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PHOTOQUERY_METRICS_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: PHOTOQUERY_METRICS_PORT: %w", err)
		}
		c.Metrics.Port = port
	}
	return nil
}

// CatalogPath returns the catalog path with ~ expanded
func (c Config) CatalogPath() (string, error) {
	if c.Catalog == "" {
		return "", nil
	}
	return homedir.Expand(c.Catalog)
}

// Validate checks the settings
func (c Config) Validate() error {
	if c.Debounce <= 0 {
		return fmt.Errorf("config: debounce must be positive, got %s", c.Debounce)
	}
	if err := c.Operators.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("config: invalid metrics port %d", c.Metrics.Port)
	}
	return nil
}
