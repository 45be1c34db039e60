package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	// DefaultMaxYear is the latest publication year accepted unless
	// configured otherwise.
	DefaultMaxYear = 2024
)

// Config selects the backing store and validation limits.
type Config struct {
	DataPath string `yaml:"data_path"`
	Backend  string `yaml:"backend"`
	MaxYear  int    `yaml:"max_year"`
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() *Config {
	return &Config{
		DataPath: "books_data.json",
		Backend:  BackendJSON,
		MaxYear:  DefaultMaxYear,
		LogLevel: "warn",
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. A missing file is
// not an error when optional is true.
func LoadConfig(path string, optional bool) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that have a closed set of values.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return errors.New("config: data_path is empty")
	}
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown backend %q (want %s or %s)", c.Backend, BackendJSON, BackendSQLite)
	}
	if c.MaxYear <= 0 {
		return fmt.Errorf("config: max_year must be positive, got %d", c.MaxYear)
	}
	return nil
}
