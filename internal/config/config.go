// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"quotecalc/core/pricing"
	"quotecalc/core/rates"
	"quotecalc/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains the pricing engine constants
	Pricing pricing.Config `json:"pricing"`

	// Rates contains rate table configuration
	Rates RatesConfig `json:"rates"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// RatesConfig selects the active rate table
type RatesConfig struct {
	// Path is an optional rate table HCL file; empty uses the built-in table
	Path string `json:"path,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format"`

	// ShowLines shows the per-line breakdown
	ShowLines bool `json:"show_lines"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: pricing.DefaultConfig(),
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowLines:     true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// BuildTable loads and validates the configured rate table.
func (c *Config) BuildTable() (*rates.Table, error) {
	if c.Rates.Path != "" {
		return rates.LoadHCL(c.Rates.Path)
	}
	table := rates.Builtin()
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
