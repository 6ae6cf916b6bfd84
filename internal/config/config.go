// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"cx-cost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// DefaultRegion is the pricing region applied when a scenario omits one
	DefaultRegion string `json:"default_region"`

	// CatalogPath points at an optional HCL catalog override file
	CatalogPath string `json:"catalog_path,omitempty"`

	// Store contains deal store configuration
	Store StoreConfig `json:"store"`

	// Export contains export configuration
	Export ExportConfig `json:"export"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// StoreConfig contains deal store settings
type StoreConfig struct {
	// Path is the SQLite database path
	Path string `json:"path"`
}

// ExportConfig contains export settings
type ExportConfig struct {
	// Directory is where exported reports are written
	Directory string `json:"directory"`

	// Months is the horizon for monthly export rows
	Months int `json:"months"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	base := filepath.Join(homeDir, ".cx-cost")

	return &Config{
		Version:       "1.0",
		DefaultRegion: "US",
		Store: StoreConfig{
			Path: filepath.Join(base, "deals.db"),
		},
		Export: ExportConfig{
			Directory: ".",
			Months:    24,
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
