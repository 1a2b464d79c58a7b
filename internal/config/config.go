// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"quote-engine/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Rates contains rate table configuration
	Rates RatesConfig `json:"rates"`

	// Classifications contains classification catalog configuration
	Classifications ClassificationsConfig `json:"classifications"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Quoting contains quote lifecycle configuration
	Quoting QuotingConfig `json:"quoting"`

	// Audit contains quote audit trail configuration
	Audit AuditConfig `json:"audit"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// RatesConfig contains rate table settings
type RatesConfig struct {
	// Directory is the directory holding .rates.hcl files
	Directory string `json:"directory"`
}

// ClassificationsConfig contains classification catalog settings
type ClassificationsConfig struct {
	// Path is the YAML classification catalog file
	Path string `json:"path"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// QuotingConfig contains quote lifecycle settings
type QuotingConfig struct {
	// ValidityDays is how long a quote remains open
	ValidityDays int `json:"validity_days"`

	// ExpirySchedule is the cron schedule for the expiry sweep
	ExpirySchedule string `json:"expiry_schedule"`
}

// AuditConfig contains audit trail settings
type AuditConfig struct {
	// Enabled turns the sqlite audit trail on
	Enabled bool `json:"enabled"`

	// DatabasePath is the sqlite database file
	DatabasePath string `json:"database_path"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".quote-engine", "quotes.db")

	return &Config{
		Version: "1.0",
		Rates: RatesConfig{
			Directory: "./rates",
		},
		Classifications: ClassificationsConfig{
			Path: "./classifications.yml",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Quoting: QuotingConfig{
			ValidityDays:   30,
			ExpirySchedule: "@hourly",
		},
		Audit: AuditConfig{
			Enabled:      false,
			DatabasePath: dbPath,
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
