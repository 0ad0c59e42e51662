// Package config loads and persists the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Database configuration
	Database DatabaseConfig `toml:"database"`

	// Scryfall API client configuration
	Scryfall ScryfallConfig `toml:"scryfall"`

	// Synergy rule table configuration
	Rules RulesConfig `toml:"rules"`

	// HTTP server configuration
	Server ServerConfig `toml:"server"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// DatabaseConfig contains SQLite settings.
type DatabaseConfig struct {
	Path        string `toml:"path"`         // Path to the card database; empty uses the default location
	AutoMigrate bool   `toml:"auto_migrate"` // Run pending migrations on startup
}

// ScryfallConfig contains API client settings.
type ScryfallConfig struct {
	RequestTimeout string `toml:"request_timeout"` // Per-request timeout (e.g., "30s")
}

// RulesConfig controls the synergy rule table source.
type RulesConfig struct {
	Path  string `toml:"path"`  // Path to a rules TOML file; empty uses the built-in table
	Watch bool   `toml:"watch"` // Reload the table when the file changes
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        "",
			AutoMigrate: true,
		},
		Scryfall: ScryfallConfig{
			RequestTimeout: "30s",
		},
		Rules: RulesConfig{
			Path:  "",
			Watch: false,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8585,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".commanderforge")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// DatabasePath resolves the configured database path, defaulting to a file
// next to the config.
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	path, err := configPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), "cards.db"), nil
}

// Load loads the configuration from disk. Returns default config if the file
// doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Scryfall.RequestTimeout); err != nil {
		return fmt.Errorf("invalid scryfall request timeout %q: %w", c.Scryfall.RequestTimeout, err)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535: %d", c.Server.Port)
	}
	if c.Rules.Watch && c.Rules.Path == "" {
		return fmt.Errorf("rules.watch requires rules.path to be set")
	}
	return nil
}

// GetRequestTimeout returns the Scryfall request timeout as a duration.
func (c *Config) GetRequestTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Scryfall.RequestTimeout)
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
