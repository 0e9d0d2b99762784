// Package config provides project configuration for carmsdw, loaded
// from carmsdw.yaml, environment variables, and CLI flags.
package config

import (
	"fmt"

	"github.com/carmsdata/carmsdw/internal/warehouse"
)

// Config holds all carmsdw configuration options.
type Config struct {
	// DataDir is the directory holding the source files.
	DataDir string `koanf:"data_dir"`

	Sources SourcesConfig `koanf:"sources"`
	Target  TargetConfig  `koanf:"target"`
	API     APIConfig     `koanf:"api"`
	Log     LogConfig     `koanf:"log"`

	Verbose bool `koanf:"verbose"`
}

// SourcesConfig names the three source files under DataDir.
type SourcesConfig struct {
	Programs     string `koanf:"programs"`
	Disciplines  string `koanf:"disciplines"`
	Descriptions string `koanf:"descriptions"`
}

// TargetConfig holds warehouse target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // sqlite, postgres

	// File-based target (SQLite)
	Database string `koanf:"database"` // file path, or database name for postgres

	// Network target (PostgreSQL)
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"sslmode"`
}

// APIConfig holds read-API server settings.
type APIConfig struct {
	Port               int    `koanf:"port"`
	APIKey             string `koanf:"api_key"`
	RateLimitRequests  int    `koanf:"rate_limit_requests"`
	RateLimitWindowSec int    `koanf:"rate_limit_window_sec"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // text, json
}

// Warehouse converts the target section into a warehouse.Config.
func (c *Config) Warehouse() warehouse.Config {
	return warehouse.Config{
		Type:     c.Target.Type,
		Path:     c.Target.Database,
		Host:     c.Target.Host,
		Port:     c.Target.Port,
		User:     c.Target.User,
		Password: c.Target.Password,
		Database: c.Target.Database,
		SSLMode:  c.Target.SSLMode,
	}
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	switch c.Target.Type {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown target type %q (expected sqlite or postgres)", c.Target.Type)
	}
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("invalid api port %d", c.API.Port)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	return nil
}
