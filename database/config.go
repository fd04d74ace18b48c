package database

import (
	"fmt"
	"time"
)

// Config holds SQLite connection settings. Durations are strings so they can
// come straight from config files.
type Config struct {
	// DSN is the SQLite path, or "file::memory:?cache=shared" for tests.
	DSN string `mapstructure:"dsn"`

	// MaxOpenConns and MaxIdleConns bound the connection pool.
	MaxOpenConns int `mapstructure:"max_open_conns"`
	MaxIdleConns int `mapstructure:"max_idle_conns"`

	// ConnMaxLifetime is how long a pooled connection may be reused.
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`

	// MaxRetries bounds startup connection attempts.
	MaxRetries int `mapstructure:"max_retries"`

	// AutoMigrate runs GORM schema migration on startup.
	AutoMigrate bool `mapstructure:"auto_migrate"`

	// LogLevel is one of silent, error, warn, info.
	LogLevel string `mapstructure:"log_level"`

	// SlowQueryThreshold marks queries slower than this as slow in logs.
	SlowQueryThreshold string `mapstructure:"slow_query_threshold"`
}

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.DSN == "" {
		c.DSN = "secureapi.db"
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 25
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 5
	}
	if c.ConnMaxLifetime == "" {
		c.ConnMaxLifetime = "1h"
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 5
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.SlowQueryThreshold == "" {
		c.SlowQueryThreshold = "200ms"
	}
}

// Validate checks that the settings are present and parseable.
func (c *Config) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be positive")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed max_open_conns (%d)", c.MaxIdleConns, c.MaxOpenConns)
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("database.max_retries must be positive")
	}
	if _, err := time.ParseDuration(c.ConnMaxLifetime); err != nil {
		return fmt.Errorf("database.conn_max_lifetime %q: %w", c.ConnMaxLifetime, err)
	}
	if _, err := time.ParseDuration(c.SlowQueryThreshold); err != nil {
		return fmt.Errorf("database.slow_query_threshold %q: %w", c.SlowQueryThreshold, err)
	}
	return nil
}
