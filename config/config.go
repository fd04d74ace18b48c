// Package config defines the service configuration and loads it from YAML
// files, .env files, and environment variables.
package config

import (
	"fmt"

	"github.com/skillsenselab/secureapi/auth"
	"github.com/skillsenselab/secureapi/database"
	"github.com/skillsenselab/secureapi/logger"
	"github.com/skillsenselab/secureapi/observability"
	"github.com/skillsenselab/secureapi/server"
)

// Config is the root configuration for the service.
type Config struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`

	Logging       logger.Config        `mapstructure:"logging"`
	Server        server.Config        `mapstructure:"server"`
	Database      database.Config      `mapstructure:"database"`
	Auth          auth.Config          `mapstructure:"auth"`
	Observability observability.Config `mapstructure:"observability"`
}

// ApplyDefaults fills in zero-value fields across all sections.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "secureapi"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}

	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks all sections.
func (c *Config) Validate() error {
	switch c.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}

	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Observability.Validate()
}
