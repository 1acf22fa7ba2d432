// Package config loads fleetgrid configuration from YAML, .env files, and
// the process environment into one typed struct populated at startup.
package config

import (
	"fmt"

	"github.com/fleetgrid/fleetgrid/auth"
	"github.com/fleetgrid/fleetgrid/auth/token"
	"github.com/fleetgrid/fleetgrid/database"
	"github.com/fleetgrid/fleetgrid/logger"
	"github.com/fleetgrid/fleetgrid/server"
)

// ServiceConfig identifies the running service.
type ServiceConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// Config is the full application configuration. It is populated once in
// main and handed to component constructors by reference.
type Config struct {
	Service  ServiceConfig   `mapstructure:"service"`
	Server   server.Config   `mapstructure:"server"`
	Database database.Config `mapstructure:"database"`
	Logging  logger.Config   `mapstructure:"logging"`
	JWT      token.Config    `mapstructure:"jwt"`
	Auth     auth.Config     `mapstructure:"auth"`

	// FrontEndHost is the external front-end origin the web SSO callback
	// redirects to (FRONT_END_HOST).
	FrontEndHost string `mapstructure:"front_end_host"`
}

// ApplyDefaults sets defaults on all sub-configurations.
func (c *Config) ApplyDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = "fleetgrid"
	}
	if c.Service.Version == "" {
		c.Service.Version = "dev"
	}
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.JWT.ApplyDefaults()
	c.Auth.ApplyDefaults()
}

// Validate checks all sub-configurations.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.JWT.Validate(); err != nil {
		return fmt.Errorf("jwt: %w", err)
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}
