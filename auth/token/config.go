package token

import (
	"errors"
	"time"
)

// Config configures the session token service.
type Config struct {
	// Secret is the shared HMAC signing key (JWT_SECRET).
	Secret string `mapstructure:"secret"`

	// TTL is the fixed token validity window. Applied uniformly; there is
	// no per-call override.
	TTL time.Duration `mapstructure:"ttl"`
}

// ApplyDefaults sets the fixed 24h validity window if unset.
func (c *Config) ApplyDefaults() {
	if c.TTL == 0 {
		c.TTL = 24 * time.Hour
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("secret is required")
	}
	if c.TTL <= 0 {
		return errors.New("ttl must be positive")
	}
	return nil
}
