package auth

import (
	"fmt"

	"github.com/fleetgrid/fleetgrid/auth/azuread"
)

// Config holds authentication configuration beyond the token service.
type Config struct {
	// AD configures Azure AD single sign-on (AUTH_AD_*). Empty disables SSO.
	AD azuread.Config `mapstructure:"ad"`
}

// ApplyDefaults sets defaults for sub-configurations.
func (c *Config) ApplyDefaults() {}

// Validate checks sub-configurations.
func (c *Config) Validate() error {
	if err := c.AD.Validate(); err != nil {
		return fmt.Errorf("ad: %w", err)
	}
	return nil
}
