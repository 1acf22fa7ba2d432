package azuread

import (
	"errors"
	"strings"
)

// Config holds the Azure AD application registration settings
// (AUTH_AD_* environment variables).
type Config struct {
	// TenantID is the directory (tenant) id.
	TenantID string `mapstructure:"tenant_id"`

	// ClientID is the application (client) id, expected as the token audience.
	ClientID string `mapstructure:"client_id"`

	// ClientSecret is the confidential client secret.
	ClientSecret string `mapstructure:"client_secret"`

	// RedirectDomain is the externally reachable origin of this service;
	// callback URLs are built under it.
	RedirectDomain string `mapstructure:"redirect_domain"`

	// CookieKey and CookieIV key the encryption of the state cookie that
	// carries flow state across the redirect round trip.
	CookieKey string `mapstructure:"cookie_key"`
	CookieIV  string `mapstructure:"cookie_iv"`
}

// Configured reports whether SSO settings are present at all. A deployment
// without Azure AD runs local login only.
func (c *Config) Configured() bool {
	return c.TenantID != "" || c.ClientID != "" || c.ClientSecret != ""
}

// Validate checks that a configured SSO setup is complete.
func (c *Config) Validate() error {
	if !c.Configured() {
		return nil
	}
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"tenant_id", c.TenantID},
		{"client_id", c.ClientID},
		{"client_secret", c.ClientSecret},
		{"redirect_domain", c.RedirectDomain},
		{"cookie_key", c.CookieKey},
		{"cookie_iv", c.CookieIV},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return errors.New("azuread: incomplete configuration, missing " + strings.Join(missing, ", "))
	}
	return nil
}
