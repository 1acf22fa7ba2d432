// Package azuread implements the Azure AD authorization-code flow used by
// the single-sign-on login strategies.
package azuread

import (
	"context"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	apperrors "github.com/fleetgrid/fleetgrid/errors"
)

// Flow identifies which callback a login round trip returns to.
const (
	FlowAPI = "api"
	FlowWeb = "web"
)

// Provider drives the redirect-based OIDC flow against an Azure AD tenant.
type Provider struct {
	cfg    Config
	cookie *StateCookie
}

// New creates a provider from config.
func New(cfg Config) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cookie, err := NewStateCookie(cfg.CookieKey, cfg.CookieIV)
	if err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg, cookie: cookie}, nil
}

// Cookie returns the state cookie codec for this provider.
func (p *Provider) Cookie() *StateCookie {
	return p.cookie
}

// LoginURL builds the authorization URL for the given flow, carrying the
// CSRF state and ID-token nonce.
func (p *Provider) LoginURL(flow, state, nonce string) string {
	return p.oauthConfig(flow).AuthCodeURL(state,
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("response_mode", "query"),
	)
}

// Exchange trades the authorization code for tokens and returns the
// verified identity's preferred_username claim (the user's email).
// The ID token arrives over the direct TLS exchange with the token
// endpoint; its claims are validated against the client id and nonce.
func (p *Provider) Exchange(ctx context.Context, flow, code, expectedNonce string) (string, error) {
	tok, err := p.oauthConfig(flow).Exchange(ctx, code)
	if err != nil {
		return "", apperrors.ExternalServiceError("identity provider", err)
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", apperrors.Unauthorized("Identity provider returned no ID token.")
	}

	claims := gojwt.MapClaims{}
	if _, _, err := gojwt.NewParser().ParseUnverified(rawIDToken, claims); err != nil {
		return "", apperrors.Unauthorized("Malformed ID token.").WithCause(err)
	}

	if err := p.validateClaims(claims, expectedNonce); err != nil {
		return "", err
	}

	email, _ := claims["preferred_username"].(string)
	if email == "" {
		return "", apperrors.Unauthorized("ID token carries no preferred_username claim.")
	}
	return email, nil
}

func (p *Provider) validateClaims(claims gojwt.MapClaims, expectedNonce string) error {
	if !audienceContains(claims["aud"], p.cfg.ClientID) {
		return apperrors.Unauthorized("ID token audience mismatch.")
	}
	if nonce, _ := claims["nonce"].(string); expectedNonce != "" && nonce != expectedNonce {
		return apperrors.Unauthorized("ID token nonce mismatch.")
	}
	if exp, ok := claims["exp"].(float64); !ok || time.Now().After(time.Unix(int64(exp), 0)) {
		return apperrors.Unauthorized("ID token has expired.")
	}
	return nil
}

func (p *Provider) oauthConfig(flow string) *oauth2.Config {
	callback := "/auth/microsoft/connect"
	if flow == FlowWeb {
		callback = "/auth/microsoft/connect-web"
	}
	return &oauth2.Config{
		ClientID:     p.cfg.ClientID,
		ClientSecret: p.cfg.ClientSecret,
		RedirectURL:  p.cfg.RedirectDomain + callback,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/authorize", p.cfg.TenantID),
			TokenURL: fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", p.cfg.TenantID),
		},
	}
}

func audienceContains(aud any, clientID string) bool {
	switch v := aud.(type) {
	case string:
		return v == clientID
	case []interface{}:
		for _, a := range v {
			if s, ok := a.(string); ok && s == clientID {
				return true
			}
		}
	}
	return false
}
