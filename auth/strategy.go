package auth

import (
	"context"

	"github.com/fleetgrid/fleetgrid/auth/password"
	"github.com/fleetgrid/fleetgrid/auth/token"
	apperrors "github.com/fleetgrid/fleetgrid/errors"
	"github.com/fleetgrid/fleetgrid/user"
)

// Credentials is the transient material a login attempt carries. Which
// fields are set depends on the strategy; attempts are never persisted.
type Credentials struct {
	Username string
	Password string
	Email    string // identity-provider-verified email (SSO strategies)
	Token    string // raw session token (bearer strategies)
}

// Strategy is one pluggable verification method, selected per route.
// Attempt resolves the credentials to a user or fails with an AppError
// from the unauthorized/ineligible taxonomy.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, creds Credentials) (*user.User, error)
}

// --- Local ---

// LocalStrategy verifies a username/password pair against the directory.
type LocalStrategy struct {
	directory user.Directory
	hasher    *password.Hasher
}

// NewLocalStrategy creates the local password strategy.
func NewLocalStrategy(directory user.Directory, hasher *password.Hasher) *LocalStrategy {
	return &LocalStrategy{directory: directory, hasher: hasher}
}

func (s *LocalStrategy) Name() string { return "local" }

// Attempt looks the user up case-sensitively and verifies the password.
// Unknown user, missing hash, and wrong password collapse into one generic
// unauthorized outcome so callers cannot enumerate accounts.
func (s *LocalStrategy) Attempt(ctx context.Context, creds Credentials) (*user.User, error) {
	u, err := s.directory.FindByUsername(ctx, creds.Username)
	if err != nil {
		return nil, err
	}
	if u == nil || u.PasswordHash == nil || !s.hasher.Verify(creds.Password, *u.PasswordHash) {
		return nil, apperrors.Unauthorized("Invalid credentials.")
	}
	return u, nil
}

// --- SSO ---

// SSOAPIStrategy resolves an identity-provider-verified email to a user,
// provisioning the account on first login. Eligibility requires a base
// assignment.
type SSOAPIStrategy struct {
	directory user.Directory
}

// NewSSOAPIStrategy creates the API-client SSO strategy.
func NewSSOAPIStrategy(directory user.Directory) *SSOAPIStrategy {
	return &SSOAPIStrategy{directory: directory}
}

func (s *SSOAPIStrategy) Name() string { return "azure-ad" }

func (s *SSOAPIStrategy) Attempt(ctx context.Context, creds Credentials) (*user.User, error) {
	return ssoResolve(ctx, s.directory, creds.Email)
}

// SSOWebStrategy is the web-client variant of the SSO strategy. The
// verification is identical; only its callback's redirect target differs.
type SSOWebStrategy struct {
	directory user.Directory
}

// NewSSOWebStrategy creates the web-client SSO strategy.
func NewSSOWebStrategy(directory user.Directory) *SSOWebStrategy {
	return &SSOWebStrategy{directory: directory}
}

func (s *SSOWebStrategy) Name() string { return "azure-ad-web" }

func (s *SSOWebStrategy) Attempt(ctx context.Context, creds Credentials) (*user.User, error) {
	return ssoResolve(ctx, s.directory, creds.Email)
}

func ssoResolve(ctx context.Context, directory user.Directory, email string) (*user.User, error) {
	u, err := directory.FindOrCreateBySSOEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	// A verified identity without a base assignment is a hard rejection,
	// distinct from the generic unauthorized outcome.
	if u.BaseID == nil {
		return nil, apperrors.Ineligible("")
	}
	return u, nil
}

// --- Bearer ---

// BearerStrategy validates a session token and resolves its username
// against the directory.
type BearerStrategy struct {
	tokens    *token.Service
	directory user.Directory
}

// NewBearerStrategy creates the bearer-token strategy.
func NewBearerStrategy(tokens *token.Service, directory user.Directory) *BearerStrategy {
	return &BearerStrategy{tokens: tokens, directory: directory}
}

func (s *BearerStrategy) Name() string { return "jwt" }

func (s *BearerStrategy) Attempt(ctx context.Context, creds Credentials) (*user.User, error) {
	claims, err := s.tokens.Parse(creds.Token)
	if err != nil {
		return nil, err
	}
	u, err := s.directory.FindByUsername(ctx, claims.Username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.Unauthorized("")
	}
	return u, nil
}

// BearerQueryStrategy shares the bearer verification logic; only the token
// source differs (a named query parameter, extracted by its guard), for
// redirect-completed flows where headers cannot be attached.
type BearerQueryStrategy struct {
	*BearerStrategy
}

// NewBearerQueryStrategy creates the query-parameter bearer strategy.
func NewBearerQueryStrategy(tokens *token.Service, directory user.Directory) *BearerQueryStrategy {
	return &BearerQueryStrategy{BearerStrategy: NewBearerStrategy(tokens, directory)}
}

func (s *BearerQueryStrategy) Name() string { return "jwt-query-param" }
