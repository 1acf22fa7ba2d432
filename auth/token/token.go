// Package token issues and validates the signed session tokens that carry
// an authenticated user's identity between requests.
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	apperrors "github.com/fleetgrid/fleetgrid/errors"
)

// Claims are the session token claims: the username plus the registered
// claim set, with the user id as the subject.
type Claims struct {
	Username string `json:"username"`
	gojwt.RegisteredClaims
}

// Service issues and parses session tokens signed with a shared HMAC secret.
type Service struct {
	cfg Config
}

// NewService creates a token service from config.
func NewService(cfg *Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	return &Service{cfg: *cfg}, nil
}

// Issue creates a signed session token for the given subject id and
// username. The expiry is the fixed configured window; IssuedAt is stamped
// so repeated calls for the same principal yield different tokens.
func (s *Service) Issue(subject, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
	}

	t := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Parse verifies a token's signature and expiry and returns its claims.
// Expired tokens and signature failures map to the unauthorized taxonomy.
func (s *Service) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	t, err := gojwt.ParseWithClaims(raw, claims, s.keyFunc,
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return nil, apperrors.TokenExpired().WithCause(err)
		}
		return nil, apperrors.InvalidToken().WithCause(err)
	}
	if !t.Valid {
		return nil, apperrors.InvalidToken()
	}
	return claims, nil
}

func (s *Service) keyFunc(t *gojwt.Token) (interface{}, error) {
	if t.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", t.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}
