package azuread

import (
	"crypto/rand"
	"encoding/hex"
	"io"
)

// GenerateState creates a cryptographically secure random state string
// for CSRF protection in the authorization-code flow.
// Returns a 32-byte hex-encoded string (64 characters).
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateNonce creates a cryptographically secure random nonce for ID
// token replay protection. Returns a 16-byte hex-encoded string.
func GenerateNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
