package azuread

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

// FlowState is the per-login state carried across the redirect round trip.
// It lives only in the encrypted cookie; the server keeps no session memory
// between the redirect and the callback.
type FlowState struct {
	State string `json:"state"`
	Nonce string `json:"nonce"`
	Flow  string `json:"flow"` // "api" or "web"
}

// StateCookie encrypts and decrypts FlowState using AES-GCM. The key is
// derived from the configured cookie key and IV material with SHA-256.
type StateCookie struct {
	aead cipher.AEAD
}

// CookieName is the cookie the SSO flow state travels in.
const CookieName = "fleetgrid_ad_state"

// NewStateCookie creates a state cookie codec from the cookie key material.
func NewStateCookie(key, iv string) (*StateCookie, error) {
	hasher := sha256.New()
	hasher.Write([]byte(key))
	hasher.Write([]byte(iv))
	keyBytes := hasher.Sum(nil)

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("statecookie: create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("statecookie: create gcm: %w", err)
	}
	return &StateCookie{aead: aead}, nil
}

// Seal encrypts the flow state into a base64 cookie value.
func (s *StateCookie) Seal(fs FlowState) (string, error) {
	plaintext, err := json.Marshal(fs)
	if err != nil {
		return "", fmt.Errorf("statecookie: marshal: %w", err)
	}
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("statecookie: generate nonce: %w", err)
	}
	ciphertext := s.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// Open decrypts a cookie value back into flow state.
func (s *StateCookie) Open(value string) (FlowState, error) {
	var fs FlowState

	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return fs, fmt.Errorf("statecookie: decode: %w", err)
	}
	nonceSize := s.aead.NonceSize()
	if len(data) < nonceSize {
		return fs, fmt.Errorf("statecookie: ciphertext too short")
	}
	plaintext, err := s.aead.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return fs, fmt.Errorf("statecookie: decrypt: %w", err)
	}
	if err := json.Unmarshal(plaintext, &fs); err != nil {
		return fs, fmt.Errorf("statecookie: unmarshal: %w", err)
	}
	return fs, nil
}
