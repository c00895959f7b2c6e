// Package auth validates the dashboard's operator API keys. Keys are stored
// as SHA-256 hashes in config; cmd/keygen prints the hash for a new key.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
)

// Key describes one configured operator key.
type Key struct {
	Hash        string
	Description string
}

// Authenticator validates API keys against the configured hashes.
type Authenticator struct {
	keys map[string]Key // hash -> key
}

// NewAuthenticator creates an authenticator from the configured keys.
func NewAuthenticator(keys []Key) *Authenticator {
	a := &Authenticator{keys: make(map[string]Key)}
	for _, k := range keys {
		a.keys[k.Hash] = k
	}
	return a
}

// ValidateAPIKey validates a raw API key and returns the matching configured
// key.
func (a *Authenticator) ValidateAPIKey(apiKey string) (Key, error) {
	hash := HashAPIKey(apiKey)

	k, ok := a.keys[hash]
	if !ok {
		return Key{}, fmt.Errorf("invalid API key")
	}

	// Constant-time comparison to prevent timing attacks
	if subtle.ConstantTimeCompare([]byte(hash), []byte(k.Hash)) != 1 {
		return Key{}, fmt.Errorf("invalid API key")
	}
	return k, nil
}

// ExtractAPIKey extracts the API key from the Authorization header.
func ExtractAPIKey(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", fmt.Errorf("missing Authorization header")
	}

	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid Authorization header format")
	}
	if strings.ToLower(parts[0]) != "bearer" {
		return "", fmt.Errorf("unsupported authorization scheme")
	}
	return parts[1], nil
}

// HashAPIKey creates the SHA-256 hash of an API key for storage in config.
func HashAPIKey(apiKey string) string {
	hash := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(hash[:])
}
