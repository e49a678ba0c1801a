// ABOUTME: API key resolution for the AI gateway
// ABOUTME: Prefers the stored key, then GEMINI_API_KEY from the environment
package gateway

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/harperreed/lifehub/store"
)

// EnvAPIKey is the environment variable consulted when no key is stored.
const EnvAPIKey = "GEMINI_API_KEY"

// CredentialSource yields the current API key, or ErrMissingCredential.
type CredentialSource interface {
	APIKey() (string, error)
}

// StoreCredentials reads the key from the hub store on every call so a key
// saved in settings takes effect immediately.
type StoreCredentials struct {
	KV store.KV
	// Fallback is used when the store has no key. Defaults to GEMINI_API_KEY.
	Fallback func() string
}

func (c StoreCredentials) APIKey() (string, error) {
	if c.KV != nil {
		if raw, err := c.KV.Get([]byte(store.KeyGeminiAPIKey)); err == nil {
			if key := decodeKey(raw); key != "" {
				return key, nil
			}
		}
	}
	fallback := c.Fallback
	if fallback == nil {
		fallback = func() string { return os.Getenv(EnvAPIKey) }
	}
	if key := strings.TrimSpace(fallback()); key != "" {
		return key, nil
	}
	return "", ErrMissingCredential
}

// decodeKey accepts a JSON string or a bare value written by older builds.
func decodeKey(raw []byte) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}

// StaticKey is a fixed credential, mostly for tests and one-off commands.
type StaticKey string

func (k StaticKey) APIKey() (string, error) {
	if key := strings.TrimSpace(string(k)); key != "" {
		return key, nil
	}
	return "", ErrMissingCredential
}

// MaskKey shows only the last four characters of a key.
func MaskKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("•", len(key))
	}
	return strings.Repeat("•", 8) + key[len(key)-4:]
}
