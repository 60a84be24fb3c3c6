// ABOUTME: Auth configuration document types and strict JSON parsing
// ABOUTME: Shared by the embedded source and the AUTH_CONFIG_JSON env source

package authcfg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingPassword is returned when a configuration document parses
// but lacks a non-empty password field.
var ErrMissingPassword = errors.New("auth config missing password")

// DefaultMinPasswordLength applies when a security section is present
// without an explicit minimum.
const DefaultMinPasswordLength = 8

// Security holds the password policy section of the auth configuration.
type Security struct {
	MinPasswordLength   int  `json:"minPasswordLength"`
	RequireSpecialChars bool `json:"requireSpecialChars"`
}

// Encryption mirrors the optional encryption section of the auth
// configuration. It is carried for completeness; the server does not
// act on it.
type Encryption struct {
	Enabled   bool   `json:"enabled"`
	Algorithm string `json:"algorithm"`
}

// Config is a parsed auth configuration document. Password is the only
// required field; it doubles as the session signing secret.
type Config struct {
	Password   string      `json:"password"`
	Username   string      `json:"username,omitempty"`
	Encryption *Encryption `json:"encryption,omitempty"`
	Security   *Security   `json:"security,omitempty"`
	Version    string      `json:"version,omitempty"`
}

// Parse strictly decodes a JSON auth configuration document. Unknown
// fields and a missing password are rejected with typed errors so the
// resolver can log and fall through to the next source.
func Parse(data []byte) (*Config, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing auth config: %w", err)
	}

	if cfg.Password == "" {
		return nil, ErrMissingPassword
	}

	if cfg.Security != nil && cfg.Security.MinPasswordLength <= 0 {
		cfg.Security.MinPasswordLength = DefaultMinPasswordLength
	}

	return &cfg, nil
}

// specialChars is the character class required when the policy demands
// special characters, matching the original deployment's definition.
const specialChars = `!@#$%^&*(),.?":{}|<>`

// checkPolicy applies a security policy to a candidate password.
// A nil policy accepts everything.
func checkPolicy(sec *Security, password string) (bool, string) {
	if sec == nil {
		return true, ""
	}

	minLen := sec.MinPasswordLength
	if minLen <= 0 {
		minLen = DefaultMinPasswordLength
	}

	if len(password) < minLen {
		return false, fmt.Sprintf("password must be at least %d characters", minLen)
	}

	if sec.RequireSpecialChars && !strings.ContainsAny(password, specialChars) {
		return false, "password must contain a special character"
	}

	return true, ""
}
