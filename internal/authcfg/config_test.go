// ABOUTME: Unit tests for strict auth config document parsing
// ABOUTME: Verifies typed errors and policy defaults at the parse boundary

package authcfg

import (
	"errors"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	cfg, err := Parse([]byte(`{
		"password": "test123456",
		"username": "admin",
		"encryption": {"enabled": false, "algorithm": "AES-256-GCM"},
		"security": {"minPasswordLength": 8, "requireSpecialChars": false},
		"version": "1.0"
	}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Password != "test123456" || cfg.Username != "admin" {
		t.Errorf("Parse() = %+v", cfg)
	}
	if cfg.Security == nil || cfg.Security.MinPasswordLength != 8 {
		t.Errorf("Security = %+v, want minPasswordLength 8", cfg.Security)
	}
}

func TestParse_MissingPassword(t *testing.T) {
	_, err := Parse([]byte(`{"username":"admin"}`))
	if !errors.Is(err, ErrMissingPassword) {
		t.Errorf("Parse() error = %v, want ErrMissingPassword", err)
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte(`{"password":"pw","bogus":true}`))
	if err == nil {
		t.Error("Parse() accepted an unknown field")
	}
}

func TestParse_NotJSON(t *testing.T) {
	_, err := Parse([]byte(`password=pw`))
	if err == nil {
		t.Error("Parse() accepted non-JSON input")
	}
}

func TestParse_SecurityDefaultMinLength(t *testing.T) {
	cfg, err := Parse([]byte(`{"password":"pw","security":{"requireSpecialChars":true}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Security.MinPasswordLength != DefaultMinPasswordLength {
		t.Errorf("MinPasswordLength = %d, want %d", cfg.Security.MinPasswordLength, DefaultMinPasswordLength)
	}
}
