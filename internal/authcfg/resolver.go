// ABOUTME: Layered resolution of the effective auth configuration
// ABOUTME: Memoized per-field merge over embedded, env JSON, and legacy env sources

package authcfg

import (
	"log/slog"
	"os"
	"sync"
)

// Env variable names consumed by the resolver.
const (
	// EnvConfigJSON holds a full auth configuration document as JSON.
	EnvConfigJSON = "AUTH_CONFIG_JSON"

	// EnvLegacyPassword and EnvLegacyUsername are the pre-JSON scalar
	// variables, kept as a per-field fallback.
	EnvLegacyPassword = "PASSWORD"
	EnvLegacyUsername = "USERNAME"
)

// source produces an optional partial configuration. A nil Config with
// a nil error means the source is absent.
type source func() (*Config, error)

// Resolver resolves and memoizes the effective auth configuration from
// an ordered list of sources. Construct one with NewResolver and share
// it by reference; all methods are safe for concurrent use.
type Resolver struct {
	sources []source
	logger  *slog.Logger

	mu       sync.RWMutex
	resolved bool
	cfg      *Config
}

// NewResolver creates a resolver over the standard source chain:
// embedded config, AUTH_CONFIG_JSON, then legacy env vars.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{logger: logger.With("component", "authcfg")}
	r.sources = []source{embeddedSource, r.envJSONSource, legacyEnvSource}
	return r
}

// envJSONSource parses AUTH_CONFIG_JSON, if set.
func (r *Resolver) envJSONSource() (*Config, error) {
	raw := os.Getenv(EnvConfigJSON)
	if raw == "" {
		return nil, nil
	}
	return Parse([]byte(raw))
}

// legacyEnvSource builds a partial config from the scalar PASSWORD and
// USERNAME variables. It never fails; empty values simply contribute
// nothing to the merge.
func legacyEnvSource() (*Config, error) {
	cfg := &Config{
		Password: os.Getenv(EnvLegacyPassword),
		Username: os.Getenv(EnvLegacyUsername),
	}
	if cfg.Password == "" && cfg.Username == "" {
		return nil, nil
	}
	return cfg, nil
}

// Resolve returns the effective configuration, or nil when no source
// yields a secret. The result is memoized until Reload is called.
//
// Sources are merged first-non-empty per field, so the username may
// come from a later source than the password. A source that fails to
// parse is logged and skipped.
func (r *Resolver) Resolve() *Config {
	r.mu.RLock()
	if r.resolved {
		cfg := r.cfg
		r.mu.RUnlock()
		return cfg
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have resolved between the two locks.
	if r.resolved {
		return r.cfg
	}

	merged := &Config{}
	for i, src := range r.sources {
		cfg, err := src()
		if err != nil {
			r.logger.Warn("skipping unusable auth config source", "source", i, "error", err)
			continue
		}
		if cfg == nil {
			continue
		}
		mergeInto(merged, cfg)
	}

	if merged.Password == "" {
		// No secret anywhere: protected traffic cannot authenticate.
		r.logger.Warn("no admin password configured; authentication is unavailable")
		merged = nil
	}

	r.cfg = merged
	r.resolved = true
	return r.cfg
}

// mergeInto copies fields from src into dst where dst has no value yet.
func mergeInto(dst, src *Config) {
	if dst.Password == "" {
		dst.Password = src.Password
	}
	if dst.Username == "" {
		dst.Username = src.Username
	}
	if dst.Encryption == nil {
		dst.Encryption = src.Encryption
	}
	if dst.Security == nil {
		dst.Security = src.Security
	}
	if dst.Version == "" {
		dst.Version = src.Version
	}
}

// Reload drops the memoized configuration so the next access re-reads
// all sources. Intended for tests and hot config reload.
func (r *Resolver) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = false
	r.cfg = nil
}

// AdminPassword returns the resolved admin password, which is also the
// session signing secret. Empty when no source provides one.
func (r *Resolver) AdminPassword() string {
	if cfg := r.Resolve(); cfg != nil {
		return cfg.Password
	}
	return ""
}

// AdminUsername returns the fixed super-admin username. It falls back
// to the legacy USERNAME variable even when the structured config is
// present but has no username field.
func (r *Resolver) AdminUsername() string {
	if cfg := r.Resolve(); cfg != nil && cfg.Username != "" {
		return cfg.Username
	}
	return os.Getenv(EnvLegacyUsername)
}

// ValidatePassword applies the configured password policy to a
// candidate. With no policy configured every password is valid. The
// reason is a user-facing message, empty when the password is valid.
func (r *Resolver) ValidatePassword(password string) (bool, string) {
	cfg := r.Resolve()
	if cfg == nil {
		return true, ""
	}
	return checkPolicy(cfg.Security, password)
}
