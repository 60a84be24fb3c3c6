// ABOUTME: Auth API handlers: login, logout, register, change-password, debug
// ABOUTME: Thin JSON wrappers over the authcfg resolver, session codec, and store

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/771313147/MoonTV/internal/authcfg"
	"github.com/771313147/MoonTV/internal/config"
	"github.com/771313147/MoonTV/internal/session"
	"github.com/771313147/MoonTV/internal/store"
)

// LoginRequest is the JSON request body for POST /api/login.
type LoginRequest struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

// RegisterRequest is the JSON request body for POST /api/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the JSON request body for POST /api/change-password.
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// defaultAdminUsername identifies the shared-secret account when the
// configuration names no admin username. Tokens must carry a non-empty
// username to verify, so the admin identity always has one.
const defaultAdminUsername = "admin"

// adminUsername returns the fixed super-admin identity, falling back
// to the default when no source configures one.
func (s *Server) adminUsername() string {
	if u := s.resolver.AdminUsername(); u != "" {
		return u
	}
	return defaultAdminUsername
}

// sendJSON writes a JSON response with the given status.
func (s *Server) sendJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// sendJSONError writes a JSON error response.
func (s *Server) sendJSONError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, map[string]string{"error": message})
}

// authenticatedUser re-derives the caller identity from the session
// cookie. Handlers must not trust gate side effects for mutations, so
// verification happens again here against the current secret.
func (s *Server) authenticatedUser(r *http.Request) (string, bool) {
	secret := s.resolver.AdminPassword()
	if secret == "" {
		return "", false
	}
	tok, err := session.ReadCookie(r)
	if err != nil || !session.Verify(tok, secret, time.Now()) {
		return "", false
	}
	return tok.Username, true
}

// handleLogin validates a credential and issues a session cookie.
// The admin identity authenticates against the resolved config
// password; any other username goes to the credential store.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	secret := s.resolver.AdminPassword()
	if secret == "" {
		s.sendJSONError(w, http.StatusInternalServerError, "server password not configured")
		return
	}

	adminUsername := s.adminUsername()

	username := req.Username
	if username == "" {
		username = adminUsername
	}

	switch {
	case s.config.Storage.Type == config.StorageTypeLocalStorage || username == adminUsername:
		// Shared-secret login: the admin credential comes from config.
		if req.Password != secret {
			s.sendJSONError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
	default:
		if err := s.storage.ValidateUser(r.Context(), username, req.Password); err != nil {
			if errors.Is(err, store.ErrUserNotFound) || errors.Is(err, store.ErrWrongPassword) {
				s.sendJSONError(w, http.StatusUnauthorized, "invalid username or password")
				return
			}
			s.logger.Error("credential check failed", "error", err)
			s.sendJSONError(w, http.StatusInternalServerError, "login failed")
			return
		}
	}

	tok := session.Issue(username, time.Now(), secret)
	if err := session.WriteCookie(w, tok, r.TLS != nil); err != nil {
		s.sendJSONError(w, http.StatusInternalServerError, "login failed")
		return
	}

	s.logger.Info("login successful", "username", username)
	s.sendJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleLogout clears the session cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	session.ClearCookie(w)
	s.sendJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleRegister creates a new user in the credential store and logs
// it in. Unavailable in localstorage mode.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if s.config.Storage.Type == config.StorageTypeLocalStorage {
		s.sendJSONError(w, http.StatusBadRequest, "registration is not supported in localstorage mode")
		return
	}

	secret := s.resolver.AdminPassword()
	if secret == "" {
		s.sendJSONError(w, http.StatusInternalServerError, "server password not configured")
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Username == "" || req.Password == "" {
		s.sendJSONError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	if req.Username == s.adminUsername() {
		s.sendJSONError(w, http.StatusBadRequest, "username is reserved")
		return
	}

	if ok, reason := s.resolver.ValidatePassword(req.Password); !ok {
		s.sendJSONError(w, http.StatusBadRequest, reason)
		return
	}

	if err := s.storage.RegisterUser(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			s.sendJSONError(w, http.StatusBadRequest, "user already exists")
			return
		}
		s.logger.Error("registration failed", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	tok := session.Issue(req.Username, time.Now(), secret)
	if err := session.WriteCookie(w, tok, r.TLS != nil); err != nil {
		s.sendJSONError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	s.sendJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleChangePassword updates the caller's stored credential. The
// fixed admin identity is refused: its credential lives in
// configuration, not the store.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if s.config.Storage.Type == config.StorageTypeLocalStorage {
		s.sendJSONError(w, http.StatusBadRequest, "password change is not supported in localstorage mode")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	username, ok := s.authenticatedUser(r)
	if !ok {
		s.sendJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// The admin check wins over all validation: that credential is
	// config-sourced and immutable here no matter what was submitted.
	if username == s.adminUsername() {
		s.sendJSONError(w, http.StatusBadRequest, "the admin password must be changed in the configuration")
		return
	}

	if req.NewPassword == "" {
		s.sendJSONError(w, http.StatusBadRequest, "new password must not be empty")
		return
	}

	if ok, reason := s.resolver.ValidatePassword(req.NewPassword); !ok {
		s.sendJSONError(w, http.StatusBadRequest, reason)
		return
	}

	if s.storage == nil {
		s.sendJSONError(w, http.StatusInternalServerError, "storage backend does not support password change")
		return
	}

	if err := s.storage.ChangePassword(r.Context(), username, req.NewPassword); err != nil {
		s.logger.Error("password change failed", "username", username, "error", err)
		s.sendJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "failed to change password",
			"details": err.Error(),
		})
		return
	}

	s.sendJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// debugInfo is the JSON response for GET /api/debug. It reports
// configuration presence, never secret material.
type debugInfo struct {
	Timestamp   string         `json:"timestamp"`
	StorageType string         `json:"storageType"`
	AuthConfig  debugAuth      `json:"authConfig"`
	Environment map[string]any `json:"environment"`
	HasCookie   bool           `json:"hasAuthCookie"`
}

type debugAuth struct {
	HasAdminPassword    bool `json:"hasAdminPassword"`
	AdminPasswordLength int  `json:"adminPasswordLength"`
	HasAdminUsername    bool `json:"hasAdminUsername"`
}

// handleDebug reports deployment diagnostics for troubleshooting
// misconfigured instances.
func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	password := s.resolver.AdminPassword()
	envJSON := os.Getenv(authcfg.EnvConfigJSON)

	_, cookieErr := r.Cookie(session.CookieName)

	s.sendJSON(w, http.StatusOK, debugInfo{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		StorageType: s.config.Storage.Type,
		AuthConfig: debugAuth{
			HasAdminPassword:    password != "",
			AdminPasswordLength: len(password),
			HasAdminUsername:    s.resolver.AdminUsername() != "",
		},
		Environment: map[string]any{
			"AUTH_CONFIG_JSON":        envJSON != "",
			"AUTH_CONFIG_JSON_LENGTH": len(envJSON),
			"STORAGE_TYPE":            os.Getenv(config.EnvStorageType),
		},
		HasCookie: cookieErr == nil,
	})
}
