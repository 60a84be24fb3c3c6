// ABOUTME: Authentication gate middleware applied ahead of all handlers
// ABOUTME: Classifies paths, verifies session tokens, and branches 401 vs redirect

package gate

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/771313147/MoonTV/internal/authcfg"
	"github.com/771313147/MoonTV/internal/session"
)

// ModeLocalStorage is the deployment mode with no server-side
// credential store. The gate is bypassed entirely in this mode.
const ModeLocalStorage = "localstorage"

// Decision is the outcome of classifying a single request.
type Decision int

// Gate decisions, one per request.
const (
	Exempt Decision = iota
	SecretMissing
	ModeBypass
	NoToken
	TokenInvalid
	Authorized
)

// String returns the metric label for a decision.
func (d Decision) String() string {
	switch d {
	case Exempt:
		return "exempt"
	case SecretMissing:
		return "secret_missing"
	case ModeBypass:
		return "mode_bypass"
	case NoToken:
		return "no_token"
	case TokenInvalid:
		return "token_invalid"
	case Authorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// exemptPrefixes lists path prefixes that bypass the gate. Matching is
// prefix-based, not exact: any path sharing a prefix with an entry is
// exempt.
var exemptPrefixes = []string{
	"/api/login",
	"/api/register",
	"/api/logout",
	"/api/cron",
	"/api/server-config",
	"/api/debug",
	"/login",
	"/register",
	"/warning",
	"/debug",
	"/health",
	"/favicon.ico",
	"/robots.txt",
	"/manifest.json",
	"/icons/",
	"/logo.png",
	"/screenshot.png",
}

// IsExempt reports whether a request path bypasses authentication.
func IsExempt(path string) bool {
	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Gate decides, per request, whether the caller may proceed. It runs
// before every other handler.
type Gate struct {
	resolver *authcfg.Resolver
	mode     string
	logger   *slog.Logger
	now      func() time.Time
	exempt   []string
}

// New creates a gate over the given resolver and deployment storage
// mode. Extra exempt prefixes extend the built-in list, for paths only
// the deployment knows about such as a relocated metrics endpoint.
func New(resolver *authcfg.Resolver, mode string, logger *slog.Logger, extraExempt ...string) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		resolver: resolver,
		mode:     mode,
		logger:   logger.With("component", "gate"),
		now:      time.Now,
		exempt:   extraExempt,
	}
}

// isExempt checks the built-in prefixes plus this gate's extras.
func (g *Gate) isExempt(path string) bool {
	if IsExempt(path) {
		return true
	}
	for _, prefix := range g.exempt {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Decide classifies a request from its path and cookie token. It is a
// pure function of its inputs plus the resolved secret and clock, with
// no HTTP side effects.
func (g *Gate) Decide(path string, tok session.Token, hasToken bool) Decision {
	if g.isExempt(path) {
		return Exempt
	}

	secret := g.resolver.AdminPassword()
	if secret == "" {
		return SecretMissing
	}

	if g.mode == ModeLocalStorage {
		return ModeBypass
	}

	if !hasToken {
		return NoToken
	}

	if !session.Verify(tok, secret, g.now()) {
		return TokenInvalid
	}

	return Authorized
}

// Middleware wraps next with the gate. Allowed requests are forwarded
// with the authenticated username attached to the context; failures
// are answered locally and never reach next.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, err := session.ReadCookie(r)
		decision := g.Decide(r.URL.Path, tok, err == nil)
		decisionCounter.WithLabelValues(decision.String()).Inc()

		switch decision {
		case Exempt, ModeBypass:
			next.ServeHTTP(w, r)

		case SecretMissing:
			g.logger.Warn("no admin password configured, redirecting to warning page", "path", r.URL.Path)
			http.Redirect(w, r, "/warning", http.StatusTemporaryRedirect)

		case NoToken, TokenInvalid:
			g.handleFailure(w, r)

		case Authorized:
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), tok.Username)))
		}
	})
}

// handleFailure answers an unauthenticated request: API paths get a
// plain 401, everything else is sent to the login page with the
// original destination preserved for post-login navigation.
func (g *Gate) handleFailure(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api") {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	dest := r.URL.Path
	if r.URL.RawQuery != "" {
		dest += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, "/login?redirect="+url.QueryEscape(dest), http.StatusTemporaryRedirect)
}
