// ABOUTME: End-to-end tests for the gated HTTP surface
// ABOUTME: Exercises the full middleware-plus-mux stack via httptest

package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/771313147/MoonTV/internal/config"
	"github.com/771313147/MoonTV/internal/gate"
	"github.com/771313147/MoonTV/internal/store"
)

// handler returns the server's full stack: gate in front of the mux,
// exactly as Run serves it.
func (s *Server) handler() http.Handler {
	return s.gate.Middleware(s.routes())
}

func TestServer_HealthExempt(t *testing.T) {
	s := newTestServer(t, config.StorageTypeSQLite, "s3cr3t", "admin", store.NewMockStorage())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("GET /health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestServer_ChangePasswordGated(t *testing.T) {
	s := newTestServer(t, config.StorageTypeSQLite, "s3cr3t", "admin", store.NewMockStorage())

	// Without a cookie the gate answers before the handler runs.
	req := httptest.NewRequest(http.MethodPost, "/api/change-password", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	s.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("ungated change-password: code = %d, want 401", rec.Code)
	}
}

func TestServer_LoginExemptEvenUnauthenticated(t *testing.T) {
	s := newTestServer(t, config.StorageTypeSQLite, "s3cr3t", "admin", store.NewMockStorage())

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"password":"s3cr3t"}`))
	rec := httptest.NewRecorder()
	s.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("POST /api/login = %d, want 200", rec.Code)
	}
}

func TestServer_ProtectedPageRedirects(t *testing.T) {
	s := newTestServer(t, config.StorageTypeSQLite, "s3cr3t", "admin", store.NewMockStorage())

	req := httptest.NewRequest(http.MethodGet, "/some/page", nil)
	rec := httptest.NewRecorder()
	s.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("code = %d, want 307", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login?redirect=") {
		t.Errorf("Location = %q", loc)
	}
}

func TestServer_Pages(t *testing.T) {
	s := newTestServer(t, config.StorageTypeSQLite, "s3cr3t", "admin", store.NewMockStorage())

	for _, path := range []string{"/login", "/warning", "/debug"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("GET %s Content-Type = %q", path, ct)
		}
		if !strings.Contains(rec.Body.String(), "<html") {
			t.Errorf("GET %s body is not a page", path)
		}
	}
}

func TestServer_NoSecretWarningRedirect(t *testing.T) {
	s := newTestServer(t, config.StorageTypeSQLite, "", "", store.NewMockStorage())

	req := httptest.NewRequest(http.MethodGet, "/some/page", nil)
	rec := httptest.NewRecorder()
	s.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect || rec.Header().Get("Location") != "/warning" {
		t.Errorf("got %d -> %q, want redirect to /warning", rec.Code, rec.Header().Get("Location"))
	}

	// The warning page itself stays reachable.
	req = httptest.NewRequest(http.MethodGet, "/warning", nil)
	rec = httptest.NewRecorder()
	s.handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /warning = %d, want 200", rec.Code)
	}
}

func TestServer_CustomMetricsPathExempt(t *testing.T) {
	s := newTestServer(t, config.StorageTypeSQLite, "s3cr3t", "admin", store.NewMockStorage())
	s.config.Metrics = config.MetricsConfig{Enabled: true, Path: "/internal/metrics"}
	s.gate = gate.New(s.resolver, config.StorageTypeSQLite, nil, s.config.MetricsPath())

	// The relocated endpoint is scraped without a cookie.
	req := httptest.NewRequest(http.MethodGet, "/internal/metrics", nil)
	rec := httptest.NewRecorder()
	s.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("GET /internal/metrics = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "moontv_auth_decisions_total") {
		t.Error("metrics body missing the gate decision counter")
	}
}

func TestServer_LocalStorageBypass(t *testing.T) {
	s := newTestServer(t, config.StorageTypeLocalStorage, "s3cr3t", "admin", nil)

	// Any protected path is allowed without a cookie; unregistered
	// routes simply 404 from the mux rather than 401 from the gate.
	req := httptest.NewRequest(http.MethodGet, "/some/page", nil)
	rec := httptest.NewRecorder()
	s.handler().ServeHTTP(rec, req)

	if rec.Code == http.StatusUnauthorized || rec.Code == http.StatusTemporaryRedirect {
		t.Errorf("localstorage mode gated the request: %d", rec.Code)
	}
}
