// ABOUTME: HTTP server orchestrator wiring the gate, handlers, and pages
// ABOUTME: Owns the http.Server lifecycle with graceful shutdown

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/771313147/MoonTV/internal/authcfg"
	"github.com/771313147/MoonTV/internal/config"
	"github.com/771313147/MoonTV/internal/gate"
	"github.com/771313147/MoonTV/internal/store"
)

// Server is the MoonTV HTTP server. The request gate runs ahead of
// every route; storage is nil in localstorage mode.
type Server struct {
	config     *config.Config
	resolver   *authcfg.Resolver
	gate       *gate.Gate
	storage    store.Storage
	logger     *slog.Logger
	httpServer *http.Server
}

// New creates a server from the given configuration. In sqlite mode
// the credential store is opened (and owned) here.
func New(cfg *config.Config, resolver *authcfg.Resolver, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var storage store.Storage
	if cfg.Storage.Type != config.StorageTypeLocalStorage {
		var err error
		storage, err = store.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("opening credential store: %w", err)
		}
	}

	s := &Server{
		config:   cfg,
		resolver: resolver,
		gate:     gate.New(resolver, cfg.Storage.Type, logger, cfg.MetricsPath()),
		storage:  storage,
		logger:   logger.With("component", "server"),
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           s.gate.Middleware(s.routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// handleMethod registers h at path restricted to the given method,
// matching the Go 1.22 "METHOD /path" mux semantics on older
// toolchains: GET also serves HEAD, and other methods get 405 with
// an Allow header.
func handleMethod(mux *http.ServeMux, method, path string, h http.Handler) {
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
			w.Header().Set("Allow", method)
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// routes builds the inner mux. The gate wraps the whole mux, so
// handlers here can assume protected paths carry a verified identity.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	handleMethod(mux, http.MethodGet, "/health", http.HandlerFunc(s.handleHealth))

	handleMethod(mux, http.MethodPost, "/api/login", http.HandlerFunc(s.handleLogin))
	handleMethod(mux, http.MethodPost, "/api/logout", http.HandlerFunc(s.handleLogout))
	handleMethod(mux, http.MethodPost, "/api/register", http.HandlerFunc(s.handleRegister))
	handleMethod(mux, http.MethodPost, "/api/change-password", http.HandlerFunc(s.handleChangePassword))
	handleMethod(mux, http.MethodGet, "/api/debug", http.HandlerFunc(s.handleDebug))

	handleMethod(mux, http.MethodGet, "/login", http.HandlerFunc(s.handleLoginPage))
	handleMethod(mux, http.MethodGet, "/warning", http.HandlerFunc(s.handleWarningPage))
	handleMethod(mux, http.MethodGet, "/debug", http.HandlerFunc(s.handleDebugPage))

	if s.config.Metrics.Enabled {
		handleMethod(mux, http.MethodGet, s.config.MetricsPath(), promhttp.Handler())
	}

	return mux
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr, "storage", s.config.Storage.Type)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context canceled, initiating shutdown")
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		return err
	}

	// Fresh context: the original one is already canceled.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	if s.storage != nil {
		if closeErr := s.storage.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

// handleHealth returns 200 OK if the server is alive.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
