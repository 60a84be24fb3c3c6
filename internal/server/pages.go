// ABOUTME: Rendering for the login, warning, and debug pages
// ABOUTME: Loads templates from the embedded filesystem

package server

import (
	"html/template"
	"net/http"
)

type pageData struct {
	Title string
}

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// renderPage renders a named embedded template.
func (s *Server) renderPage(w http.ResponseWriter, name, title string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, pageData{Title: title}); err != nil {
		s.logger.Error("failed to render page", "template", name, "error", err)
	}
}

// handleLoginPage renders the login form.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "login.html", "Sign in to MoonTV")
}

// handleWarningPage renders the deployment-misconfiguration warning.
func (s *Server) handleWarningPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "warning.html", "MoonTV")
}

// handleDebugPage renders the diagnostics page backed by /api/debug.
func (s *Server) handleDebugPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "debug.html", "MoonTV diagnostics")
}
