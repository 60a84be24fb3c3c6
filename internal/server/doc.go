// Package server wires the MoonTV HTTP surface together: the request
// gate in front, the auth API handlers behind it, and the login,
// warning, and debug pages.
//
// # Routes
//
// Exempt from the gate:
//
//	POST /api/login            issue a session cookie
//	POST /api/logout           clear the session cookie
//	POST /api/register         create a user (server-storage mode only)
//	GET  /api/debug            deployment diagnostics
//	GET  /login /warning /debug  pages
//	GET  /health               liveness probe
//	GET  /metrics              Prometheus metrics (when enabled)
//
// Everything else, notably POST /api/change-password, passes through
// the gate first.
package server
