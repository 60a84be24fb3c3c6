// Package config handles server configuration loading for MoonTV.
//
// # Overview
//
// Configuration is loaded from a YAML file with environment variable
// expansion, then validated. Storage mode may also come from the
// STORAGE_TYPE environment variable, which wins over the file so
// container deployments can flip modes without editing config.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from MOONTV_CONFIG environment variable
//  2. ./moontv.yaml (current directory)
//
// # Sections
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//
//	storage:
//	  type: "sqlite"          # "sqlite" or "localstorage"
//	  path: "/var/lib/moontv/users.db"
//
//	logging:
//	  level: "info"           # debug, info, warn, error
//	  format: "text"          # text, json
//
//	metrics:
//	  enabled: true
//	  path: "/metrics"
//
// Values can reference environment variables with ${VAR_NAME} syntax.
//
// Note that the authentication secret is not configured here; it is
// resolved separately by the authcfg package from the embedded
// auth.config.json and environment variables.
package config
