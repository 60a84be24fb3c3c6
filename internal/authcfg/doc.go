// Package authcfg resolves the effective authentication configuration
// for the MoonTV server.
//
// # Sources
//
// Configuration is resolved from an ordered list of sources; the first
// source that provides a value for a field wins. Username and password
// may come from different sources.
//
//  1. Embedded auth.config.json, baked into the binary at build time by
//     the convert-auth-config subcommand.
//  2. The AUTH_CONFIG_JSON environment variable, holding the same JSON
//     document.
//  3. Legacy PASSWORD and USERNAME environment variables, consulted
//     per-field for backwards compatibility.
//
// A source that fails to parse or validate is logged and skipped;
// resolution continues with the next source.
//
// # Configuration Document
//
// The JSON document shared by sources 1 and 2:
//
//	{
//	  "password": "s3cr3t",
//	  "username": "admin",
//	  "security": {
//	    "minPasswordLength": 8,
//	    "requireSpecialChars": false
//	  },
//	  "version": "1.0"
//	}
//
// The password doubles as the HMAC secret for session token signing;
// without one, no request can authenticate.
//
// # Lifecycle
//
// A Resolver is constructed once at process start and passed to the
// request gate and handlers. Resolution is lazy and memoized; Reload()
// drops the memo so the next access re-reads all sources. Concurrent
// resolution after a reload is safe; the worst case is a redundant
// recompute, never a torn read.
package authcfg
