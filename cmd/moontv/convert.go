// ABOUTME: convert-auth-config subcommand baking auth.config.json into the binary
// ABOUTME: Validates the document and writes it to the authcfg embed location

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/771313147/MoonTV/internal/authcfg"
)

// embedTarget is where the embedded auth configuration lives relative
// to the repository root. The authcfg package embeds this file at
// build time.
var embedTarget = filepath.Join("internal", "authcfg", "embedded", "auth.config.json")

// runConvertAuthConfig reads auth.config.json (or the path given as an
// extra argument), validates it, and rewrites the embed source so the
// next build carries the configuration. Run it before `go build`.
func runConvertAuthConfig() error {
	src := "auth.config.json"
	if len(os.Args) > 2 {
		src = os.Args[2]
	}

	raw, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	cfg, err := authcfg.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid auth config: %w", src, err)
	}

	// Re-render canonically so the embedded copy is normalized.
	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("rendering auth config: %w", err)
	}
	out = append(out, '\n')

	if err := os.MkdirAll(filepath.Dir(embedTarget), 0755); err != nil {
		return fmt.Errorf("creating embed directory: %w", err)
	}

	if err := os.WriteFile(embedTarget, out, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", embedTarget, err)
	}

	fmt.Printf("wrote %s (username=%q, policy=%v)\n", embedTarget, cfg.Username, cfg.Security != nil)
	return nil
}
