// ABOUTME: Embeds the build-time auth.config.json into the binary
// ABOUTME: The file is written by the convert-auth-config subcommand

package authcfg

import (
	"bytes"
	_ "embed"
)

// embeddedConfig holds the contents of auth.config.json converted at
// build time. An empty file means no embedded configuration was baked
// in, and the embedded source is treated as absent.
//
//go:embed embedded/auth.config.json
var embeddedConfig []byte

// embeddedSource parses the baked-in configuration, or returns nil when
// none was embedded.
func embeddedSource() (*Config, error) {
	data := bytes.TrimSpace(embeddedConfig)
	if len(data) == 0 {
		return nil, nil
	}
	return Parse(data)
}
