// ABOUTME: Entry point for the MoonTV server
// ABOUTME: Subcommands for serving, health probing, and auth config conversion

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/771313147/MoonTV/internal/authcfg"
	"github.com/771313147/MoonTV/internal/config"
	"github.com/771313147/MoonTV/internal/server"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
                                _____ _   _
  _ __ ___   ___   ___  _ __   |_   _| | | |
 | '_ ' _ \ / _ \ / _ \| '_ \    | | | | | |
 | | | | | | (_) | (_) | | | |   | |  \ \_/ /
 |_| |_| |_|\___/ \___/|_| |_|   |_|   \___/
`

// getConfigPath returns the path to the server config file.
// Priority: MOONTV_CONFIG env var > ./moontv.yaml
func getConfigPath() string {
	if envPath := os.Getenv("MOONTV_CONFIG"); envPath != "" {
		return envPath
	}
	return "moontv.yaml"
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: moontv <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve                       Start the server")
		fmt.Println("  health                      Check server health")
		fmt.Println("  convert-auth-config [path]  Bake auth.config.json into the binary source")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "health":
		err = runHealth(ctx)
	case "convert-auth-config":
		err = runConvertAuthConfig()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Logging)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:    %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Storage: %s\n", cfg.Storage.Type)
	fmt.Println()

	resolver := authcfg.NewResolver(logger)
	if resolver.AdminPassword() == "" {
		yellow := color.New(color.FgYellow)
		yellow.Println("    ⚠ no admin password configured; protected routes will redirect to /warning")
		fmt.Println()
	}

	logger.Info("starting moontv",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
		"storage", cfg.Storage.Type,
	)

	srv, err := server.New(cfg, resolver, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return srv.Run(ctx)
}

// loadConfig loads from the config file, falling back to env-driven
// defaults when no file exists.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, fmt.Errorf("loading config: %w", err)
}

func runHealth(ctx context.Context) error {
	cfg, err := loadConfig(getConfigPath())
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://%s/health", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}
