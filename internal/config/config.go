// ABOUTME: Configuration loading and parsing for the MoonTV server
// ABOUTME: Supports YAML files with environment variable expansion

package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// StorageTypeLocalStorage is the no-backend deployment mode: all state
// lives in the browser and server-side authentication is bypassed.
const StorageTypeLocalStorage = "localstorage"

// StorageTypeSQLite is the server-backed deployment mode.
const StorageTypeSQLite = "sqlite"

// EnvStorageType overrides storage.type when set.
const EnvStorageType = "STORAGE_TYPE"

// Config represents the complete MoonTV server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig holds server address configuration.
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// StorageConfig selects the credential backend.
type StorageConfig struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig holds metrics endpoint configuration.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MetricsPath returns the configured metrics endpoint path, defaulting
// to /metrics when unset.
func (c *Config) MetricsPath() string {
	if c.Metrics.Path != "" {
		return c.Metrics.Path
	}
	return "/metrics"
}

// Load reads a configuration file from the given path and returns a
// parsed Config. Environment variables in the format ${VAR_NAME} are
// expanded, and the STORAGE_TYPE variable overrides storage.type.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file exists: serve on
// :8080, storage mode from the environment (localstorage when unset).
func Default() *Config {
	cfg := &Config{
		Server:  ServerConfig{HTTPAddr: "0.0.0.0:8080"},
		Storage: StorageConfig{Type: StorageTypeLocalStorage},
	}
	cfg.applyEnvOverrides()
	return cfg
}

// applyEnvOverrides folds environment-only settings into the config.
func (c *Config) applyEnvOverrides() {
	if mode := os.Getenv(EnvStorageType); mode != "" {
		c.Storage.Type = mode
	}
	if c.Storage.Type == "" {
		c.Storage.Type = StorageTypeLocalStorage
	}
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables become empty strings.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present
// and valid. Returns an error describing the first failure found.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	if c.Storage.Type == StorageTypeSQLite && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required when storage.type is %q", StorageTypeSQLite)
	}

	return nil
}
