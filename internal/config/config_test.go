// ABOUTME: Tests for server configuration loading and validation
// ABOUTME: Covers env expansion, STORAGE_TYPE override, and required fields

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeConfig writes YAML content to a temp file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "moontv.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	t.Setenv(EnvStorageType, "")

	cfg, err := Load(writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"
storage:
  type: "sqlite"
  path: "/tmp/users.db"
logging:
  level: "debug"
  format: "json"
metrics:
  enabled: true
  path: "/metrics"
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("HTTPAddr = %q", cfg.Server.HTTPAddr)
	}
	if cfg.Storage.Type != StorageTypeSQLite || cfg.Storage.Path != "/tmp/users.db" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = false")
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv(EnvStorageType, "")
	t.Setenv("TEST_DB_PATH", "/data/users.db")

	cfg, err := Load(writeConfig(t, `
server:
  http_addr: "127.0.0.1:9090"
storage:
  type: "sqlite"
  path: "${TEST_DB_PATH}"
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Path != "/data/users.db" {
		t.Errorf("Storage.Path = %q, want expanded env value", cfg.Storage.Path)
	}
}

func TestLoad_StorageTypeEnvOverride(t *testing.T) {
	t.Setenv(EnvStorageType, StorageTypeLocalStorage)

	cfg, err := Load(writeConfig(t, `
server:
  http_addr: "127.0.0.1:9090"
storage:
  type: "sqlite"
  path: "/tmp/users.db"
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Type != StorageTypeLocalStorage {
		t.Errorf("Storage.Type = %q, want env override", cfg.Storage.Type)
	}
}

func TestLoad_MissingHTTPAddr(t *testing.T) {
	t.Setenv(EnvStorageType, "")

	_, err := Load(writeConfig(t, `
storage:
  type: "localstorage"
`))
	if err == nil {
		t.Error("Load() accepted config without server.http_addr")
	}
}

func TestLoad_SQLiteRequiresPath(t *testing.T) {
	t.Setenv(EnvStorageType, "")

	_, err := Load(writeConfig(t, `
server:
  http_addr: "127.0.0.1:9090"
storage:
  type: "sqlite"
`))
	if err == nil {
		t.Error("Load() accepted sqlite storage without a path")
	}
}

func TestDefault(t *testing.T) {
	t.Setenv(EnvStorageType, "")

	cfg := Default()
	if cfg.Server.HTTPAddr == "" {
		t.Error("Default() has no http addr")
	}
	if cfg.Storage.Type != StorageTypeLocalStorage {
		t.Errorf("Default() storage type = %q, want localstorage", cfg.Storage.Type)
	}

	t.Setenv(EnvStorageType, "sqlite")
	if got := Default().Storage.Type; got != "sqlite" {
		t.Errorf("Default() storage type = %q, want sqlite from env", got)
	}
}
