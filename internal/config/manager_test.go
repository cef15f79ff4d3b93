package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validConfig = `
server:
  host: "0.0.0.0"
  port: 8080

api:
  endpoint: "https://trends.example.com/v1beta/timelines"
  api_key: "test-key"
  qps: 1.0
  timeout_ms: 30000

fetch:
  batch_size: 30
  geo: "US"
  geo_level: "country"
  frequency: "week"

logger:
  level: "info"
  format: "json"
  output: "stderr"
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestManager_Load(t *testing.T) {
	manager := NewManager()

	cfg, err := manager.Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.API.Endpoint != "https://trends.example.com/v1beta/timelines" {
		t.Errorf("api endpoint = %q", cfg.API.Endpoint)
	}
	if cfg.API.QPS != 1.0 {
		t.Errorf("api qps = %v, want 1.0", cfg.API.QPS)
	}
	if cfg.Fetch.BatchSize != 30 {
		t.Errorf("batch size = %d, want 30", cfg.Fetch.BatchSize)
	}
	if got := manager.GetConfig(); got != cfg {
		t.Error("GetConfig did not return the loaded config")
	}
}

func TestManager_LoadInvalidPort(t *testing.T) {
	contents := `
server:
  port: 0
api:
  endpoint: "https://trends.example.com"
`
	if _, err := NewManager().Load(writeConfig(t, contents)); err == nil {
		t.Error("expected error for invalid port")
	}
}

func TestManager_LoadMissingEndpoint(t *testing.T) {
	contents := `
server:
  port: 8080
`
	if _, err := NewManager().Load(writeConfig(t, contents)); err == nil {
		t.Error("expected error for missing endpoint")
	}
}

func TestManager_LoadBadGeoLevel(t *testing.T) {
	contents := `
server:
  port: 8080
api:
  endpoint: "https://trends.example.com"
fetch:
  geo_level: "province"
`
	if _, err := NewManager().Load(writeConfig(t, contents)); err == nil {
		t.Error("expected error for invalid geo_level")
	}
}

func TestManager_ReloadBeforeLoad(t *testing.T) {
	if err := NewManager().Reload(); err == nil {
		t.Error("expected error reloading before load")
	}
}
