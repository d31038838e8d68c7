package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Server.Port != "5000" {
		t.Errorf("Expected default port 5000, got %s", cfg.Server.Port)
	}
	if cfg.Server.MaxUploadBytes != 10*1024*1024 {
		t.Errorf("Expected 10MB upload limit, got %d", cfg.Server.MaxUploadBytes)
	}
	if !cfg.Seed.Enabled {
		t.Errorf("Expected seeding to be enabled by default")
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: "9000"
  storage_path: /tmp/saathi
  shutdown_timeout: 3s
logging:
  level: debug
  format: text
seed:
  enabled: false
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("REALTIME_SEND_BUFFER", "8")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "750ms")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Server.Port != "9100" {
		t.Errorf("Expected env to override port, got %s", cfg.Server.Port)
	}
	if cfg.Server.StoragePath != "/tmp/saathi" {
		t.Errorf("Expected storage path from file, got %s", cfg.Server.StoragePath)
	}
	if cfg.Server.ShutdownTimeout != 750*time.Millisecond {
		t.Errorf("Expected env shutdown timeout 750ms, got %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Seed.Enabled {
		t.Errorf("Expected seeding disabled from file")
	}
	if cfg.Realtime.SendBuffer != 8 {
		t.Errorf("Expected send buffer 8, got %d", cfg.Realtime.SendBuffer)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatalf("Expected unsupported log format to fail validation")
	}
}

func TestLoadConfigRejectsMalformedEnv(t *testing.T) {
	t.Setenv("SERVER_MAX_UPLOAD_BYTES", "ten")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatalf("Expected non-numeric upload limit to fail")
	}
}
