package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "badger" {
		t.Errorf("default backend = %q, want badger", cfg.Storage.Backend)
	}
	if cfg.Myfxbook.BaseURL != "https://www.myfxbook.com" {
		t.Errorf("default base url = %q", cfg.Myfxbook.BaseURL)
	}
	if got := cfg.Cache.GetDefaultTTL(); got != 10*time.Minute {
		t.Errorf("default TTL = %v, want 10m", got)
	}
	if got := cfg.Myfxbook.GetTimeout(); got != 30*time.Second {
		t.Errorf("default timeout = %v, want 30s", got)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fxlens.toml")
	content := `
environment = "production"

[server]
port = 9090

[accounts]
ids = ["1001", "1002"]
low_risk_ids = ["1001"]

[cache]
default_ttl = "5m"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if len(cfg.Accounts.IDs) != 2 {
		t.Errorf("account ids = %v, want 2 entries", cfg.Accounts.IDs)
	}
	if got := cfg.Cache.GetDefaultTTL(); got != 5*time.Minute {
		t.Errorf("TTL = %v, want 5m", got)
	}
	// Unset fields keep their defaults.
	if cfg.Myfxbook.BaseURL != "https://www.myfxbook.com" {
		t.Errorf("base url lost its default: %q", cfg.Myfxbook.BaseURL)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FXLENS_PORT", "7070")
	t.Setenv("FXLENS_ACCOUNT_IDS", " 2001, 2002 ,")
	t.Setenv("FXLENS_CACHE_TTL", "1h")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070", cfg.Server.Port)
	}
	if len(cfg.Accounts.IDs) != 2 || cfg.Accounts.IDs[0] != "2001" {
		t.Errorf("account ids = %v, want [2001 2002]", cfg.Accounts.IDs)
	}
	if got := cfg.Cache.GetDefaultTTL(); got != time.Hour {
		t.Errorf("TTL = %v, want 1h", got)
	}
}

func TestValidateRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	missing := cfg.ValidateRequired()
	if len(missing) != 3 {
		t.Fatalf("missing = %v, want 3 entries", missing)
	}

	cfg.Myfxbook.Email = "ops@example.com"
	cfg.Myfxbook.Password = "secret"
	cfg.Accounts.IDs = []string{"1001"}
	if missing := cfg.ValidateRequired(); len(missing) != 0 {
		t.Errorf("missing = %v, want none", missing)
	}
}

func TestGetTimeoutFallsBackOnGarbage(t *testing.T) {
	cfg := MyfxbookConfig{Timeout: "not-a-duration"}
	if got := cfg.GetTimeout(); got != 30*time.Second {
		t.Errorf("timeout = %v, want 30s fallback", got)
	}
}
