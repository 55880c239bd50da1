package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CacheName != "vaccination-reminder-v1" {
		t.Fatalf("unexpected cache name %q", cfg.CacheName)
	}
	if cfg.PeriodicSyncInterval != time.Hour {
		t.Fatalf("unexpected periodic interval %v", cfg.PeriodicSyncInterval)
	}
	if len(cfg.CacheManifest) != len(DefaultManifest) {
		t.Fatalf("expected default manifest, got %v", cfg.CacheManifest)
	}
	if cfg.DashboardPath != "/vaccination-dashboard" {
		t.Fatalf("unexpected dashboard path %q", cfg.DashboardPath)
	}
}

func TestLoadConfigFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "CACHE_NAME: vaccination-reminder-v2\nPERIODIC_SYNC_INTERVAL: 15m\nTIMEZONE: UTC\nCACHE_MANIFEST:\n  - /\n  - /index.html\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CacheName != "vaccination-reminder-v2" {
		t.Fatalf("unexpected cache name %q", cfg.CacheName)
	}
	if cfg.PeriodicSyncInterval != 15*time.Minute {
		t.Fatalf("unexpected periodic interval %v", cfg.PeriodicSyncInterval)
	}
	if len(cfg.CacheManifest) != 2 {
		t.Fatalf("unexpected manifest %v", cfg.CacheManifest)
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Fatalf("expected UTC location, got %v (%v)", loc, err)
	}
}

func TestValidateRejectsUnknownTimezone(t *testing.T) {
	cfg := &Config{CacheName: "c", DashboardPath: "/d", Timezone: "Mars/Olympus"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadConfigValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("TIMEZONE: Mars/Olympus_Mons\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected LoadConfig to reject an unknown time zone")
	}
}
