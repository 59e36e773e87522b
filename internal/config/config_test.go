package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("NODE_ENV", "test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 3333 {
		t.Fatalf("Server.Port = %d, want 3333", cfg.Server.Port)
	}
	if !cfg.App.IsTest() {
		t.Fatalf("App.Environment = %q, want test", cfg.App.Environment)
	}
	if cfg.JWT.AccessTokenTTL != 10*time.Minute {
		t.Fatalf("JWT.AccessTokenTTL = %v", cfg.JWT.AccessTokenTTL)
	}
	if cfg.Scheduling.ConflictMode != "exact" {
		t.Fatalf("Scheduling.ConflictMode = %q", cfg.Scheduling.ConflictMode)
	}
	if cfg.SMTP.Enabled() || cfg.Redis.Enabled() || cfg.Archive.Enabled() {
		t.Fatalf("optional integrations should be disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "8081")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SCHEDULING_CONFLICT_MODE", "interval")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8081 {
		t.Fatalf("Server.Port = %d, want 8081", cfg.Server.Port)
	}
	if !cfg.SMTP.Enabled() {
		t.Fatalf("SMTP should be enabled")
	}
	if cfg.Scheduling.ConflictMode != "interval" {
		t.Fatalf("Scheduling.ConflictMode = %q", cfg.Scheduling.ConflictMode)
	}
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SCHEDULING_CONFLICT_MODE", "fuzzy")

	_, err := Load()
	if err == nil {
		t.Fatalf("Load() error = nil, want validation error")
	}
	for _, want := range []string{"JWT_SECRET", "SCHEDULING_CONFLICT_MODE"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
}
