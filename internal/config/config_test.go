package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("GAS_TIMEOUT", "")
		t.Setenv("SESSION_BACKEND", "")
		cfg := Load()
		if cfg.Port == "" {
			t.Fatalf("expected a default port")
		}
		if cfg.SessionsTable == "" || cfg.SessionCookie == "" {
			t.Fatalf("expected session defaults, got %+v", cfg)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("GAS_TIMEOUT", "15s")
		t.Setenv("SESSION_BACKEND", "Redis")
		t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
		cfg := Load()
		if cfg.Port != "9090" {
			t.Fatalf("expected port 9090, got %s", cfg.Port)
		}
		if cfg.GASTimeout != 15*time.Second {
			t.Fatalf("expected 15s timeout, got %v", cfg.GASTimeout)
		}
		if cfg.SessionBackend != SessionBackendRedis {
			t.Fatalf("expected redis backend, got %s", cfg.SessionBackend)
		}
		if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
			t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
		}
	})
}

func TestConfig_InsecureDefaults(t *testing.T) {
	t.Run("built-in secrets are reported", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		t.Setenv("CSRF_KEY", "")
		got := Load().InsecureDefaults()
		if len(got) != 2 || got[0] != "SESSION_SECRET" || got[1] != "CSRF_KEY" {
			t.Fatalf("expected both keys reported, got %v", got)
		}
	})

	t.Run("overridden secrets pass", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "s3cr3t-from-vault")
		t.Setenv("CSRF_KEY", "abcdefghijklmnopqrstuvwxyz012345")
		if got := Load().InsecureDefaults(); len(got) != 0 {
			t.Fatalf("expected no insecure keys, got %v", got)
		}
	})
}
