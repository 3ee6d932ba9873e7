package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr == "" {
		t.Fatal("expected a default server address")
	}
	if cfg.Session.CookieName == "" {
		t.Fatal("expected a default session cookie name")
	}
	if cfg.Session.Lifetime <= 0 {
		t.Fatalf("expected positive session lifetime, got %s", cfg.Session.Lifetime)
	}
	if cfg.Uploads.Dir == "" {
		t.Fatal("expected a default uploads directory")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("SESSION_LIFETIME", "1h")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("AUTH_SECRET", "hush")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Fatalf("expected addr override, got %q", cfg.Server.Addr)
	}
	if cfg.Database.URL != "postgres://localhost/test" {
		t.Fatalf("expected database url override, got %q", cfg.Database.URL)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Fatalf("expected 25 open conns, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Session.Lifetime != time.Hour {
		t.Fatalf("expected 1h session lifetime, got %s", cfg.Session.Lifetime)
	}
	if !cfg.Session.CookieSecure {
		t.Fatal("expected secure session cookie")
	}
	if cfg.Auth.Secret != "hush" {
		t.Fatalf("expected auth secret override, got %q", cfg.Auth.Secret)
	}
}

func TestLoadRequiresSecretWithDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("AUTH_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when AUTH_SECRET is empty and a database is configured")
	}

	t.Setenv("AUTH_SECRET", "hush")
	if _, err := Load(); err != nil {
		t.Fatalf("Load returned error with secret set: %v", err)
	}
}

func TestEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")
	t.Setenv("DB_MAX_IDLE_CONNS", "many")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.MaxIdleConns != 2 {
		t.Fatalf("expected fallback idle conns, got %d", cfg.Database.MaxIdleConns)
	}
}
