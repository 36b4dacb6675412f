package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("YAMPI_ALIAS", "sonhosdeninar")
	t.Setenv("YAMPI_USER_TOKEN", "user-token")
	t.Setenv("YAMPI_SECRET_KEY", "secret-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Yampi.BaseURL != "https://api.yampi.com.br" {
		t.Fatalf("unexpected base URL %q", cfg.Yampi.BaseURL)
	}
	if cfg.Yampi.HTTPTimeout != 15*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.Yampi.HTTPTimeout)
	}
	if cfg.App.Port != "3000" {
		t.Fatalf("unexpected port %q", cfg.App.Port)
	}
	if !cfg.App.IsProd() {
		t.Fatalf("expected production default, got %q", cfg.App.Env)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("YAMPI_BASE_URL", "http://yampi.test")
	t.Setenv("YAMPI_HTTP_TIMEOUT", "5s")
	t.Setenv("APP_ENV", "development")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Yampi.BaseURL != "http://yampi.test" {
		t.Fatalf("unexpected base URL %q", cfg.Yampi.BaseURL)
	}
	if cfg.Yampi.HTTPTimeout != 5*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.Yampi.HTTPTimeout)
	}
	if !cfg.App.IsDev() {
		t.Fatalf("expected development env, got %q", cfg.App.Env)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("unexpected origins %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadRefusesMissingCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("YAMPI_SECRET_KEY", " ")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for blank secret key")
	}
}
