package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "dev" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ScraperTimeout != 10*time.Second {
		t.Fatalf("expected 10s scraper timeout, got %s", cfg.ScraperTimeout)
	}
	if !reflect.DeepEqual(cfg.CORSAllowOrigin, []string{"http://localhost:5173"}) {
		t.Fatalf("unexpected cors origins %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "fitable.yaml")
	body := "port: \"9000\"\nscraper_url: http://scraper.local/\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "7000")
	t.Setenv("ENV", "prod")
	t.Setenv("DATABASE_URL", "postgres://localhost/fitable")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SCRAPER_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7000" {
		t.Fatalf("env should win over file, got port %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected normalized env, got %s", cfg.Env)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected file log level, got %s", cfg.LogLevel)
	}
	if cfg.ScraperURL != "http://scraper.local" {
		t.Fatalf("unexpected scraper url %q", cfg.ScraperURL)
	}
	if cfg.ScraperTimeout != 3*time.Second {
		t.Fatalf("unexpected scraper timeout %s", cfg.ScraperTimeout)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.CORSAllowOrigin, want) {
		t.Fatalf("unexpected cors origins %v", cfg.CORSAllowOrigin)
	}
}

func TestValidateProductionRequiresSecrets(t *testing.T) {
	cfg := Config{Env: "production"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected production validation error")
	}
	cfg.DatabaseURL = "postgres://localhost/fitable"
	cfg.JWTSecret = "s3cret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Config{Env: "dev"}).Validate(); err != nil {
		t.Fatalf("dev config should validate: %v", err)
	}
}
