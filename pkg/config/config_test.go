package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.App.Port)
	}
	if cfg.Store.CatalogDelay != 2500*time.Millisecond {
		t.Fatalf("expected default catalog delay 2.5s, got %v", cfg.Store.CatalogDelay)
	}
	if cfg.Store.SignInDelay != 500*time.Millisecond {
		t.Fatalf("expected default sign-in delay 500ms, got %v", cfg.Store.SignInDelay)
	}
	if cfg.Store.SentinelPassword != "password" {
		t.Fatalf("unexpected sentinel %q", cfg.Store.SentinelPassword)
	}
	if cfg.Store.KVBackend != KVBackendMemory {
		t.Fatalf("expected memory kv backend, got %q", cfg.Store.KVBackend)
	}
	if cfg.DB.Enabled() {
		t.Fatalf("expected database disabled without DSN")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_DBCatalogRequiresDatabase(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogSource, CatalogSourceDB)

	if _, err := Load(); err == nil {
		t.Fatal("expected db catalog without DSN to fail")
	}

	t.Setenv(EnvUseSQLite, "true")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected sqlite to satisfy db catalog: %v", err)
	}
	if !cfg.DB.IsSQLite() {
		t.Fatalf("expected sqlite driver, got %q", cfg.DB.Driver)
	}
	if cfg.DB.ResolvedDSN() != EnvDefaultSQLiteDB {
		t.Fatalf("expected default sqlite dsn, got %q", cfg.DB.ResolvedDSN())
	}
}

func TestLoad_RedisKVRequiresRedis(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvKVBackend, KVBackendRedis)

	if _, err := Load(); err == nil {
		t.Fatal("expected redis kv without redis url to fail")
	}

	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	if _, err := Load(); err != nil {
		t.Fatalf("expected redis kv with url to load: %v", err)
	}
}

func TestLoad_RejectsUnknownCatalogSource(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogSource, "s3")
	if _, err := Load(); err == nil {
		t.Fatal("expected unknown catalog source to fail")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvJWTSecret, "secret")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}

func TestLoad_CORSOriginsAndJanitor(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("OWNSHOP_CORS_ORIGINS", "https://shop.example,https://admin.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if len(cfg.App.CORSOrigins) != 2 || cfg.App.CORSOrigins[1] != "https://admin.example" {
		t.Fatalf("unexpected cors origins %v", cfg.App.CORSOrigins)
	}
	if cfg.Store.JanitorInterval != 10*time.Minute {
		t.Fatalf("expected default janitor interval 10m, got %v", cfg.Store.JanitorInterval)
	}
}
