package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/iho/fxreport/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GATEWAY_MODE", "")
	t.Setenv("PROXY_ENDPOINT", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.GatewayMode != "proxy" {
		t.Fatalf("expected default gateway mode proxy, got %s", cfg.GatewayMode)
	}

	if cfg.ProxyEndpoint == "" {
		t.Fatalf("expected default proxy endpoint to be set")
	}

	if cfg.ProxyMaxAttempts != 3 {
		t.Fatalf("expected default max attempts 3, got %d", cfg.ProxyMaxAttempts)
	}

	if cfg.PreloadThrottle != 3*time.Second {
		t.Fatalf("expected default preload throttle 3s, got %s", cfg.PreloadThrottle)
	}

	if cfg.CacheBackend != "memory" {
		t.Fatalf("expected default cache backend memory, got %s", cfg.CacheBackend)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GATEWAY_MODE", "direct")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PROXY_TIMEOUT", "45s")
	t.Setenv("PRELOAD_THROTTLE", "5s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.GatewayMode != "direct" {
		t.Fatalf("expected gateway mode override, got %s", cfg.GatewayMode)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" || cfg.CacheBackend != "redis" {
		t.Fatalf("expected redis cache settings, got url=%s backend=%s", cfg.RedisURL, cfg.CacheBackend)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.ProxyTimeout != 45*time.Second {
		t.Fatalf("expected proxy timeout override, got %s", cfg.ProxyTimeout)
	}

	if cfg.PreloadThrottle != 5*time.Second {
		t.Fatalf("expected preload throttle override, got %s", cfg.PreloadThrottle)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	original := os.Getenv("PROXY_TIMEOUT")
	t.Setenv("PROXY_TIMEOUT", "not-a-duration")
	t.Cleanup(func() {
		t.Setenv("PROXY_TIMEOUT", original)
	})

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
