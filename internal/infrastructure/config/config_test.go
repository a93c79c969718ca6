package config_test

import (
	"testing"
	"time"

	"github.com/iho/networth/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATA_DIR", "")
	t.Setenv("PRICE_CACHE", "")
	t.Setenv("REFRESH_CRON", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DataDir != "./data" {
		t.Fatalf("expected default data dir, got %q", cfg.DataDir)
	}

	if cfg.PriceCache != config.PriceCacheFile {
		t.Fatalf("expected file price cache by default, got %q", cfg.PriceCache)
	}

	if cfg.PriceThrottleMin != 500*time.Millisecond || cfg.PriceThrottleMax != 1500*time.Millisecond {
		t.Fatalf("unexpected throttle defaults: %s..%s", cfg.PriceThrottleMin, cfg.PriceThrottleMax)
	}

	if cfg.PriceDefaultSource != "quefondos" {
		t.Fatalf("expected quefondos as default source, got %q", cfg.PriceDefaultSource)
	}

	if cfg.RefreshCron != "" {
		t.Fatalf("expected scheduled refresh disabled, got %q", cfg.RefreshCron)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/ledger")
	t.Setenv("PRICE_CACHE", "redis")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("PRICE_TIMEOUT", "3s")
	t.Setenv("PRICE_MAX_RETRIES", "5")
	t.Setenv("REFRESH_CRON", "0 0 18 * * 1-5")
	t.Setenv("RATE_LIMIT_RPS", "0.5")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DataDir != "/srv/ledger" {
		t.Fatalf("expected custom data dir, got %s", cfg.DataDir)
	}

	if cfg.PriceCache != config.PriceCacheRedis || cfg.RedisURL != "redis://example" {
		t.Fatalf("expected redis cache settings, got %s %s", cfg.PriceCache, cfg.RedisURL)
	}

	if cfg.PriceTimeout != 3*time.Second || cfg.PriceMaxRetries != 5 {
		t.Fatalf("expected price source overrides, got %s/%d", cfg.PriceTimeout, cfg.PriceMaxRetries)
	}

	if cfg.RefreshCron != "0 0 18 * * 1-5" {
		t.Fatalf("expected cron override, got %q", cfg.RefreshCron)
	}

	if cfg.RateLimitRPS != 0.5 {
		t.Fatalf("expected rate limit override, got %v", cfg.RateLimitRPS)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadRejectsUnknownPriceCache(t *testing.T) {
	t.Setenv("PRICE_CACHE", "memcached")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for unknown price cache")
	}
}

func TestLoadRejectsInvertedThrottle(t *testing.T) {
	t.Setenv("PRICE_THROTTLE_MIN", "2s")
	t.Setenv("PRICE_THROTTLE_MAX", "1s")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for inverted throttle window")
	}
}
