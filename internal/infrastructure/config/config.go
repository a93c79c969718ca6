package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Price snapshot backends.
const (
	PriceCacheFile  = "file"
	PriceCacheRedis = "redis"
)

// Config holds all application configuration.
type Config struct {
	// Ledger
	DataDir  string `env:"DATA_DIR" envDefault:"./data"`
	Currency string `env:"CURRENCY" envDefault:"EUR"`

	// Price snapshot
	PriceCache string        `env:"PRICE_CACHE" envDefault:"file"`
	RedisURL   string        `env:"REDIS_URL"   envDefault:"redis://localhost:6379"`
	PriceTTL   time.Duration `env:"PRICE_TTL"   envDefault:"0s"`

	// Price sources
	PriceTimeout       time.Duration `env:"PRICE_TIMEOUT"        envDefault:"10s"`
	PriceThrottleMin   time.Duration `env:"PRICE_THROTTLE_MIN"   envDefault:"500ms"`
	PriceThrottleMax   time.Duration `env:"PRICE_THROTTLE_MAX"   envDefault:"1500ms"`
	PriceMaxRetries    int           `env:"PRICE_MAX_RETRIES"    envDefault:"2"`
	PriceDefaultSource string        `env:"PRICE_DEFAULT_SOURCE" envDefault:"quefondos"`
	PriceUserAgent     string        `env:"PRICE_USER_AGENT"`
	QueFondosURL       string        `env:"QUEFONDOS_URL"`
	YahooURL           string        `env:"YAHOO_URL"`

	// Scheduled refresh, empty disables it
	RefreshCron string `env:"REFRESH_CRON"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"2m"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Refresh endpoint rate limit
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"1"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"3"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings that env tags cannot express.
func (c *Config) Validate() error {
	switch c.PriceCache {
	case PriceCacheFile, PriceCacheRedis:
	default:
		return fmt.Errorf("PRICE_CACHE must be %q or %q, got %q", PriceCacheFile, PriceCacheRedis, c.PriceCache)
	}
	if c.PriceThrottleMax < c.PriceThrottleMin {
		return fmt.Errorf("PRICE_THROTTLE_MAX (%s) is below PRICE_THROTTLE_MIN (%s)", c.PriceThrottleMax, c.PriceThrottleMin)
	}
	if c.PriceMaxRetries < 0 {
		return fmt.Errorf("PRICE_MAX_RETRIES must not be negative")
	}
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	return nil
}
