// Package config loads and validates the process configuration from the
// environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv        string `env:"APP_ENV" default:"development"`
	Port          string `env:"PORT" default:"8080"`
	StoreBackend  string `env:"STORE_BACKEND" default:"mongo"`
	MongoURL      string `env:"MONGO_URL"`
	MongoDatabase string `env:"MONGO_DB" default:"ripple"`
	RedisURL      string `env:"REDIS_URL"`
	SessionSecret string `env:"SESSION_SECRET"`
	LogLevel      string `env:"LOG_LEVEL" default:"info"`
	LogFormat     string `env:"LOG_FORMAT" default:"text"`

	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" default:"168h"` // 7 days

	TrendingWindow   time.Duration `env:"TRENDING_WINDOW" default:"0"` // 0 = all time
	TrendingCacheTTL time.Duration `env:"TRENDING_CACHE_TTL" default:"30s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}

	switch cfg.StoreBackend {
	case "mongo":
		if cfg.MongoURL == "" {
			return fmt.Errorf("MONGO_URL is required when STORE_BACKEND=mongo")
		}
	case "memory":
	default:
		return fmt.Errorf("STORE_BACKEND must be mongo or memory, got %q", cfg.StoreBackend)
	}

	if cfg.TrendingWindow < 0 {
		return fmt.Errorf("TRENDING_WINDOW must not be negative")
	}

	return nil
}
