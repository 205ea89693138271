// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Save backends selectable via SAVE_BACKEND.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	StoriesDir  string `env:"STORIES_DIR" envDefault:"stories"`
	SavesDir    string `env:"SAVES_DIR" envDefault:"saves"`
	SaveBackend string `env:"SAVE_BACKEND" envDefault:"file"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// LogFile receives the diagnostic trace; stdout belongs to the
	// game. Empty disables logging.
	LogFile  string `env:"LOG_FILE" envDefault:"adventure.log"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	switch cfg.SaveBackend {
	case BackendFile, BackendRedis:
	default:
		return nil, fmt.Errorf("invalid SAVE_BACKEND %q (want %q or %q)", cfg.SaveBackend, BackendFile, BackendRedis)
	}
	return cfg, nil
}

// SlogLevel maps the configured level string onto slog levels, falling
// back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
