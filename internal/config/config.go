// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DataDir    string `env:"ADX_DATA_DIR" envDefault:"./data"`
	ServerHost string `env:"ADX_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"ADX_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"ADX_ENV" envDefault:"development"`
	LogLevel   string `env:"ADX_LOG_LEVEL" envDefault:"info"`

	// Default UI language; must be the canonical language or an overlay language.
	DefaultLanguage string `env:"ADX_DEFAULT_LANGUAGE" envDefault:"en"`

	// Cache configuration
	RedisURL     string `env:"ADX_REDIS_URL"`                        // Optional Redis URL for a shared merge cache
	CachePrefix  string `env:"ADX_CACHE_PREFIX" envDefault:"adx:"`   // Redis key prefix
	CacheTTL     int    `env:"ADX_CACHE_TTL" envDefault:"3600"`      // Merge cache TTL in seconds
	CacheMaxSize int    `env:"ADX_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Sessions configuration
	SessionsDBPath string `env:"ADX_SESSIONS_DB_PATH"` // SQLite file for session storage; empty = in-memory sessions

	// Catalog reload schedule in cron format; empty disables periodic reload.
	ReloadSchedule string `env:"ADX_RELOAD_SCHEDULE" envDefault:"@every 10m"`

	// API rate limiting
	RateLimitRPS   float64 `env:"ADX_RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"ADX_RATE_LIMIT_BURST" envDefault:"40"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// UseSQLiteSessions returns true if sessions are stored in SQLite.
func (c Config) UseSQLiteSessions() bool {
	return c.SessionsDBPath != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("ADX_SERVER_PORT out of range: %d", cfg.ServerPort)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("ADX_CACHE_TTL must not be negative: %d", cfg.CacheTTL)
	}
	if cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("ADX_RATE_LIMIT_RPS must be positive: %v", cfg.RateLimitRPS)
	}

	return cfg, nil
}
