package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8001"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// StorageConfig holds the per-user sandbox storage root.
type StorageConfig struct {
	Root string `envconfig:"STORAGE_ROOT" default:"uploads"`
}

// DatabaseConfig holds the account database location.
type DatabaseConfig struct {
	Path string `envconfig:"DATABASE_PATH" default:"data/accounts.db"`
}

// AuthConfig holds token signing configuration.
type AuthConfig struct {
	Secret          string `envconfig:"AUTH_SECRET" default:"change-me-change-me-change-me-32ch"`
	TokenTTLMinutes int    `envconfig:"AUTH_TOKEN_TTL_MINUTES" default:"30"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8001",
			Host: "0.0.0.0",
		},
		Storage: StorageConfig{
			Root: "uploads",
		},
		Database: DatabaseConfig{
			Path: "data/accounts.db",
		},
		Auth: AuthConfig{
			Secret:          "change-me-change-me-change-me-32ch",
			TokenTTLMinutes: 30,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
