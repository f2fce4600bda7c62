package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Port               string   `toml:"port" env:"PORT"`
	Environment        string   `toml:"environment" env:"ENVIRONMENT"`
	LogLevel           string   `toml:"log_level" env:"LOG_LEVEL"`
	DatabasePath       string   `toml:"database_path" env:"DATABASE_PATH"`
	RedisURL           string   `toml:"redis_url" env:"REDIS_URL"`
	ActivityLimit      int      `toml:"activity_limit" env:"ACTIVITY_LIMIT"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	Version            string   `toml:"version" env:"VERSION"`
}

func defaults() *Config {
	return &Config{
		Port:               "8080",
		Environment:        "development",
		LogLevel:           "info",
		DatabasePath:       "./sultan_game.db",
		ActivityLimit:      100,
		CORSAllowedOrigins: []string{"*"},
		Version:            "1.0.0",
	}
}

// Load builds the configuration from defaults, then the TOML file named
// by CONFIG_FILE if set, then environment variables.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() slog.Level {
	return parseLogLevel(c.LogLevel)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
