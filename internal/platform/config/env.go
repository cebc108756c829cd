package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server's environment-driven settings.
type Config struct {
	Addr            string        `env:"LECTERN_ADDR" envDefault:":8080"`
	DBPath          string        `env:"LECTERN_DB_PATH" envDefault:"lectern.db"`
	RedisAddr       string        `env:"LECTERN_REDIS_ADDR"`
	BibleAPIURL     string        `env:"LECTERN_BIBLE_API_URL"`
	BibleAPIKey     string        `env:"LECTERN_BIBLE_API_KEY"`
	AuthSecret      string        `env:"LECTERN_AUTH_SECRET"`
	CoalesceEvery   time.Duration `env:"LECTERN_COALESCE_INTERVAL" envDefault:"50ms"`
	ShutdownTimeout time.Duration `env:"LECTERN_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the server configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
