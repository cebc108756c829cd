package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"LECTERN_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("LECTERN_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LECTERN_ADDR", "")
	t.Setenv("LECTERN_DB_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Addr)
	}
	if cfg.DBPath != "lectern.db" {
		t.Errorf("db path = %q, want lectern.db", cfg.DBPath)
	}
	if cfg.CoalesceEvery <= 0 {
		t.Errorf("coalesce interval = %v, want positive default", cfg.CoalesceEvery)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LECTERN_ADDR", ":9999")
	t.Setenv("LECTERN_REDIS_ADDR", "localhost:6379")
	t.Setenv("LECTERN_COALESCE_INTERVAL", "200ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("addr = %q, want :9999", cfg.Addr)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("redis addr = %q, want localhost:6379", cfg.RedisAddr)
	}
	if cfg.CoalesceEvery.Milliseconds() != 200 {
		t.Errorf("coalesce interval = %v, want 200ms", cfg.CoalesceEvery)
	}
}
