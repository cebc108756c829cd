// Package server wires configuration into the running app service. It is
// split from the main package so the wiring is testable.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/louisbranch/lectern/internal/auth"
	"github.com/louisbranch/lectern/internal/passage"
	"github.com/louisbranch/lectern/internal/platform/config"
	"github.com/louisbranch/lectern/internal/platform/otel"
	"github.com/louisbranch/lectern/internal/present/channel"
	"github.com/louisbranch/lectern/internal/services/app"
	"github.com/louisbranch/lectern/internal/services/live"
	"github.com/louisbranch/lectern/internal/settings"
	"github.com/louisbranch/lectern/internal/storage/sqlite"
)

// ParseConfig loads the environment configuration and lets flags override
// it.
func ParseConfig(fs *flag.FlagSet, args []string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for multi-instance broadcast (empty = in-process)")
	fs.StringVar(&cfg.BibleAPIURL, "bible-api-url", cfg.BibleAPIURL, "Upstream Bible text API endpoint")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Run starts the app server and blocks until the context ends.
func Run(ctx context.Context, cfg config.Config) error {
	shutdownTracing, err := otel.Setup(ctx, "lectern")
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
		cancel()
	}()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close database: %v", err)
		}
	}()

	registry := channel.NewRegistry(newBroker(cfg))

	var verifier *auth.Verifier
	if secret := strings.TrimSpace(cfg.AuthSecret); secret != "" {
		verifier = auth.NewVerifier([]byte(secret))
	} else {
		log.Printf("auth secret not configured; all requests are anonymous")
	}

	var passageHandler *passage.Handler
	if strings.TrimSpace(cfg.BibleAPIURL) != "" {
		client := passage.NewClient(cfg.BibleAPIURL, cfg.BibleAPIKey, &http.Client{Timeout: 10 * time.Second})
		passageHandler = passage.NewHandler(client)
	} else {
		log.Printf("bible api not configured; passage proxy disabled")
	}

	srv, err := app.NewServer(app.Config{
		Addr:            cfg.Addr,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, app.Dependencies{
		Verifier:     verifier,
		Notes:        store,
		Highlights:   store,
		BibleNotes:   store,
		Commentaries: store,
		Settings:     settings.NewService(store),
		Passage:      passageHandler,
		Live:         live.NewService(registry, cfg.CoalesceEvery),
	})
	if err != nil {
		return fmt.Errorf("init app server: %w", err)
	}

	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve app: %w", err)
	}
	return nil
}

// newBroker selects the broadcast backend: Redis when an address is
// configured, the in-process hub otherwise.
func newBroker(cfg config.Config) channel.Broker {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return channel.NewHub()
	}
	log.Printf("broadcast fan-out via redis at %s", addr)
	return channel.NewRedisBroker(redis.NewClient(&redis.Options{Addr: addr}))
}
