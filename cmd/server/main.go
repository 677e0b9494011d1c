package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/layer2/project-tracker/internal/api"
	"github.com/layer2/project-tracker/internal/core/service"
	redisinfra "github.com/layer2/project-tracker/internal/infrastructure/db/redis"
	"github.com/layer2/project-tracker/internal/infrastructure/db/sqlite"
	"github.com/layer2/project-tracker/internal/pkg/config"
	"github.com/layer2/project-tracker/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(sqlite.Config{Path: cfg.SQLite.Path})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	// A broken schema or seed must not leave a half-initialised server
	// running; abort startup instead.
	if err := sqlite.EnsureSchema(ctx, db, cfg.SQLite.Reset); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure schema")
	}
	if cfg.SQLite.Reset {
		log.Warn().Str("path", cfg.SQLite.Path).Msg("database reset: all persisted data dropped")
	}

	userRepo := sqlite.NewUserRepository(db)
	accounts := sqlite.DefaultAccounts(cfg.Seed.AdminPassword, cfg.Seed.WritePassword, cfg.Seed.ReadPassword)
	if err := sqlite.Seed(ctx, userRepo, accounts, log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed accounts")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisinfra.Connect(ctx, redisinfra.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			// Throttling is advisory; run without it rather than refuse to start.
			log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
			rdb = nil
		}
	}

	e := api.NewRouter(api.Dependencies{
		DB:    db,
		Redis: rdb,
		Tokens: service.TokenConfig{
			Secret:   cfg.JWT.Secret,
			Issuer:   cfg.JWT.Issuer,
			Audience: cfg.JWT.Audience,
			TTL:      cfg.JWT.TokenTTL,
		},
		Logger: log,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
