// Command seed loads the sample catalog and demo users into the configured
// store. Running it twice is harmless.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/kirinyoku/showtime/internal/config"
	"github.com/kirinyoku/showtime/internal/postgres"
	postgresrepo "github.com/kirinyoku/showtime/internal/repository/postgres"
	"github.com/kirinyoku/showtime/internal/seed"
	"github.com/kirinyoku/showtime/internal/service/admin"
	"github.com/kirinyoku/showtime/internal/service/users"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.New()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Store.Driver != config.DriverPostgres {
		logger.Error("seed needs STORE_DRIVER=postgres; the memory store is seeded on start")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.New(ctx, postgres.Config{DSN: cfg.Postgres.DSN()})
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := postgresrepo.NewStore(pool)
	if err := store.Migrate(ctx); err != nil {
		logger.Error("failed to migrate", "error", err)
		os.Exit(1)
	}

	s := seed.New(store, admin.New(store, nil, nil, logger), users.New(store, 0), logger)
	if err := s.Run(ctx); err != nil {
		logger.Error("seed failed", "error", err)
		pool.Close()
		os.Exit(1)
	}
}
