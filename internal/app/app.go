package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/kirinyoku/showtime/internal/config"
	"github.com/kirinyoku/showtime/internal/postgres"
	"github.com/kirinyoku/showtime/internal/queue"
	"github.com/kirinyoku/showtime/internal/redis"
	"github.com/kirinyoku/showtime/internal/repository"
	"github.com/kirinyoku/showtime/internal/repository/memory"
	postgresrepo "github.com/kirinyoku/showtime/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/showtime/internal/repository/redis"
	"github.com/kirinyoku/showtime/internal/seed"
	"github.com/kirinyoku/showtime/internal/service"
	"github.com/kirinyoku/showtime/internal/service/catalog"
	"github.com/kirinyoku/showtime/internal/service/payment"
	httpgin "github.com/kirinyoku/showtime/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	cache      *redisrepo.Cache
	pubsub     *redisrepo.ShowsPubSub
	closers    []func() error
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	rdb := a.openRedis(ctx)
	a.cache = redisrepo.New(rdb)
	a.pubsub = redisrepo.NewShowsPubSub(rdb)

	var events queue.Publisher = queue.NopPublisher{}
	if cfg.AMQP.URL != "" {
		pub, err := queue.Dial(cfg.AMQP.URL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize amqp: %w", err)
		}
		events = pub
		a.closers = append(a.closers, pub.Close)
	}

	services := service.NewServices(store, service.Deps{
		Cache:   a.cache,
		PubSub:  a.pubsub,
		Limiter: redisrepo.NewSlidingWindowLimiter(rdb, redisrepo.KeyRateLimit("bookings", "user"), cfg.Booking.RateLimit, cfg.Booking.RateWindow),
		Events:  events,
		Logger:  logger,
	}, service.Config{
		Catalog: catalog.Config{},
		Payment: payment.Config{ValidateAmount: cfg.Payment.ValidateAmount},
	})

	if cfg.Seed {
		if err := seed.New(store, services.Admin, services.Users, logger).Run(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to seed: %w", err)
		}
	}

	router := httpgin.NewRouter(services, redisrepo.NewIdempotencyStore(rdb, 2*time.Hour), logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return a, nil
}

func (a *App) openStore(ctx context.Context) (repository.Store, error) {
	if a.cfg.Store.Driver != config.DriverPostgres {
		a.logger.Info("using in-memory store")
		return memory.New(), nil
	}

	pool, err := postgres.New(ctx, postgres.Config{DSN: a.cfg.Postgres.DSN()})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}
	a.closers = append(a.closers, func() error { pool.Close(); return nil })

	store := postgresrepo.NewStore(pool)
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate postgres: %w", err)
	}

	a.logger.Info("using postgres store", "host", a.cfg.Postgres.Host, "db", a.cfg.Postgres.Name)
	return store, nil
}

// openRedis returns nil when Redis is disabled or unreachable. The service
// then runs without caching, rate limiting, idempotency or pub/sub.
func (a *App) openRedis(ctx context.Context) *goredis.Client {
	if a.cfg.Redis.Disabled {
		return nil
	}

	rdb, err := redis.New(ctx, redis.Config{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	if err != nil {
		a.logger.Warn("redis unavailable, continuing without it", "error", err)
		return nil
	}

	a.closers = append(a.closers, rdb.Close)
	return rdb
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	defer a.Close()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Drop cached show views when another instance changes a show
	if a.pubsub != nil {
		g.Go(func() error {
			err := a.pubsub.Subscribe(gCtx, func(ctx context.Context, showID string) {
				if err := a.cache.InvalidateShow(ctx, showID); err != nil {
					a.logger.Warn("invalidate show cache", "show_id", showID, "error", err)
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn("show change subscription ended", "error", err)
			}
			return nil
		})
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}

// Close releases connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close", "error", err)
		}
	}
	a.closers = nil
}
