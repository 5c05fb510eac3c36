package service

import (
	"log/slog"

	"github.com/kirinyoku/showtime/internal/queue"
	"github.com/kirinyoku/showtime/internal/repository"
	redisrepo "github.com/kirinyoku/showtime/internal/repository/redis"
	"github.com/kirinyoku/showtime/internal/service/admin"
	"github.com/kirinyoku/showtime/internal/service/allocator"
	"github.com/kirinyoku/showtime/internal/service/booking"
	"github.com/kirinyoku/showtime/internal/service/catalog"
	"github.com/kirinyoku/showtime/internal/service/payment"
	"github.com/kirinyoku/showtime/internal/service/users"
)

type Services struct {
	Allocator *allocator.Service
	Booking   *booking.Service
	Payment   *payment.Service
	Catalog   *catalog.Service
	Users     *users.Service
	Admin     *admin.Service
}

type Config struct {
	Catalog    catalog.Config
	Payment    payment.Config
	BcryptCost int
}

// Deps carries the optional infrastructure. Nil Redis types and a nil
// Events publisher turn the matching side effects off.
type Deps struct {
	Cache   *redisrepo.Cache
	PubSub  *redisrepo.ShowsPubSub
	Limiter *redisrepo.SlidingWindowLimiter
	Events  queue.Publisher
	Gateway payment.Gateway
	Logger  *slog.Logger
}

func NewServices(store repository.Store, deps Deps, cfg Config) *Services {
	alloc := allocator.New(store)

	return &Services{
		Allocator: alloc,
		Booking:   booking.New(store, alloc, deps.Cache, deps.PubSub, deps.Limiter, deps.Events, deps.Logger),
		Payment:   payment.New(store, deps.Gateway, deps.Events, deps.Logger, cfg.Payment),
		Catalog:   catalog.New(store, deps.Cache, cfg.Catalog),
		Users:     users.New(store, cfg.BcryptCost),
		Admin:     admin.New(store, deps.Cache, deps.PubSub, deps.Logger),
	}
}
