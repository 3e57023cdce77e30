package service

import (
	"log/slog"

	"github.com/kioskgym/kioskgym/internal/catalog"
	redisx "github.com/kioskgym/kioskgym/internal/redis"
	postgres "github.com/kioskgym/kioskgym/internal/repository/postgres"
	redis "github.com/kioskgym/kioskgym/internal/repository/redis"
	"github.com/kioskgym/kioskgym/internal/service/history"
	"github.com/kioskgym/kioskgym/internal/service/sessions"
)

type Services struct {
	Sessions *sessions.Service
	History  *history.Service
}

type Config struct {
	Sessions sessions.Config
	History  history.Config
}

// NewServices wires the service layer. store, cache, limiter and pubsub
// may each be nil; the services degrade to in-memory-only behavior.
func NewServices(
	cat *catalog.Catalog,
	store *postgres.Store,
	cache *redis.Cache,
	limiter *redis.SlidingWindowLimiter,
	pubsub *redisx.SessionEventsPubSub,
	logger *slog.Logger,
	cfg Config,
) *Services {
	hist := history.New(store, cache, logger, cfg.History)

	return &Services{
		Sessions: sessions.New(cat, hist, limiter, pubsub, logger, cfg.Sessions),
		History:  hist,
	}
}
