// Package history fronts the persistence collaborator. The training
// exercise must stay usable with no backing store at all, so every
// failure here is recovered locally: writes are logged and dropped,
// reads come back empty.
package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/kioskgym/kioskgym/internal/domain"
	redisx "github.com/kioskgym/kioskgym/internal/redis"
	postgresrepo "github.com/kioskgym/kioskgym/internal/repository/postgres"
	redisrepo "github.com/kioskgym/kioskgym/internal/repository/redis"
	"github.com/kioskgym/kioskgym/internal/uow"
)

type Config struct {
	ListTTL   time.Duration
	ListLimit int
}

type Service struct {
	store  *postgresrepo.Store // nil when no store is configured
	cache  *redisrepo.Cache    // nil when no redis is configured
	uow    *uow.UoW
	logger *slog.Logger
	cfg    Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, logger *slog.Logger, cfg Config) *Service {
	if cfg.ListTTL <= 0 {
		cfg.ListTTL = 15 * time.Second
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = 200
	}

	s := &Service{
		store:  store,
		cache:  cache,
		logger: logger,
		cfg:    cfg,
	}
	if store != nil {
		s.uow = uow.NewUoW(store)
	}
	return s
}

// Configured reports whether a backing store is present. Used only for
// logging; callers behave identically either way.
func (s *Service) Configured() bool { return s.store != nil }

// Save writes one result record. The write runs in a transaction whose
// after-commit hook invalidates the cached list. Any failure is logged
// and swallowed; the flow that produced the record never sees it.
func (s *Service) Save(ctx context.Context, rec domain.HistoryRecord) {
	const op = "service.history.Save"

	if s.store == nil {
		return
	}

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		if err := s.store.History().With(tx).Save(ctx, rec); err != nil {
			return err
		}

		after(func(ctx context.Context) {
			if s.cache != nil {
				_ = s.cache.InvalidateHistory(ctx)
			}
		})

		return nil
	})
	if err != nil {
		s.logger.Warn("history record dropped", "op", op, "record_id", rec.ID, "error", err)
	}
}

// List returns past records most-recent-first, for historical display
// only. Failures and an unconfigured store both yield an empty list,
// never an error.
func (s *Service) List(ctx context.Context) []domain.HistoryRecord {
	const op = "service.history.List"

	if s.store == nil {
		return []domain.HistoryRecord{}
	}

	load := func(ctx context.Context) ([]domain.HistoryRecord, error) {
		return s.store.History().List(ctx, s.cfg.ListLimit)
	}

	var (
		recs []domain.HistoryRecord
		err  error
	)
	if s.cache != nil {
		recs, err = redisrepo.GetOrSetJSON(ctx, s.cache, redisx.KeyHistoryList(), s.cfg.ListTTL, load)
	} else {
		recs, err = load(ctx)
	}
	if err != nil {
		s.logger.Warn("history list unavailable", "op", op, "error", err)
		return []domain.HistoryRecord{}
	}
	if recs == nil {
		recs = []domain.HistoryRecord{}
	}

	return recs
}
