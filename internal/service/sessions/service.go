// Package sessions owns the live flow sessions. Each session gets its
// own mission generator and seat inventory so parallel trainees never
// see each other's randomness.
package sessions

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kioskgym/kioskgym/internal/catalog"
	"github.com/kioskgym/kioskgym/internal/domain"
	"github.com/kioskgym/kioskgym/internal/flow"
	"github.com/kioskgym/kioskgym/internal/mission"
	redisx "github.com/kioskgym/kioskgym/internal/redis"
	redisrepo "github.com/kioskgym/kioskgym/internal/repository/redis"
	"github.com/kioskgym/kioskgym/internal/seating"
	"github.com/kioskgym/kioskgym/internal/service/history"
)

type Config struct {
	Flow flow.Config
}

type Service struct {
	cat     *catalog.Catalog
	history *history.Service
	limiter *redisrepo.SlidingWindowLimiter // nil when no redis is configured
	events  *redisx.SessionEventsPubSub     // nil when no redis is configured
	logger  *slog.Logger
	cfg     Config

	seed func() int64

	mu       sync.RWMutex
	sessions map[string]*flow.Session
}

func New(
	cat *catalog.Catalog,
	hist *history.Service,
	limiter *redisrepo.SlidingWindowLimiter,
	events *redisx.SessionEventsPubSub,
	logger *slog.Logger,
	cfg Config,
) *Service {
	return &Service{
		cat:      cat,
		history:  hist,
		limiter:  limiter,
		events:   events,
		logger:   logger,
		cfg:      cfg,
		seed:     func() int64 { return time.Now().UnixNano() },
		sessions: make(map[string]*flow.Session),
	}
}

// Create starts a new session for one trainee. clientKey identifies the
// caller for rate limiting; when redis is down the limiter is skipped
// rather than refusing trainees.
func (s *Service) Create(ctx context.Context, storefront domain.StorefrontType, practice bool, clientKey string) (*flow.Session, error) {
	const op = "service.sessions.Create"

	if !storefront.Valid() {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidStorefront)
	}

	if s.limiter != nil && clientKey != "" {
		allowed, _, retry, err := s.limiter.Allow(ctx, clientKey)
		if err != nil {
			s.logger.Warn("rate limiter unavailable", "op", op, "error", err)
		} else if !allowed {
			return nil, fmt.Errorf("%s:%w (retry in %s)", op, ErrRateLimited, retry.Round(time.Millisecond))
		}
	}

	seed := s.seed()
	deps := flow.Deps{
		Catalog:   s.cat,
		Generator: mission.NewGenerator(s.cat, seed),
		Inventory: seating.NewInventory(seed),
		Recorder:  &historyRecorder{svc: s.history, logger: s.logger},
		Now:       time.Now,
	}
	if s.events != nil {
		deps.Sink = &eventSink{pub: s.events, logger: s.logger}
	}

	sess, err := flow.NewSession(uuid.NewString(), storefront, practice, deps, s.cfg.Flow)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	s.logger.Info("session created",
		"session_id", sess.ID(),
		"storefront", storefront,
		"practice", practice,
	)

	return sess, nil
}

// Get returns the live session for id.
func (s *Service) Get(id string) (*flow.Session, error) {
	const op = "service.sessions.Get"

	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s:%w", op, ErrSessionNotFound)
	}

	return sess, nil
}

// Remove exits the session and forgets it.
func (s *Service) Remove(id string) error {
	const op = "service.sessions.Remove"

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%s:%w", op, ErrSessionNotFound)
	}

	sess.Exit()
	s.logger.Info("session removed", "session_id", id)

	return nil
}

// Count reports the number of live sessions, for the health endpoint.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// historyRecorder hands finished attempts to the history service off
// the flow goroutine. The flow never waits on persistence.
type historyRecorder struct {
	svc    *history.Service
	logger *slog.Logger
}

func (r *historyRecorder) Record(rec domain.HistoryRecord) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		r.svc.Save(ctx, rec)
	}()
}

// eventSink publishes flow events to redis, fire-and-forget.
type eventSink struct {
	pub    *redisx.SessionEventsPubSub
	logger *slog.Logger
}

func (e *eventSink) StageChanged(sessionID string, stage flow.Stage, step string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := e.pub.PublishStageChanged(ctx, sessionID, string(stage), step); err != nil {
			e.logger.Debug("stage event not published", "session_id", sessionID, "error", err)
		}
	}()
}

func (e *eventSink) Scored(sessionID string, rec domain.HistoryRecord) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := e.pub.PublishScored(ctx, sessionID, rec.ID, rec.Success); err != nil {
			e.logger.Debug("scored event not published", "session_id", sessionID, "error", err)
		}
	}()
}
