package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kioskgym/kioskgym/internal/catalog"
	"github.com/kioskgym/kioskgym/internal/config"
	"github.com/kioskgym/kioskgym/internal/flow"
	"github.com/kioskgym/kioskgym/internal/postgres"
	redisx "github.com/kioskgym/kioskgym/internal/redis"
	postgresrepo "github.com/kioskgym/kioskgym/internal/repository/postgres"
	redisrepo "github.com/kioskgym/kioskgym/internal/repository/redis"
	"github.com/kioskgym/kioskgym/internal/service"
	"github.com/kioskgym/kioskgym/internal/service/sessions"
	httpgin "github.com/kioskgym/kioskgym/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
}

// New wires the application. Postgres and redis are optional
// collaborators: when one is unconfigured or unreachable the simulator
// starts anyway and the dependent features degrade.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	cat, err := catalog.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	var store *postgresrepo.Store
	if cfg.Postgres.Enabled {
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s?sslmode=%s",
			cfg.Postgres.User,
			cfg.Postgres.Password,
			cfg.Postgres.Host,
			cfg.Postgres.Port,
			cfg.Postgres.Name,
			cfg.Postgres.SSLMode,
		)

		pgxPool, err := postgres.New(context.Background(), postgres.Config{DSN: dsn})
		if err != nil {
			logger.Warn("postgres unavailable, history persistence disabled", "error", err)
		} else {
			store = postgresrepo.NewStore(pgxPool)
			if err := store.History().EnsureSchema(context.Background()); err != nil {
				logger.Warn("history schema init failed, history persistence disabled", "error", err)
				store = nil
			}
		}
	} else {
		logger.Info("postgres not configured, history persistence disabled")
	}

	var (
		cache   *redisrepo.Cache
		pubsub  *redisx.SessionEventsPubSub
		limiter *redisrepo.SlidingWindowLimiter
		idem    *redisrepo.IdempotencyStore
	)
	if cfg.Redis.Enabled {
		rdb, err := redisx.New(context.Background(), redisx.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warn("redis unavailable, caching and events disabled", "error", err)
		} else {
			cache = redisrepo.New(rdb)
			pubsub = redisx.NewSessionEventsPubSub(rdb)
			limiter = redisrepo.NewSlidingWindowLimiter(rdb, redisx.RateLimitPrefix("sessions"), 30, 1*time.Minute)
			idem = redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)
		}
	} else {
		logger.Info("redis not configured, caching and events disabled")
	}

	services := service.NewServices(cat, store, cache, limiter, pubsub, logger, service.Config{
		Sessions: sessions.Config{
			Flow: flow.Config{
				InsertDelay:  cfg.Flow.InsertDelay,
				ProcessDelay: cfg.Flow.ProcessDelay,
			},
		},
	})

	router := httpgin.NewRouter(services, cat, idem, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

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
