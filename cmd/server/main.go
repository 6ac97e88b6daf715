package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/lovebird/internal/config"
	"github.com/playperu/lovebird/internal/database"
	"github.com/playperu/lovebird/internal/handler/health"
	"github.com/playperu/lovebird/internal/metrics"
	"github.com/playperu/lovebird/internal/quiz"
	"github.com/playperu/lovebird/internal/scenarios"
	"github.com/playperu/lovebird/internal/server"
	"github.com/playperu/lovebird/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Quiz ---
	engine, err := scenarios.Load(cfg.QuizMode, cfg.ScenarioPath)
	if err != nil {
		var ce *quiz.ConfigError
		if errors.As(err, &ce) {
			for _, is := range ce.Issues {
				logger.Error("scenario issue", "path", is.Path, "reason", is.Reason)
			}
		}
		return fmt.Errorf("loading scenario: %w", err)
	}
	logger.Info("loaded scenario", "mode", cfg.QuizMode, "path", cfg.ScenarioPath)

	// --- Sessions ---
	sessions, checks, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Options{
		Engine:      engine,
		Sessions:    sessions,
		Metrics:     metrics.New(),
		SPADir:      cfg.SPADir,
		CORSOrigins: cfg.CORSOrigins,
		Mount: func(r chi.Router) {
			r.Mount("/healthz", health.NewHandler(logger, checks).Routes())
		},
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	if p, ok := sessions.(pruner); ok {
		g.Go(func() error {
			pruneLoop(gctx, p, cfg.SessionTTL, logger)
			return nil
		})
	}

	return g.Wait()
}

// pruner is implemented by stores whose expired sessions are not evicted
// by the backend itself.
type pruner interface {
	Prune(ctx context.Context) (int64, error)
}

func pruneLoop(ctx context.Context, p pruner, ttl time.Duration, logger *slog.Logger) {
	interval := min(max(ttl/4, time.Second), time.Hour)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.Prune(ctx)
			if err != nil {
				logger.Error("pruning sessions", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("pruned expired sessions", "count", n)
			}
		}
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.SessionStore, map[string]health.Checker, func(), error) {
	switch cfg.SessionStore {
	case "sqlite":
		db, err := database.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connecting to sqlite: %w", err)
		}
		s, err := store.NewSQLiteStore(db, cfg.SessionTTL)
		if err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		logger.Info("connected to sqlite", "path", cfg.DBPath)
		return s, map[string]health.Checker{"sqlite": s}, func() { db.Close() }, nil

	case "redis":
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		logger.Info("connected to redis")
		s := store.NewRedisStore(rdb, cfg.SessionTTL)
		return s, map[string]health.Checker{"redis": s}, func() { rdb.Close() }, nil
	}

	logger.Warn("using in-memory session store; sessions are lost on restart")
	return store.NewMemoryStore(cfg.SessionTTL), map[string]health.Checker{}, func() {}, nil
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}
