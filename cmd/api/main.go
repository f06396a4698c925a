package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/fluencyscore/internal/api"
	"github.com/nikhilbhutani/fluencyscore/internal/api/handlers"
	"github.com/nikhilbhutani/fluencyscore/internal/attempt"
	"github.com/nikhilbhutani/fluencyscore/internal/config"
	"github.com/nikhilbhutani/fluencyscore/internal/database"
	"github.com/nikhilbhutani/fluencyscore/internal/fluency"
	"github.com/nikhilbhutani/fluencyscore/internal/multimodal/stt"
	"github.com/nikhilbhutani/fluencyscore/internal/queue"
	"github.com/nikhilbhutani/fluencyscore/internal/session"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := api.Dependencies{Checks: map[string]handlers.HealthCheck{}}

	// Database connection (optional, attempt history is disabled without it)
	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Warn("database unavailable, running without attempt history", "error", err)
	} else {
		defer db.Close()

		if err := database.RunMigrations(ctx, db, database.Migrations()); err != nil {
			slog.Warn("migrations failed", "error", err)
		}
		deps.History = attempt.NewService(db)
		deps.Checks["database"] = db.Ping
	}

	// Redis holds session scores and the attempt queue (optional)
	var store session.Store = session.NewMemoryStore()
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, keeping sessions in memory without attempt queue", "error", err)
	} else {
		if cfg.Session.Store == "redis" {
			store = session.NewRedisStore(rdb, cfg.Session.KeyPrefix, cfg.Session.TTL)
		}
		deps.Checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }

		queueClient := queue.NewClient(cfg.Redis)
		defer queueClient.Close()
		deps.Attempts = queueClient
	}

	evaluator := fluency.NewEvaluator(fluency.NewDetector(cfg.Scoring.PauseThreshold, cfg.Scoring.ElongationRun))
	deps.Scorer = session.NewService(store, evaluator)

	backend := stt.New(cfg.STT.Backend,
		stt.OpenAISTTConfig{APIKey: cfg.STT.OpenAIKey, BaseURL: cfg.STT.OpenAIBaseURL, Model: cfg.STT.OpenAIModel},
		stt.LocalSTTConfig{BaseURL: cfg.STT.LocalBaseURL, Model: cfg.STT.LocalModel},
	)
	deps.Plain = backend
	deps.Aligned = backend

	router := api.NewRouter(ctx, cfg, deps)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr(), "stt_backend", backend.Name(), "session_store", cfg.Session.Store)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
