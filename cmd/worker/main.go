package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/nikhilbhutani/fluencyscore/internal/attempt"
	"github.com/nikhilbhutani/fluencyscore/internal/config"
	"github.com/nikhilbhutani/fluencyscore/internal/database"
	"github.com/nikhilbhutani/fluencyscore/internal/queue"
	"github.com/nikhilbhutani/fluencyscore/internal/queue/workers"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, database.Migrations()); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	const concurrency = 5
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				queue.QueueCritical: 6,
				queue.QueueDefault:  3,
				queue.QueueLow:      1,
			},
		},
	)

	registry := queue.NewHandlersRegistry()

	// Register workers
	attemptWorker := workers.NewAttemptWorker(attempt.NewService(db))

	registry.Register(queue.TypeAttemptRecord, asynq.HandlerFunc(attemptWorker.ProcessTask))

	slog.Info("starting worker", "concurrency", concurrency, "task_types", registry.Types())
	if err := srv.Run(registry.Mux()); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
