// Command refresh-insights regenerates every stored industry insight once and
// exits. It exits non-zero when any industry failed, so an external scheduler
// can alert on partial failure.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"career-coach-backend/config"
	"career-coach-backend/internal/repository/postgres"
	"career-coach-backend/internal/scheduler"
	"career-coach-backend/internal/usecase"
	"career-coach-backend/pkg/cache"
	"career-coach-backend/pkg/database"
	"career-coach-backend/pkg/llm"
	"career-coach-backend/pkg/logger"
	"career-coach-backend/pkg/redis"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}
	logger.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		return 1
	}
	defer dbPool.Close()

	generator, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
	if err != nil {
		logger.Log.Error("Failed to create Gemini client", "error", err)
		return 1
	}

	// Cached insight views are dropped after the sweep when Redis is reachable.
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, cached insight views will expire on their own", "error", err)
	}
	defer redis.Close()
	viewCache := cache.NewViewCache(redis.Client(), cfg.ViewCacheTTL, logger.Log)

	insightUC := usecase.NewInsightUsecase(
		postgres.NewUserRepository(dbPool),
		postgres.NewInsightRepository(dbPool),
		generator,
		viewCache,
		cfg.InsightRefreshWorkers,
	)

	results, err := insightUC.RefreshAll(ctx)
	if err != nil {
		logger.Log.Error("Insight refresh aborted", "error", err)
		return 1
	}

	if failed := scheduler.Failed(results); len(failed) > 0 {
		logger.Log.Error("Insight refresh finished with failures", "failed", failed)
		return 1
	}
	return 0
}
