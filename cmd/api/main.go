package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"career-coach-backend/config"
	_ "career-coach-backend/docs" // Important for Swagger
	v1 "career-coach-backend/internal/delivery/http/v1"
	"career-coach-backend/internal/domain"
	"career-coach-backend/internal/repository/postgres"
	"career-coach-backend/internal/scheduler"
	"career-coach-backend/internal/usecase"
	"career-coach-backend/pkg/auth"
	"career-coach-backend/pkg/cache"
	"career-coach-backend/pkg/database"
	"career-coach-backend/pkg/llm"
	"career-coach-backend/pkg/logger"
	"career-coach-backend/pkg/redis"
	"career-coach-backend/pkg/validation"
)

// @title           Career Coach API
// @version         1.0
// @description     Backend for the AI career coach: onboarding, resumes, industry insights and mock interviews.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting career coach backend", "port", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		logger.Log.Error("Failed to apply migrations", "error", err)
		os.Exit(1)
	}

	// 4. Setup Redis (optional)
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		if errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis not configured - view cache disabled, rate limiting in memory")
		} else {
			logger.Log.Error("Redis unavailable - view cache disabled, rate limiting in memory", "error", err)
		}
	}
	defer redis.Close()
	viewCache := cache.NewViewCache(redis.Client(), cfg.ViewCacheTTL, logger.Log)

	// 5. Setup Generative-text provider
	var generator domain.TextGenerator = llm.Unconfigured{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
		if err != nil {
			logger.Log.Error("Failed to create Gemini client", "error", err)
			os.Exit(1)
		}
		generator = gemini
	}

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	insightRepo := postgres.NewInsightRepository(dbPool)
	onboardingRepo := postgres.NewOnboardingRepository(dbPool)
	resumeRepo := postgres.NewResumeRepository(dbPool)
	assessmentRepo := postgres.NewAssessmentRepository(dbPool)

	// 7. Setup UseCases
	validate := validation.New()
	authUC := usecase.NewAuthUsecase(userRepo)
	onboardingUC := usecase.NewOnboardingUsecase(userRepo, onboardingRepo, viewCache, validate, cfg.ProfileTxTimeout)
	resumeUC := usecase.NewResumeUsecase(userRepo, resumeRepo, generator, viewCache, validate)
	insightUC := usecase.NewInsightUsecase(userRepo, insightRepo, generator, viewCache, cfg.InsightRefreshWorkers)
	assessmentUC := usecase.NewAssessmentUsecase(userRepo, assessmentRepo, generator, viewCache, validate)

	var redisPing usecase.Pinger
	if redis.Client() != nil {
		redisPing = redis.HealthCheck
	}
	healthUC := usecase.NewHealthUsecase(map[string]usecase.Pinger{
		"database": dbPool.Ping,
		"cache":    redisPing,
	})

	// 8. Setup Insight Refresh Scheduler
	sched := scheduler.New(insightUC, cfg.InsightRefreshCron)
	if err := sched.Start(ctx, cfg.InsightRefreshOnStart); err != nil {
		logger.Log.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// 9. Setup Auth Provider (JWKS)
	var jwksProvider *auth.Provider
	if cfg.SupabaseUrl != "" {
		jwksProvider = auth.NewProvider(auth.JWKSURL(cfg.SupabaseUrl))
	}

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		OnboardingUC: onboardingUC,
		ResumeUC:     resumeUC,
		InsightUC:    insightUC,
		AssessmentUC: assessmentUC,
		HealthUC:     healthUC,
		Refresher:    sched,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	sched.Stop(5 * time.Second)

	logger.Log.Info("Server exiting")
}
