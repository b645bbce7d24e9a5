package v1

import (
	"net/http"
	"time"

	"career-coach-backend/config"
	"career-coach-backend/internal/delivery/http/middleware"
	"career-coach-backend/internal/delivery/http/response"
	"career-coach-backend/internal/domain"
	"career-coach-backend/internal/usecase"
	"career-coach-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	OnboardingUC domain.OnboardingUsecase
	ResumeUC     domain.ResumeUsecase
	InsightUC    domain.InsightUsecase
	AssessmentUC domain.AssessmentUsecase
	HealthUC     usecase.HealthUsecase
	Refresher    InsightRefresher
	JWKSProvider *auth.Provider
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimit(middleware.PerClientIP(cfg.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c.Request.Context())
		if status["status"] != "ok" {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Job triggers authenticate with the shared cron secret instead of a user token
	internal := v1.Group("/internal")
	internal.Use(middleware.CronSecret(cfg.CronSecret))

	aiLimit := middleware.RateLimit(middleware.PerCallerAI(cfg.RateLimitAIThreshold, window))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, cfg, deps.AuthUC))
	{
		NewAuthHandler(protected, deps.AuthUC)
		NewOnboardingHandler(protected, deps.OnboardingUC)
		NewResumeHandler(protected, deps.ResumeUC, aiLimit)
		NewAssessmentHandler(protected, deps.AssessmentUC, aiLimit)
		NewInsightHandler(protected, internal, deps.InsightUC, deps.Refresher)
	}

	return r
}
