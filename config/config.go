package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	SupabaseUrl       string
	SupabaseJWTSecret string
	FrontendURL       string
	LogLevel          string
	// Generative-text provider (Gemini)
	GeminiAPIKey string
	GeminiModel  string
	LLMTimeout   time.Duration
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	ViewCacheTTL         time.Duration
	// Profile update transaction budget
	ProfileTxTimeout time.Duration
	// Insight refresh job
	InsightRefreshCron    string
	InsightRefreshWorkers int
	InsightRefreshOnStart bool
	CronSecret            string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitAIThreshold     int
}

func LoadConfig() (*Config, error) {
	// Load .env file when present; production relies on real env vars
	_ = godotenv.Load()

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		DBUrl: getEnv("DATABASE_URL", ""),
		// Strip trailing slash to avoid double slash when building the JWKS URL
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", getEnv("SUPABASE_JWT_KEY", "")),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		LogLevel:          getEnv("LOG_LEVEL", "debug"),
		// Generative-text provider
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		LLMTimeout:   getEnvSeconds("LLM_TIMEOUT_SECONDS", 60),
		// Redis/Upstash
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		ViewCacheTTL:         getEnvSeconds("VIEW_CACHE_TTL_SECONDS", 300),
		ProfileTxTimeout:     getEnvSeconds("PROFILE_TX_TIMEOUT_SECONDS", 10),
		// Every Sunday at midnight
		InsightRefreshCron:    getEnv("INSIGHT_REFRESH_CRON", "0 0 * * 0"),
		InsightRefreshWorkers: getEnvInt("INSIGHT_REFRESH_WORKERS", 1),
		InsightRefreshOnStart: getEnvBool("INSIGHT_REFRESH_ON_START", false),
		CronSecret:            getEnv("CRON_SECRET", ""),
		// Rate Limiting
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitAIThreshold:     getEnvInt("RATE_LIMIT_AI_THRESHOLD", 10),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY not configured. AI features will fail.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback and view cache is disabled.")
	}

	if cfg.InsightRefreshWorkers < 1 {
		cfg.InsightRefreshWorkers = 1
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvSeconds(key string, fallback int) time.Duration {
	secs := getEnvInt(key, fallback)
	if secs <= 0 {
		secs = fallback
	}
	return time.Duration(secs) * time.Second
}
