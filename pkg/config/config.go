package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	AppEnv       string
	IsProduction bool

	Port        string
	DatabaseURL string // MySQL DSN; empty means local sqlite file
	DBPath      string

	// Inference gateway settings. IsInferenceEnabled gates real outbound
	// calls ("1" = enabled); when disabled a local mock answers instead.
	InferenceBaseURL        string
	IsInferenceEnabled      bool
	InferenceTimeoutSeconds int

	// runtime tunables
	RateLimitWindowSeconds int
	RateLimitCapacity      int
	ClientConcurrencyLimit int
	DuplicateWindowSeconds int
	ReplyCacheTTLSeconds   int
	ReplyCacheMaxItems     int
)

// loadAppEnv loads .env only outside production. A missing file is fine:
// container deployments pass real environment variables instead.
func loadAppEnv() {
	AppEnv = os.Getenv("APP_ENV")
	if AppEnv == "production" {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file loaded: %v", err)
	}
}

func init() {
	loadAppEnv()

	AppEnv = os.Getenv("APP_ENV")
	if AppEnv == "" {
		AppEnv = "development"
	}
	IsProduction = AppEnv == "production"

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}

	DatabaseURL = os.Getenv("DATABASE_URL")
	DBPath = os.Getenv("DB_PATH")
	if DBPath == "" {
		DBPath = "agribot.db"
	}

	InferenceBaseURL = os.Getenv("INFERENCE_BASE_URL")
	IsInferenceEnabled = os.Getenv("IS_INFERENCE_ENABLED") == "1"
	InferenceTimeoutSeconds = atoiOr(os.Getenv("INFERENCE_TIMEOUT_SECONDS"), 30)

	RateLimitWindowSeconds = atoiOr(os.Getenv("RATE_LIMIT_WINDOW_SECONDS"), 10)
	RateLimitCapacity = atoiOr(os.Getenv("RATE_LIMIT_CAPACITY"), 5)
	ClientConcurrencyLimit = atoiOr(os.Getenv("CLIENT_CONCURRENCY_LIMIT"), 2)
	DuplicateWindowSeconds = atoiOr(os.Getenv("DUPLICATE_WINDOW_SECONDS"), 45)
	ReplyCacheTTLSeconds = atoiOr(os.Getenv("REPLY_CACHE_TTL_SECONDS"), 600)
	ReplyCacheMaxItems = atoiOr(os.Getenv("REPLY_CACHE_MAX_ITEMS"), 500)

	if IsProduction && InferenceBaseURL == "" && IsInferenceEnabled {
		log.Fatal("INFERENCE_BASE_URL must be set when inference is enabled in production")
	}

	log.Printf("[config] AppEnv=%s IsProduction=%v", AppEnv, IsProduction)
	log.Printf("[config] IsInferenceEnabled=%v InferenceBaseURLPresent=%v timeout=%ds",
		IsInferenceEnabled, InferenceBaseURL != "", InferenceTimeoutSeconds)
	log.Printf("[config] RateLimit window=%ds capacity=%d clientConc=%d dupWindow=%ds replyCacheTTL=%ds replyCacheMax=%d",
		RateLimitWindowSeconds, RateLimitCapacity, ClientConcurrencyLimit, DuplicateWindowSeconds,
		ReplyCacheTTLSeconds, ReplyCacheMaxItems)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
