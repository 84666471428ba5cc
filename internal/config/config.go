package config

import (
	"os"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// devSecret signs sessions when SECRET is unset. It must never survive
// into a production deployment, so Load leaves Secret empty there and
// startup refuses to serve without one.
const devSecret = "dev_session_secret_change_me"

type AppConfig struct {
	// Server
	Env      string
	HTTPAddr string

	// Storage
	AtlasDBURL string
	DBName     string
	RedisAddr  string
	RedisPass  string

	// Sessions
	Secret       string
	SessionTTL   time.Duration
	TouchAfter   time.Duration
	CookieSecure bool

	// Rate limiting
	RateLimitWindow time.Duration
	RateLimitMax    int64

	// Rendering
	MapToken string
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	env := strings.ToLower(getEnv("APP_ENV", EnvDevelopment))

	secret := os.Getenv("SECRET")
	if secret == "" && env != EnvProduction {
		secret = devSecret
	}

	return AppConfig{
		Env:      env,
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		AtlasDBURL: getEnv("ATLASDB_URL", "mongodb://127.0.0.1:27017/wanderlust"),
		DBName:     getEnv("DB_NAME", "wanderlust"),
		RedisAddr:  getEnv("REDIS_ADDR", ""),
		RedisPass:  getEnv("REDIS_PASS", ""),

		Secret:     secret,
		SessionTTL: 7 * 24 * time.Hour,
		TouchAfter: 24 * time.Hour,
		// Secure cookies follow the deployment mode unless toggled explicitly.
		CookieSecure: getEnvBool("COOKIE_SECURE", env == EnvProduction),

		RateLimitWindow: 15 * time.Minute,
		RateLimitMax:    300,

		MapToken: getEnv("MAP_TOKEN", ""),
	}
}

func (c AppConfig) IsProduction() bool {
	return c.Env == EnvProduction
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.ToLower(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v == "true" || v == "1" || v == "yes"
}
