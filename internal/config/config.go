package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port           string
	Environment    string
	AllowedOrigins string

	// Database
	DatabaseURL string

	// Auth
	JWTSecret string
	JWTExpiry time.Duration

	// Undo ledger (optional; in-memory when unset)
	RedisURL string
	UndoTTL  time.Duration

	// Object storage for scan images
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string
	S3UseSSL    bool

	// OCR
	OCREnabled bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/larder?sslmode=disable"),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry: getDurationEnv("JWT_EXPIRY", 24*time.Hour),

		RedisURL: getEnv("REDIS_URL", ""),
		UndoTTL:  getDurationEnv("UNDO_TTL", 60*time.Second),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Bucket:    getEnv("S3_BUCKET", "scans"),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3UseSSL:    getBoolEnv("S3_USE_SSL", true),

		OCREnabled: getBoolEnv("OCR_ENABLED", true),
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ScansEnabled reports whether object storage is configured for scan
// uploads
func (c *Config) ScansEnabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
