package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// defaultRequestTimeout bounds one generation call end to end, matching the
// execution ceiling the upstream providers are given.
const defaultRequestTimeout = 40 * time.Second

// Config holds the server configuration loaded from environment variables.
type Config struct {
	// Server
	Port     string
	LogLevel string // debug, info, warn, error

	// Per-dispatch deadline for upstream calls.
	RequestTimeout time.Duration

	// API keys. A missing key disables that provider at dispatch time; it
	// is not a startup error.
	XAIKey      string
	GoogleKey   string
	TogetherKey string
	RunwareKey  string
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() *Config {
	godotenv.Load() // Load .env file if present

	return &Config{
		Port:           getEnvOrDefault("IMAGO_PORT", "8080"),
		LogLevel:       getEnvOrDefault("IMAGO_LOG_LEVEL", "info"),
		RequestTimeout: getEnvDurationOrDefault("IMAGO_REQUEST_TIMEOUT", defaultRequestTimeout),
		XAIKey:         os.Getenv("XAI_API_KEY"),
		GoogleKey:      os.Getenv("GEMINI_API_KEY"),
		TogetherKey:    os.Getenv("TOGETHER_API_KEY"),
		RunwareKey:     os.Getenv("RUNWARE_API_KEY"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
