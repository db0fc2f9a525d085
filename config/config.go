package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultRegion = "us-east-1"

// Config holds settings that come from the environment rather than from flags.
// Credentials, container, path and destination are always flags.
type Config struct {
	Endpoint string
	Region   string
	LogLevel slog.Level
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using environment variables only")
	}

	config := &Config{
		Endpoint: getEnv("BLOBFETCH_ENDPOINT", ""),
		Region:   getEnv("BLOBFETCH_REGION", defaultRegion),
		LogLevel: parseLevel(getEnv("BLOBFETCH_LOG_LEVEL", "warn")),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseLevel falls back to warn for anything it does not recognise.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
