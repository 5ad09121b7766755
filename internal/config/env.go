package config

// Environment defaults. A .env file in the working directory is loaded
// first (missing file is fine), then WEBPBATCH_* variables override the
// built-in defaults. Flags still win over both.

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ApplyEnv loads .env (if present) and applies WEBPBATCH_* overrides to cfg.
// Malformed values are ignored so a stray variable cannot break startup.
func ApplyEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.Quality = getEnvAsInt("WEBPBATCH_QUALITY", cfg.Quality)
	cfg.Lossless = getEnvAsBool("WEBPBATCH_LOSSLESS", cfg.Lossless)
	cfg.LogFile = getEnv("WEBPBATCH_LOG", cfg.LogFile)

	if v := getEnv("WEBPBATCH_COLOR", ""); v != "" {
		switch ColorMode(strings.ToLower(v)) {
		case ColorAuto, ColorAlways, ColorNever:
			cfg.ColorMode = ColorMode(strings.ToLower(v))
		}
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}
