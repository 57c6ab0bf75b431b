// Package config loads and validates application configuration from environment variables.
package config

import (
	"os"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Optional: when empty
	// the server runs in demo mode against the seeded in-memory gateway.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// JWTSecret verifies bearer tokens on protected routes. Optional: when
	// empty, requests run as the fixed demo user without authentication.
	JWTSecret string

	// GeminiAPIKey enables the trip assistant. Optional: when empty the
	// assistant endpoints return 503.
	GeminiAPIKey string

	// GeminiModel is the model name used for assistant calls.
	// Defaults to "gemini-3-flash-preview".
	GeminiModel string

	// GeminiBaseURL overrides the Gemini API endpoint. Defaults to the
	// production endpoint; tests point it at a local httptest server.
	GeminiBaseURL string
}

// Load reads configuration from environment variables and returns a Config.
// Every value has a workable default, so Load cannot fail; it returns an
// error to keep the call-site shape conventional should a required value
// appear later.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
	}
	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
