package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Default tuning values. These match the behavior the Raycast scripts
// converged on after tuning against the live API.
const (
	DefaultDaysBack      = 180
	DefaultPageSize      = 10
	DefaultMaxScan       = 600
	DefaultMaxMatches    = 20
	DefaultRecentLimit   = 5
	DefaultFetchWorkers  = 10
	DefaultCharBudget    = 1_500_000
	DefaultGeminiModel   = "gemini-2.5-pro-preview-05-06"
	DefaultGeminiTimeout = 120
)

// Config holds all configuration for the application.
type Config struct {
	// FirefliesAPIKey authenticates against the Fireflies GraphQL API.
	FirefliesAPIKey string `json:"-"`

	// GeminiAPIKey authenticates against the Gemini generateContent API.
	// Only required for case study generation.
	GeminiAPIKey string `json:"-"`

	// GeminiModel is the preferred Gemini model. The client falls back to
	// older models when this one is unavailable.
	GeminiModel string `json:"gemini_model"`

	// DaysBack is the default search window for domain/speaker searches.
	DaysBack int `json:"days_back"`

	// PageSize is the transcript page size for paginated searches.
	PageSize int `json:"page_size"`

	// MaxScan caps how many transcripts a search will page through.
	MaxScan int `json:"max_scan"`

	// MaxMatches stops a domain search early once enough meetings are found.
	MaxMatches int `json:"max_matches"`

	// FetchWorkers caps the parallel transcript fetch fan-out.
	FetchWorkers int `json:"fetch_workers"`

	// CharBudget caps the prepared case-study context size in characters.
	CharBudget int `json:"char_budget"`
}

// Load reads configuration from a .env file (if present) and environment
// variables. It never fails on a missing .env file; required keys are
// validated per command via RequireFireflies/RequireGemini.
func Load() *Config {
	// Load .env file if exists
	_ = godotenv.Load()

	return &Config{
		FirefliesAPIKey: os.Getenv("FIREFLIES_API_KEY"),
		GeminiAPIKey:    firstEnv("GOOGLE_AI_STUDIO_KEY", "GEMINI_API_KEY"),
		GeminiModel:     getEnvOrDefault("GEMINI_MODEL", DefaultGeminiModel),
		DaysBack:        getEnvOrDefaultInt("FLYCAST_DAYS_BACK", DefaultDaysBack),
		PageSize:        getEnvOrDefaultInt("FLYCAST_PAGE_SIZE", DefaultPageSize),
		MaxScan:         getEnvOrDefaultInt("FLYCAST_MAX_SCAN", DefaultMaxScan),
		MaxMatches:      getEnvOrDefaultInt("FLYCAST_MAX_MATCHES", DefaultMaxMatches),
		FetchWorkers:    getEnvOrDefaultInt("FLYCAST_FETCH_WORKERS", DefaultFetchWorkers),
		CharBudget:      getEnvOrDefaultInt("FLYCAST_CHAR_BUDGET", DefaultCharBudget),
	}
}

// RequireFireflies validates that the Fireflies API key is configured.
func (c *Config) RequireFireflies() error {
	if c.FirefliesAPIKey == "" {
		return fmt.Errorf("FIREFLIES_API_KEY not set. Please set it in .env file or the environment")
	}
	return nil
}

// RequireGemini validates that the Gemini API key is configured.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GOOGLE_AI_STUDIO_KEY not set. Please add it to your .env file")
	}
	return nil
}

// firstEnv returns the first non-empty value among the given env vars.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set.
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
