package config

import (
	"os"
	"strconv"
	"strings"
)

const defaultModel = "gpt-5.1"

// Config contains configuration for the Staccato tools and composer agent
type Config struct {
	OpenAIAPIKey  string // OpenAI API key for LLM provider
	GeminiAPIKey  string // Google Gemini API key (optional)
	SentryDSN     string // Sentry DSN (optional)
	Provider      string // "openai" or "gemini"; inferred from Model when empty
	Model         string // LLM model name
	StrictParsing bool   // reject unknown Staccato tokens
}

// FromEnv reads the configuration from environment variables. Call
// godotenv.Load first to pick up a .env file.
func FromEnv() *Config {
	cfg := &Config{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		SentryDSN:    os.Getenv("SENTRY_DSN"),
		Provider:     strings.ToLower(strings.TrimSpace(os.Getenv("STACCATO_PROVIDER"))),
		Model:        os.Getenv("STACCATO_MODEL"),
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if strict, err := strconv.ParseBool(os.Getenv("STACCATO_STRICT")); err == nil {
		cfg.StrictParsing = strict
	}
	return cfg
}
