package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Database
	DatabasePath string

	// Import source document
	QuotesSource string

	// Default file rewritten by the readme commands
	ReadmePath string

	// DailyLocation is the timezone whose calendar date selects the daily quote.
	DailyLocation *time.Location

	// Interpretation generation
	InterpretProvider string // "anthropic" or "openai" (default: anthropic)
	InterpretModel    string // empty selects the provider default
	InterpretTimeout  time.Duration
	AnthropicAPIKey   string
	OpenAIAPIKey      string

	// VecLite
	VecLitePath   string // Path to VecLite database (default: data/quotes.veclite)
	VecLiteConfig string // Path to veclite.yaml (optional)

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:      getEnv("DATABASE_PATH", "data/kathekon.db"),
		QuotesSource:      getEnv("QUOTES_SOURCE", "data/quotes.json"),
		ReadmePath:        getEnv("README_PATH", "README.md"),
		InterpretProvider: getEnv("INTERPRET_PROVIDER", "anthropic"),
		InterpretModel:    getEnv("INTERPRET_MODEL", ""),
		AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		VecLitePath:       getEnv("VECLITE_PATH", "data/quotes.veclite"),
		VecLiteConfig:     getEnv("VECLITE_CONFIG", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	var err error
	cfg.InterpretTimeout, err = time.ParseDuration(getEnv("INTERPRET_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid INTERPRET_TIMEOUT: %w", err)
	}

	cfg.DailyLocation, err = time.LoadLocation(getEnv("DAILY_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid DAILY_TIMEZONE: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// HasInterpreter reports whether credentials for the configured provider are present.
func (c *Config) HasInterpreter() bool {
	return c.ValidateForInterpretation() == nil
}

// ValidateForInterpretation checks configuration needed for generated interpretations.
func (c *Config) ValidateForInterpretation() error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch c.InterpretProvider {
	case "anthropic", "":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when INTERPRET_PROVIDER is anthropic")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when INTERPRET_PROVIDER is openai")
		}
	default:
		return fmt.Errorf("invalid INTERPRET_PROVIDER: %s (must be 'anthropic' or 'openai')", c.InterpretProvider)
	}
	return nil
}

// ValidateForVecLite checks configuration needed for the vector index.
func (c *Config) ValidateForVecLite() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.VecLitePath == "" {
		return fmt.Errorf("VECLITE_PATH is required")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
