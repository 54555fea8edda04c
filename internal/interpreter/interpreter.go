// Package interpreter produces quote interpretations with a hosted language model.
package interpreter

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const defaultTimeout = 60 * time.Second

// Interpreter turns a quote into a short interpretation.
type Interpreter interface {
	Interpret(ctx context.Context, text, author string) (string, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider string // "anthropic" (default) or "openai"
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// New returns the Interpreter for cfg.Provider.
func New(cfg Config) (Interpreter, error) {
	switch cfg.Provider {
	case "anthropic", "":
		return NewClaudeClient(ClaudeConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}), nil
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultTimeout
	}
	return d
}

// cleanResponse trims whitespace and a single pair of wrapping quotation marks.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	for _, pair := range [][2]string{{`"`, `"`}, {"“", "”"}} {
		if len(s) >= len(pair[0])+len(pair[1]) && strings.HasPrefix(s, pair[0]) && strings.HasSuffix(s, pair[1]) {
			s = strings.TrimSpace(s[len(pair[0]) : len(s)-len(pair[1])])
			break
		}
	}
	return s
}
