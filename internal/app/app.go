package app

import (
	"context"
	"log/slog"

	"github.com/kathekon/kathekon/internal/config"
	"github.com/kathekon/kathekon/internal/db"
	"github.com/kathekon/kathekon/internal/interpreter"
	"github.com/kathekon/kathekon/internal/quotes"
)

// App is the main application container holding all dependencies.
type App struct {
	Config      *config.Config
	Store       *db.Store
	Interpreter interpreter.Interpreter // nil when no provider credentials are configured
	Quotes      *quotes.Repository
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	var interp interpreter.Interpreter
	if cfg.HasInterpreter() {
		interp, err = interpreter.New(interpreter.Config{
			Provider: cfg.InterpretProvider,
			APIKey:   apiKey(cfg),
			Model:    cfg.InterpretModel,
			Timeout:  cfg.InterpretTimeout,
		})
		if err != nil {
			store.Close()
			return nil, err
		}
	} else {
		slog.Debug("no interpreter configured", "provider", cfg.InterpretProvider)
	}

	repo := quotes.New(quotes.Config{
		Store:       store,
		Interpreter: interp,
		Location:    cfg.DailyLocation,
	})

	return &App{
		Config:      cfg,
		Store:       store,
		Interpreter: interp,
		Quotes:      repo,
	}, nil
}

func apiKey(cfg *config.Config) string {
	if cfg.InterpretProvider == "openai" {
		return cfg.OpenAIAPIKey
	}
	return cfg.AnthropicAPIKey
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
