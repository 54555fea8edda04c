// Package quotes resolves quotes and their interpretations from the store.
package quotes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kathekon/kathekon/internal/db"
	"github.com/kathekon/kathekon/internal/interpreter"
)

var (
	// ErrNotFound is returned when an id, author or empty store yields no quote.
	ErrNotFound = errors.New("not found")

	// ErrExternalService is returned when the Interpreter fails in ModeGPT.
	ErrExternalService = errors.New("interpretation service failed")
)

// ResolvedQuote is a quote joined with at most one interpretation.
type ResolvedQuote struct {
	ID             int64
	Text           string
	Author         string
	Interpretation string
}

// Query narrows GetQuote. ID takes precedence over Author; a zero Query picks any quote.
type Query struct {
	ID     *int64
	Author string
}

// Repository serves read-only lookups over the store.
type Repository struct {
	store       *db.Store
	interpreter interpreter.Interpreter
	location    *time.Location
	now         func() time.Time
}

// Config holds configuration for the repository.
type Config struct {
	Store       *db.Store
	Interpreter interpreter.Interpreter // Optional: required by ModeGPT
	Location    *time.Location          // Calendar used for the daily quote (default: UTC)
	Now         func() time.Time        // Clock (default: time.Now)
}

// New creates a new Repository.
func New(cfg Config) *Repository {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Repository{
		store:       cfg.Store,
		interpreter: cfg.Interpreter,
		location:    loc,
		now:         now,
	}
}

// GetQuote returns the quote selected by q with an interpretation chosen by mode.
func (r *Repository) GetQuote(ctx context.Context, q Query, mode Mode) (*ResolvedQuote, error) {
	quote, err := r.lookup(ctx, q)
	if err != nil {
		return nil, err
	}
	return r.resolve(ctx, quote, mode)
}

// GetDailyQuote returns today's quote. Every call on the same calendar date against
// an unchanged store returns the same quote.
func (r *Repository) GetDailyQuote(ctx context.Context, mode Mode) (*ResolvedQuote, error) {
	ids, err := r.store.ListQuoteIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quote ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no quotes in store: %w", ErrNotFound)
	}

	today := r.now().In(r.location)
	id := ids[DailyIndex(today, len(ids))]
	slog.Debug("selected daily quote", "date", today.Format(time.DateOnly), "id", id, "candidates", len(ids))

	quote, err := r.store.GetQuote(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quote %d: %w", id, err)
	}
	return r.resolve(ctx, quote, mode)
}

func (r *Repository) lookup(ctx context.Context, q Query) (*db.Quote, error) {
	switch {
	case q.ID != nil:
		quote, err := r.store.GetQuote(ctx, *q.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quote with id %d: %w", *q.ID, ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("get quote %d: %w", *q.ID, err)
		}
		return quote, nil

	case q.Author != "":
		quote, err := r.store.GetRandomQuoteByAuthor(ctx, q.Author)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quotes by author %q: %w", q.Author, ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("get quote by author: %w", err)
		}
		return quote, nil

	default:
		quote, err := r.store.GetRandomQuote(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no quotes in store: %w", ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("get random quote: %w", err)
		}
		return quote, nil
	}
}

func (r *Repository) resolve(ctx context.Context, quote *db.Quote, mode Mode) (*ResolvedQuote, error) {
	interp, err := r.interpretation(ctx, quote, mode)
	if err != nil {
		return nil, err
	}
	return &ResolvedQuote{
		ID:             quote.ID,
		Text:           quote.Text,
		Author:         quote.Author,
		Interpretation: interp,
	}, nil
}

func (r *Repository) interpretation(ctx context.Context, quote *db.Quote, mode Mode) (string, error) {
	switch mode {
	case ModeDB:
		return r.stored(ctx, quote.ID, r.store.GetRandomInterpretation)
	case ModeDBFixed:
		return r.stored(ctx, quote.ID, r.store.GetFirstInterpretation)
	case ModeGPT:
		text, err := r.generate(ctx, quote)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrExternalService, err)
		}
		return text, nil
	case ModeGPTFallback:
		text, err := r.generate(ctx, quote)
		if err == nil {
			return text, nil
		}
		slog.Warn("generated interpretation failed, using stored one", "quote_id", quote.ID, "error", err)
		return r.stored(ctx, quote.ID, r.store.GetRandomInterpretation)
	default:
		return "", fmt.Errorf("unsupported interpretation mode %s", mode)
	}
}

func (r *Repository) generate(ctx context.Context, quote *db.Quote) (string, error) {
	if r.interpreter == nil {
		return "", errors.New("no interpreter configured")
	}
	return r.interpreter.Interpret(ctx, quote.Text, quote.Author)
}

// stored returns the interpretation picked by get, or "" when the quote has none.
func (r *Repository) stored(ctx context.Context, quoteID int64, get func(context.Context, int64) (*db.Interpretation, error)) (string, error) {
	interp, err := get(ctx, quoteID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get interpretation for quote %d: %w", quoteID, err)
	}
	return interp.Text, nil
}
