// Package importer loads a JSON quotes document into the store.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kathekon/kathekon/internal/db"
)

// ErrMalformedInput is returned when the document or one of its records lacks required structure.
var ErrMalformedInput = errors.New("malformed input")

// Record is one value of the source document.
type Record struct {
	Text            *string  `json:"text"`
	Author          *string  `json:"author"`
	Interpretations []string `json:"interpretations"`
}

// entry is a record together with its key, kept in document order.
type entry struct {
	Key    string
	Record Record
}

// Options controls an import run.
type Options struct {
	// Clean removes existing rows and restarts ids at 1 before inserting.
	Clean bool
}

// Result reports how many rows an import inserted.
type Result struct {
	Quotes          int
	Interpretations int
}

// Importer writes quote documents into a store.
type Importer struct {
	store *db.Store
}

// New creates a new Importer.
func New(store *db.Store) *Importer {
	return &Importer{store: store}
}

// ImportFile imports the JSON document at path.
func (im *Importer) ImportFile(ctx context.Context, path string, opts Options) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	return im.Import(ctx, f, opts)
}

// Import parses the whole document, then inserts every record in one transaction.
// Nothing is written when parsing or any insert fails.
func (im *Importer) Import(ctx context.Context, r io.Reader, opts Options) (Result, error) {
	entries, err := decode(r)
	if err != nil {
		return Result{}, err
	}

	if err := im.store.Migrate(ctx); err != nil {
		return Result{}, fmt.Errorf("run migrations: %w", err)
	}

	var res Result
	err = im.store.InTx(ctx, func(q *db.Queries) error {
		if opts.Clean {
			slog.Info("clearing existing quotes")
			if err := q.DeleteAll(ctx); err != nil {
				return fmt.Errorf("clear store: %w", err)
			}
		}

		for _, e := range entries {
			quoteID, err := q.CreateQuote(ctx, db.CreateQuoteParams{
				Text:   *e.Record.Text,
				Author: *e.Record.Author,
			})
			if err != nil {
				return fmt.Errorf("insert quote %q: %w", e.Key, err)
			}
			res.Quotes++

			for _, text := range e.Record.Interpretations {
				if _, err := q.CreateInterpretation(ctx, db.CreateInterpretationParams{
					QuoteID: quoteID,
					Text:    text,
				}); err != nil {
					return fmt.Errorf("insert interpretation for %q: %w", e.Key, err)
				}
				res.Interpretations++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	slog.Info("import complete",
		"quotes", res.Quotes,
		"interpretations", res.Interpretations,
		"clean", opts.Clean,
	)
	return res, nil
}

// decode reads the top-level object token by token so records keep document order,
// which fixes the ids they are assigned.
func decode(r io.Reader) ([]entry, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: document must be a JSON object", ErrMalformedInput)
	}

	var entries []entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read key: %w", err)
		}
		key := tok.(string) // object keys are always strings

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("read record %q: %w", key, err)
		}

		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%w: record %q: %v", ErrMalformedInput, key, err)
		}
		if rec.Text == nil {
			return nil, fmt.Errorf("%w: record %q is missing \"text\"", ErrMalformedInput, key)
		}
		if rec.Author == nil {
			return nil, fmt.Errorf("%w: record %q is missing \"author\"", ErrMalformedInput, key)
		}

		entries = append(entries, entry{Key: key, Record: rec})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read document end: %w", err)
	}

	return entries, nil
}
