// Package vectorstore provides a VecLite-based semantic index over quotes.
package vectorstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdul-hamid-achik/veclite"
	"github.com/kathekon/kathekon/internal/db"
)

const quotesCollection = "quotes"

// Config holds configuration for the QuoteStore.
type Config struct {
	// Path to the VecLite database file (e.g., "data/quotes.veclite").
	Path string

	// ConfigPath is the path to veclite.yaml config file (optional).
	// If empty, searches ./veclite.yaml, ~/.veclite/config.yaml.
	ConfigPath string
}

// QuoteStore wraps a VecLite collection of quote embeddings.
type QuoteStore struct {
	vecdb *veclite.DB
	coll  *veclite.Collection
}

// SearchResult is a quote returned by a similarity search.
type SearchResult struct {
	QuoteID    int64
	Text       string
	Author     string
	Similarity float32
}

// New opens the VecLite database at cfg.Path, creating the quotes collection if needed.
func New(cfg Config) (*QuoteStore, error) {
	vecliteCfg, err := veclite.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load veclite config: %w", err)
	}

	embedder, err := veclite.NewEmbedderFromConfig(vecliteCfg.Embedder)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}
	slog.Debug("veclite embedder ready",
		"provider", vecliteCfg.Embedder.Provider,
		"dimension", embedder.Dimension(),
	)

	vecdb, err := veclite.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open veclite db: %w", err)
	}

	coll, err := vecdb.CreateCollection(quotesCollection,
		veclite.WithDimension(embedder.Dimension()),
		veclite.WithDistanceType(veclite.DistanceCosine),
		veclite.WithTextIndex("text", "author"),
		veclite.WithEmbedder(embedder),
	)
	if err != nil {
		// Already created by an earlier run
		coll, err = vecdb.GetCollection(quotesCollection)
		if err != nil {
			vecdb.Close()
			return nil, fmt.Errorf("get collection: %w", err)
		}
	}

	return &QuoteStore{vecdb: vecdb, coll: coll}, nil
}

// Close closes the VecLite database.
func (s *QuoteStore) Close() error {
	if s.vecdb != nil {
		return s.vecdb.Close()
	}
	return nil
}

// InsertQuote embeds and stores a quote, returning its VecLite record id.
func (s *QuoteStore) InsertQuote(ctx context.Context, q *db.Quote) (uint64, error) {
	id, err := s.coll.InsertText(q.Text, payload(q))
	if err != nil {
		return 0, fmt.Errorf("insert quote %d: %w", q.ID, err)
	}
	return id, nil
}

// IndexAll inserts every quote in quotes and persists the collection.
func (s *QuoteStore) IndexAll(ctx context.Context, quotes []*db.Quote) (int, error) {
	indexed := 0
	for _, q := range quotes {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}
		if _, err := s.InsertQuote(ctx, q); err != nil {
			return indexed, err
		}
		indexed++
		if indexed%100 == 0 {
			slog.Info("indexing quotes", "done", indexed, "total", len(quotes))
		}
	}

	if err := s.vecdb.Sync(); err != nil {
		return indexed, fmt.Errorf("sync veclite: %w", err)
	}
	return indexed, nil
}

// Search finds the k quotes most similar to query.
func (s *QuoteStore) Search(ctx context.Context, query string, k int) ([]SearchResult, error) {
	results, err := s.coll.SearchText(query, veclite.TopK(k))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		sr := fromPayload(r.Record.Payload, r.Record.Content)
		sr.Similarity = r.Score
		out = append(out, sr)
	}
	return out, nil
}

// Count returns the number of quotes in the index.
func (s *QuoteStore) Count() int {
	return s.coll.Count()
}

// Stats returns statistics about the index.
func (s *QuoteStore) Stats() veclite.CollectionStats {
	return s.coll.Stats()
}

func payload(q *db.Quote) map[string]any {
	return map[string]any{
		"quote_id": q.ID,
		"author":   q.Author,
		"text":     q.Text,
	}
}

// fromPayload rebuilds a result from a stored payload. Numeric ids may come back as
// any integer or float type depending on how the payload was persisted.
func fromPayload(p map[string]any, content string) SearchResult {
	var sr SearchResult

	switch id := p["quote_id"].(type) {
	case int64:
		sr.QuoteID = id
	case int:
		sr.QuoteID = int64(id)
	case uint64:
		sr.QuoteID = int64(id)
	case float64:
		sr.QuoteID = int64(id)
	}
	if author, ok := p["author"].(string); ok {
		sr.Author = author
	}
	if text, ok := p["text"].(string); ok {
		sr.Text = text
	}
	if sr.Text == "" {
		sr.Text = content
	}
	return sr
}
