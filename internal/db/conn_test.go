package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Run("creates directory and database", func(t *testing.T) {
		tmpDir := t.TempDir()
		dbPath := filepath.Join(tmpDir, "subdir", "test.db")

		ctx := context.Background()
		store, err := NewStore(ctx, dbPath)
		require.NoError(t, err)
		defer store.Close()

		_, err = os.Stat(dbPath)
		assert.NoError(t, err)

		var result int
		err = store.QueryRowContext(ctx, "SELECT 1").Scan(&result)
		assert.NoError(t, err)
		assert.Equal(t, 1, result)
	})

	t.Run("sets WAL mode", func(t *testing.T) {
		store := NewTestStore(t)

		var mode string
		err := store.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode)
		assert.NoError(t, err)
		assert.Equal(t, "wal", mode)
	})

	t.Run("enables foreign keys", func(t *testing.T) {
		store := NewTestStore(t)

		var fk int
		err := store.QueryRowContext(context.Background(), "PRAGMA foreign_keys").Scan(&fk)
		assert.NoError(t, err)
		assert.Equal(t, 1, fk)
	})
}

func TestStore_Migrate(t *testing.T) {
	t.Run("creates tables and indexes", func(t *testing.T) {
		store := NewTestStore(t)
		ctx := context.Background()

		for _, table := range []string{"quotes", "interpretations"} {
			var name string
			err := store.QueryRowContext(ctx,
				"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
			assert.NoError(t, err)
			assert.Equal(t, table, name)
		}

		for _, index := range []string{"idx_author", "idx_quote_id"} {
			var name string
			err := store.QueryRowContext(ctx,
				"SELECT name FROM sqlite_master WHERE type='index' AND name=?", index).Scan(&name)
			assert.NoError(t, err)
			assert.Equal(t, index, name)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		store := NewTestStore(t)
		ctx := context.Background()

		err := store.Migrate(ctx)
		require.NoError(t, err)

		count, err := store.CountQuotes(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestQueries(t *testing.T) {
	store := NewTestStore(t)
	ctx := context.Background()

	id, err := store.CreateQuote(ctx, CreateQuoteParams{Text: "Control your mind", Author: "Epictetus"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	_, err = store.CreateInterpretation(ctx, CreateInterpretationParams{QuoteID: id, Text: "Focus inward."})
	require.NoError(t, err)
	_, err = store.CreateInterpretation(ctx, CreateInterpretationParams{QuoteID: id, Text: "Second reading."})
	require.NoError(t, err)

	t.Run("get quote", func(t *testing.T) {
		q, err := store.GetQuote(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Control your mind", q.Text)
		assert.Equal(t, "Epictetus", q.Author)
	})

	t.Run("missing quote", func(t *testing.T) {
		_, err := store.GetQuote(ctx, 42)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})

	t.Run("random by author", func(t *testing.T) {
		q, err := store.GetRandomQuoteByAuthor(ctx, "Epictetus")
		require.NoError(t, err)
		assert.Equal(t, id, q.ID)

		_, err = store.GetRandomQuoteByAuthor(ctx, "epictetus")
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})

	t.Run("first interpretation", func(t *testing.T) {
		interp, err := store.GetFirstInterpretation(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Focus inward.", interp.Text)
	})

	t.Run("foreign key enforced", func(t *testing.T) {
		_, err := store.CreateInterpretation(ctx, CreateInterpretationParams{QuoteID: 999, Text: "orphan"})
		assert.Error(t, err)
	})

	t.Run("counts", func(t *testing.T) {
		n, err := store.CountInterpretations(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		byAuthor, err := store.CountQuotesByAuthor(ctx)
		require.NoError(t, err)
		assert.Equal(t, []AuthorCount{{Author: "Epictetus", Count: 1}}, byAuthor)
	})
}

func TestStore_InTx(t *testing.T) {
	t.Run("rolls back on error", func(t *testing.T) {
		store := NewTestStore(t)
		ctx := context.Background()
		boom := errors.New("boom")

		err := store.InTx(ctx, func(q *Queries) error {
			if _, err := q.CreateQuote(ctx, CreateQuoteParams{Text: "t", Author: "a"}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		count, err := store.CountQuotes(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("delete all resets ids", func(t *testing.T) {
		store := NewTestStore(t)
		ctx := context.Background()

		_, err := store.CreateQuote(ctx, CreateQuoteParams{Text: "t", Author: "a"})
		require.NoError(t, err)

		err = store.InTx(ctx, func(q *Queries) error { return q.DeleteAll(ctx) })
		require.NoError(t, err)

		id, err := store.CreateQuote(ctx, CreateQuoteParams{Text: "t2", Author: "a"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})
}

func TestExtractUpMigration(t *testing.T) {
	t.Run("extracts up portion", func(t *testing.T) {
		content := `-- +migrate Up
CREATE TABLE test (id INTEGER);

-- +migrate Down
DROP TABLE test;
`
		result := extractUpMigration(content)
		assert.Equal(t, "CREATE TABLE test (id INTEGER);", result)
	})

	t.Run("handles no down marker", func(t *testing.T) {
		content := "CREATE TABLE test (id INTEGER);"
		result := extractUpMigration(content)
		assert.Equal(t, "CREATE TABLE test (id INTEGER);", result)
	})
}
