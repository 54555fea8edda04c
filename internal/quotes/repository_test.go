package quotes

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kathekon/kathekon/internal/db"
	"github.com/kathekon/kathekon/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInterpreter struct {
	text  string
	err   error
	calls int
}

func (f *fakeInterpreter) Interpret(ctx context.Context, text, author string) (string, error) {
	f.calls++
	return f.text, f.err
}

func seedStore(t *testing.T, doc string) *db.Store {
	t.Helper()
	store := db.NewTestStore(t)
	_, err := importer.New(store).Import(context.Background(), strings.NewReader(doc), importer.Options{})
	require.NoError(t, err)
	return store
}

const stoics = `{
  "a": {"text": "Control your mind", "author": "Epictetus", "interpretations": ["Focus inward."]},
  "b": {"text": "Waste no more time", "author": "Marcus Aurelius", "interpretations": ["Act now.", "Be good."]},
  "c": {"text": "We suffer more in imagination", "author": "Seneca"},
  "d": {"text": "You have power over your mind", "author": "Marcus Aurelius"}
}`

func int64p(v int64) *int64 { return &v }

func TestRepository_GetQuote(t *testing.T) {
	store := seedStore(t, stoics)
	repo := New(Config{Store: store})
	ctx := context.Background()

	t.Run("by id", func(t *testing.T) {
		q, err := repo.GetQuote(ctx, Query{ID: int64p(1)}, ModeDB)
		require.NoError(t, err)
		assert.Equal(t, "Control your mind", q.Text)
		assert.Equal(t, "Epictetus", q.Author)
		assert.Equal(t, "Focus inward.", q.Interpretation)
	})

	t.Run("by id is stable", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			q, err := repo.GetQuote(ctx, Query{ID: int64p(3)}, ModeDB)
			require.NoError(t, err)
			assert.Equal(t, "We suffer more in imagination", q.Text)
			assert.Empty(t, q.Interpretation)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.GetQuote(ctx, Query{ID: int64p(99)}, ModeDB)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "99")
	})

	t.Run("id takes precedence over author", func(t *testing.T) {
		q, err := repo.GetQuote(ctx, Query{ID: int64p(1), Author: "Seneca"}, ModeDB)
		require.NoError(t, err)
		assert.Equal(t, "Epictetus", q.Author)
	})

	t.Run("by author only returns that author", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			q, err := repo.GetQuote(ctx, Query{Author: "Marcus Aurelius"}, ModeDB)
			require.NoError(t, err)
			assert.Equal(t, "Marcus Aurelius", q.Author)
		}
	})

	t.Run("author match is exact", func(t *testing.T) {
		_, err := repo.GetQuote(ctx, Query{Author: "marcus aurelius"}, ModeDB)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("random", func(t *testing.T) {
		q, err := repo.GetQuote(ctx, Query{}, ModeDB)
		require.NoError(t, err)
		assert.NotEmpty(t, q.Text)
	})

	t.Run("fixed picks first interpretation", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			q, err := repo.GetQuote(ctx, Query{ID: int64p(2)}, ModeDBFixed)
			require.NoError(t, err)
			assert.Equal(t, "Act now.", q.Interpretation)
		}
	})

	t.Run("random interpretation is a stored one", func(t *testing.T) {
		q, err := repo.GetQuote(ctx, Query{ID: int64p(2)}, ModeDB)
		require.NoError(t, err)
		assert.Contains(t, []string{"Act now.", "Be good."}, q.Interpretation)
	})
}

func TestRepository_EmptyStore(t *testing.T) {
	repo := New(Config{Store: db.NewTestStore(t)})
	ctx := context.Background()

	_, err := repo.GetQuote(ctx, Query{}, ModeDB)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetDailyQuote(ctx, ModeDBFixed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Interpreter(t *testing.T) {
	store := seedStore(t, stoics)
	ctx := context.Background()

	t.Run("gpt uses generated text", func(t *testing.T) {
		fake := &fakeInterpreter{text: "Generated."}
		repo := New(Config{Store: store, Interpreter: fake})

		q, err := repo.GetQuote(ctx, Query{ID: int64p(1)}, ModeGPT)
		require.NoError(t, err)
		assert.Equal(t, "Generated.", q.Interpretation)
		assert.Equal(t, 1, fake.calls)
	})

	t.Run("gpt fails loudly", func(t *testing.T) {
		fake := &fakeInterpreter{err: errors.New("connection refused")}
		repo := New(Config{Store: store, Interpreter: fake})

		_, err := repo.GetQuote(ctx, Query{ID: int64p(1)}, ModeGPT)
		assert.ErrorIs(t, err, ErrExternalService)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("gpt without interpreter fails", func(t *testing.T) {
		repo := New(Config{Store: store})

		_, err := repo.GetQuote(ctx, Query{ID: int64p(1)}, ModeGPT)
		assert.ErrorIs(t, err, ErrExternalService)
	})

	t.Run("fallback uses stored interpretation once", func(t *testing.T) {
		fake := &fakeInterpreter{err: errors.New("timeout")}
		repo := New(Config{Store: store, Interpreter: fake})

		q, err := repo.GetQuote(ctx, Query{ID: int64p(1)}, ModeGPTFallback)
		require.NoError(t, err)
		assert.Equal(t, "Focus inward.", q.Interpretation)
		assert.Equal(t, 1, fake.calls)
	})

	t.Run("fallback to empty", func(t *testing.T) {
		fake := &fakeInterpreter{err: errors.New("timeout")}
		repo := New(Config{Store: store, Interpreter: fake})

		q, err := repo.GetQuote(ctx, Query{ID: int64p(3)}, ModeGPTFallback)
		require.NoError(t, err)
		assert.Empty(t, q.Interpretation)
	})

	t.Run("fallback prefers generated", func(t *testing.T) {
		fake := &fakeInterpreter{text: "Generated."}
		repo := New(Config{Store: store, Interpreter: fake})

		q, err := repo.GetQuote(ctx, Query{ID: int64p(1)}, ModeGPTFallback)
		require.NoError(t, err)
		assert.Equal(t, "Generated.", q.Interpretation)
	})
}

func TestRepository_GetDailyQuote(t *testing.T) {
	store := seedStore(t, stoics)
	ctx := context.Background()

	at := func(s string) func() time.Time {
		return func() time.Time {
			ts, err := time.Parse(time.RFC3339, s)
			require.NoError(t, err)
			return ts
		}
	}

	t.Run("same day same quote", func(t *testing.T) {
		morning := New(Config{Store: store, Now: at("2026-10-14T00:00:01Z")})
		evening := New(Config{Store: store, Now: at("2026-10-14T23:59:59Z")})

		first, err := morning.GetDailyQuote(ctx, ModeDBFixed)
		require.NoError(t, err)
		second, err := evening.GetDailyQuote(ctx, ModeDBFixed)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("matches daily index", func(t *testing.T) {
		now := at("2026-03-01T12:00:00Z")
		repo := New(Config{Store: store, Now: now})

		q, err := repo.GetDailyQuote(ctx, ModeDBFixed)
		require.NoError(t, err)
		assert.Equal(t, int64(DailyIndex(now(), 4)+1), q.ID)
	})

	t.Run("uses configured location", func(t *testing.T) {
		// 23:30 UTC on the 14th is already the 15th at UTC+2
		loc := time.FixedZone("UTC+2", 2*60*60)
		repo := New(Config{Store: store, Location: loc, Now: at("2026-10-14T23:30:00Z")})
		local := New(Config{Store: store, Now: at("2026-10-15T12:00:00Z")})

		q1, err := repo.GetDailyQuote(ctx, ModeDBFixed)
		require.NoError(t, err)
		q2, err := local.GetDailyQuote(ctx, ModeDBFixed)
		require.NoError(t, err)
		assert.Equal(t, q2.ID, q1.ID)
	})
}
