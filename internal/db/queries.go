package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries holds the typed SQL operations over a DBTX.
type Queries struct {
	db DBTX
}

// New returns Queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries that run inside tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const createQuote = `INSERT INTO quotes (text, author) VALUES (?, ?)`

// CreateQuoteParams are the columns of a new quote.
type CreateQuoteParams struct {
	Text   string
	Author string
}

// CreateQuote inserts a quote and returns its assigned id.
func (q *Queries) CreateQuote(ctx context.Context, arg CreateQuoteParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createQuote, arg.Text, arg.Author)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const createInterpretation = `INSERT INTO interpretations (quote_id, text) VALUES (?, ?)`

// CreateInterpretationParams are the columns of a new interpretation.
type CreateInterpretationParams struct {
	QuoteID int64
	Text    string
}

// CreateInterpretation inserts an interpretation and returns its assigned id.
func (q *Queries) CreateInterpretation(ctx context.Context, arg CreateInterpretationParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createInterpretation, arg.QuoteID, arg.Text)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const getQuote = `SELECT id, text, author FROM quotes WHERE id = ?`

// GetQuote returns the quote with the given id, or sql.ErrNoRows.
func (q *Queries) GetQuote(ctx context.Context, id int64) (*Quote, error) {
	var i Quote
	err := q.db.QueryRowContext(ctx, getQuote, id).Scan(&i.ID, &i.Text, &i.Author)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

const getRandomQuote = `SELECT id, text, author FROM quotes ORDER BY RANDOM() LIMIT 1`

// GetRandomQuote returns a uniformly random quote, or sql.ErrNoRows when empty.
func (q *Queries) GetRandomQuote(ctx context.Context) (*Quote, error) {
	var i Quote
	err := q.db.QueryRowContext(ctx, getRandomQuote).Scan(&i.ID, &i.Text, &i.Author)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

const getRandomQuoteByAuthor = `SELECT id, text, author FROM quotes WHERE author = ? ORDER BY RANDOM() LIMIT 1`

// GetRandomQuoteByAuthor returns a random quote whose author matches exactly.
func (q *Queries) GetRandomQuoteByAuthor(ctx context.Context, author string) (*Quote, error) {
	var i Quote
	err := q.db.QueryRowContext(ctx, getRandomQuoteByAuthor, author).Scan(&i.ID, &i.Text, &i.Author)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

const listQuoteIDs = `SELECT id FROM quotes ORDER BY id`

// ListQuoteIDs returns every quote id in ascending order.
func (q *Queries) ListQuoteIDs(ctx context.Context) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, listQuoteIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

const listQuotes = `SELECT id, text, author FROM quotes ORDER BY id`

// ListQuotes returns every quote in id order.
func (q *Queries) ListQuotes(ctx context.Context) ([]*Quote, error) {
	rows, err := q.db.QueryContext(ctx, listQuotes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Quote
	for rows.Next() {
		var i Quote
		if err := rows.Scan(&i.ID, &i.Text, &i.Author); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getRandomInterpretation = `SELECT id, quote_id, text FROM interpretations WHERE quote_id = ? ORDER BY RANDOM() LIMIT 1`

// GetRandomInterpretation returns a random interpretation of a quote, or sql.ErrNoRows.
func (q *Queries) GetRandomInterpretation(ctx context.Context, quoteID int64) (*Interpretation, error) {
	var i Interpretation
	err := q.db.QueryRowContext(ctx, getRandomInterpretation, quoteID).Scan(&i.ID, &i.QuoteID, &i.Text)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

const getFirstInterpretation = `SELECT id, quote_id, text FROM interpretations WHERE quote_id = ? ORDER BY id LIMIT 1`

// GetFirstInterpretation returns the lowest-id interpretation of a quote, or sql.ErrNoRows.
func (q *Queries) GetFirstInterpretation(ctx context.Context, quoteID int64) (*Interpretation, error) {
	var i Interpretation
	err := q.db.QueryRowContext(ctx, getFirstInterpretation, quoteID).Scan(&i.ID, &i.QuoteID, &i.Text)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

const countQuotes = `SELECT COUNT(*) FROM quotes`

func (q *Queries) CountQuotes(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countQuotes).Scan(&count)
	return count, err
}

const countInterpretations = `SELECT COUNT(*) FROM interpretations`

func (q *Queries) CountInterpretations(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countInterpretations).Scan(&count)
	return count, err
}

const countQuotesByAuthor = `SELECT author, COUNT(*) AS count FROM quotes GROUP BY author ORDER BY count DESC, author`

// CountQuotesByAuthor returns per-author quote counts, most prolific first.
func (q *Queries) CountQuotesByAuthor(ctx context.Context) ([]AuthorCount, error) {
	rows, err := q.db.QueryContext(ctx, countQuotesByAuthor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []AuthorCount
	for rows.Next() {
		var i AuthorCount
		if err := rows.Scan(&i.Author, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteInterpretations = `DELETE FROM interpretations`

const deleteQuotes = `DELETE FROM quotes`

const resetSequences = `DELETE FROM sqlite_sequence WHERE name IN ('quotes', 'interpretations')`

// DeleteAll removes every row and resets AUTOINCREMENT so new ids start at 1.
func (q *Queries) DeleteAll(ctx context.Context) error {
	for _, stmt := range []string{deleteInterpretations, deleteQuotes, resetSequences} {
		if _, err := q.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
