package db

// Quote is a row of the quotes table.
type Quote struct {
	ID     int64
	Text   string
	Author string
}

// Interpretation is a row of the interpretations table.
type Interpretation struct {
	ID      int64
	QuoteID int64
	Text    string
}

// AuthorCount is a row of CountQuotesByAuthor.
type AuthorCount struct {
	Author string
	Count  int64
}
