package main

import (
	"context"

	"github.com/kathekon/kathekon/internal/app"
	"github.com/kathekon/kathekon/internal/quotes"
	"github.com/spf13/cobra"
)

var (
	randomID     int64
	randomAuthor string
	randomMode   = newModeValue(quotes.ModeDB, quotes.RandomModes)
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Display a random Stoic quote",
	Long: `Display a random Stoic quote, optionally by id or by author.

Examples:
  kathekon random                          # Any quote
  kathekon random --id 42                  # A specific quote
  kathekon random --author "Seneca"        # A random quote by Seneca
  kathekon random --interpretation gpt     # Generate the interpretation`,
	Args: cobra.NoArgs,
	RunE: runRandom,
}

func init() {
	randomCmd.Flags().Int64Var(&randomID, "id", 0, "Fetch a quote by its unique ID")
	randomCmd.Flags().StringVar(&randomAuthor, "author", "", "Fetch a random quote by the specified author")
	addModeFlag(randomCmd, randomMode)
	rootCmd.AddCommand(randomCmd)
}

func runRandom(cmd *cobra.Command, args []string) error {
	query := lookupQuery(cmd, randomID, randomAuthor)
	return serve(cmd, func(ctx context.Context, a *app.App) error {
		q, err := a.Quotes.GetQuote(ctx, query, randomMode.mode)
		if err != nil {
			return err
		}
		return printQuote(cmd.OutOrStdout(), q)
	})
}

// lookupQuery builds a quote query; --id applies only when it was given.
func lookupQuery(cmd *cobra.Command, id int64, author string) quotes.Query {
	q := quotes.Query{Author: author}
	if cmd.Flags().Changed("id") {
		q.ID = &id
	}
	return q
}
