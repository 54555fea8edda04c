package main

import (
	"fmt"
	"strings"

	"github.com/kathekon/kathekon/internal/config"
	"github.com/kathekon/kathekon/internal/vectorstore"
	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Find quotes similar to a phrase",
	Long: `Search the VecLite index built by 'kathekon index' for quotes semantically
similar to QUERY.

Example:
  kathekon search "dealing with anger"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForVecLite(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	quoteStore, err := vectorstore.New(vectorstore.Config{
		Path:       cfg.VecLitePath,
		ConfigPath: cfg.VecLiteConfig,
	})
	if err != nil {
		return fmt.Errorf("open veclite: %w", err)
	}
	defer quoteStore.Close()

	if quoteStore.Count() == 0 {
		return fmt.Errorf("index is empty (run 'kathekon index' first)")
	}

	results, err := quoteStore.Search(cmd.Context(), strings.Join(args, " "), searchLimit)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No matching quotes.")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(out, "[%d] (%.3f) “%s” — %s\n", r.QuoteID, r.Similarity, r.Text, r.Author)
	}
	return nil
}
