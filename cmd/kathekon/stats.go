package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/kathekon/kathekon/internal/config"
	"github.com/kathekon/kathekon/internal/db"
	"github.com/kathekon/kathekon/internal/vectorstore"
	"github.com/spf13/cobra"
)

var statsTopAuthors int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  `Display quote, interpretation and author counts, and vector index statistics when an index exists.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsTopAuthors, "authors", 10, "Number of authors to list")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	totalQuotes, err := store.CountQuotes(ctx)
	if err != nil {
		return fmt.Errorf("count quotes: %w", err)
	}

	totalInterpretations, err := store.CountInterpretations(ctx)
	if err != nil {
		return fmt.Errorf("count interpretations: %w", err)
	}

	byAuthor, err := store.CountQuotesByAuthor(ctx)
	if err != nil {
		return fmt.Errorf("count quotes by author: %w", err)
	}

	fmt.Fprintln(out, "=== Kathekon Statistics ===")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Database: %s\n", cfg.DatabasePath)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Quotes:")
	fmt.Fprintf(out, "  Total: %d\n", totalQuotes)
	fmt.Fprintf(out, "  Interpretations: %d\n", totalInterpretations)
	fmt.Fprintf(out, "  Authors: %d\n", len(byAuthor))
	fmt.Fprintln(out)

	if len(byAuthor) > 0 {
		fmt.Fprintln(out, "  By author:")
		for i, row := range byAuthor {
			if statsTopAuthors >= 0 && i >= statsTopAuthors {
				fmt.Fprintf(out, "    ... and %d more\n", len(byAuthor)-i)
				break
			}
			fmt.Fprintf(out, "    %s: %d\n", row.Author, row.Count)
		}
		fmt.Fprintln(out)
	}

	if _, err := os.Stat(cfg.VecLitePath); err == nil {
		quoteStore, err := vectorstore.New(vectorstore.Config{
			Path:       cfg.VecLitePath,
			ConfigPath: cfg.VecLiteConfig,
		})
		if err != nil {
			slog.Warn("failed to open VecLite", "error", err)
		} else {
			defer quoteStore.Close()
			stats := quoteStore.Stats()
			fmt.Fprintln(out, "VecLite:")
			fmt.Fprintf(out, "  Path: %s\n", cfg.VecLitePath)
			fmt.Fprintf(out, "  Documents: %d\n", stats.Count)
			fmt.Fprintf(out, "  Dimension: %d\n", stats.Dimension)
			fmt.Fprintf(out, "  Distance: %s\n", stats.DistanceType)
			fmt.Fprintln(out)
		}
	}

	return nil
}
