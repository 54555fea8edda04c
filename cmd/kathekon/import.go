package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kathekon/kathekon/internal/config"
	"github.com/kathekon/kathekon/internal/db"
	"github.com/kathekon/kathekon/internal/importer"
	"github.com/spf13/cobra"
)

var (
	importSource string
	importClean  bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load quotes from a JSON document into the database",
	Long: `Load quotes from a JSON document into the database.

The document maps arbitrary keys to records:

  {"key": {"text": "...", "author": "...", "interpretations": ["..."]}}

Rows are appended to an existing database. Use --clean to replace its
contents and restart ids at 1.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importSource, "source", "", "JSON document to import (default $QUOTES_SOURCE or data/quotes.json)")
	importCmd.Flags().BoolVar(&importClean, "clean", false, "Delete existing quotes before importing")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	source := importSource
	if source == "" {
		source = cfg.QuotesSource
	}

	slog.Info("importing quotes", "source", source, "database", cfg.DatabasePath, "clean", importClean)
	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	if _, err := importer.New(store).ImportFile(ctx, source, importer.Options{Clean: importClean}); err != nil {
		return fmt.Errorf("import %s: %w", source, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Database has been successfully created, populated, and indexed!")
	return nil
}
