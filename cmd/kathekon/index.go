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

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the semantic search index",
	Long: `Embed every quote in the database into a VecLite index for the search command.

The embedding provider is read from veclite.yaml (VECLITE_CONFIG, ./veclite.yaml
or ~/.veclite/config.yaml). An existing index at VECLITE_PATH is rebuilt.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForVecLite(); err != nil {
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

	all, err := store.ListQuotes(ctx)
	if err != nil {
		return fmt.Errorf("list quotes: %w", err)
	}
	if len(all) == 0 {
		return fmt.Errorf("no quotes in database (run 'kathekon import' first)")
	}

	if err := os.RemoveAll(cfg.VecLitePath); err != nil {
		return fmt.Errorf("remove old index: %w", err)
	}

	quoteStore, err := vectorstore.New(vectorstore.Config{
		Path:       cfg.VecLitePath,
		ConfigPath: cfg.VecLiteConfig,
	})
	if err != nil {
		return fmt.Errorf("open veclite: %w", err)
	}
	defer quoteStore.Close()

	slog.Info("building index", "quotes", len(all), "path", cfg.VecLitePath)
	indexed, err := quoteStore.IndexAll(ctx, all)
	if err != nil {
		return fmt.Errorf("index quotes: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d quotes into %s\n", indexed, cfg.VecLitePath)
	return nil
}
