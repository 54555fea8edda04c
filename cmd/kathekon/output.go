package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kathekon/kathekon/internal/app"
	"github.com/kathekon/kathekon/internal/config"
	"github.com/kathekon/kathekon/internal/display"
	"github.com/kathekon/kathekon/internal/quotes"
	"github.com/kathekon/kathekon/internal/readme"
	"github.com/spf13/cobra"
)

// serve runs fn with a wired App. Failures are reported as a single line on the
// command's output and do not fail the process.
func serve(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	err := func() error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}

		a, err := app.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open app: %w", err)
		}
		defer a.Close()

		return fn(ctx, a)
	}()
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Error: %s\n", err)
	}
	return nil
}

// printQuote renders q centered for the terminal, or at the default width without
// styling when output is redirected.
func printQuote(w io.Writer, q *quotes.ResolvedQuote) error {
	width, color := 0, false
	if f, ok := w.(*os.File); ok {
		width, color = display.TerminalWidth(f), display.ColorEnabled(f)
	}
	return display.Render(w, display.FormatQuote(q.Text, q.Author, q.Interpretation), width, color)
}

// writeReadme fills the quote sections of the file at path (default from config).
func writeReadme(w io.Writer, a *app.App, path string, q *quotes.ResolvedQuote) error {
	if path == "" {
		path = a.Config.ReadmePath
	}
	if err := readme.UpdateFile(path, readme.Sections(q)); err != nil {
		return err
	}
	fmt.Fprintf(w, "Updated %s successfully.\n", path)
	return nil
}
