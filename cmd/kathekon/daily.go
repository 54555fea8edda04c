package main

import (
	"context"

	"github.com/kathekon/kathekon/internal/app"
	"github.com/kathekon/kathekon/internal/quotes"
	"github.com/spf13/cobra"
)

var dailyMode = newModeValue(quotes.ModeDBFixed, quotes.DailyModes)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Display today's Stoic quote",
	Long: `Display today's Stoic quote.

The quote is chosen from the calendar date in DAILY_TIMEZONE (default UTC),
so every run on the same day shows the same quote.`,
	Args: cobra.NoArgs,
	RunE: runDaily,
}

func init() {
	addModeFlag(dailyCmd, dailyMode)
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, args []string) error {
	return serve(cmd, func(ctx context.Context, a *app.App) error {
		q, err := a.Quotes.GetDailyQuote(ctx, dailyMode.mode)
		if err != nil {
			return err
		}
		return printQuote(cmd.OutOrStdout(), q)
	})
}
