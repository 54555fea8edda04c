package main

import (
	"context"

	"github.com/kathekon/kathekon/internal/app"
	"github.com/kathekon/kathekon/internal/quotes"
	"github.com/spf13/cobra"
)

var (
	readmeRandomFile   string
	readmeRandomID     int64
	readmeRandomAuthor string
	readmeRandomMode   = newModeValue(quotes.ModeDB, quotes.RandomModes)

	readmeDailyFile string
	readmeDailyMode = newModeValue(quotes.ModeDBFixed, quotes.DailyModes)
)

var readmeCmd = &cobra.Command{
	Use:   "readme",
	Short: "Update README.md or provided file with a Stoic quote",
	Long: `Write a quote into the marked sections of a file.

The file must contain any of these marker pairs; everything between a pair is
replaced and the markers are kept:

  <!--START_SECTION:quote-text--><!--END_SECTION:quote-text-->
  <!--START_SECTION:quote-author--><!--END_SECTION:quote-author-->
  <!--START_SECTION:quote-interpretation--><!--END_SECTION:quote-interpretation-->`,
}

var readmeRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Update with a random quote",
	Args:  cobra.NoArgs,
	RunE:  runReadmeRandom,
}

var readmeDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Update with today's quote",
	Args:  cobra.NoArgs,
	RunE:  runReadmeDaily,
}

func init() {
	readmeRandomCmd.Flags().StringVar(&readmeRandomFile, "file", "", "Path to the file to update (default $README_PATH or README.md)")
	readmeRandomCmd.Flags().Int64Var(&readmeRandomID, "id", 0, "Fetch a quote by its unique ID")
	readmeRandomCmd.Flags().StringVar(&readmeRandomAuthor, "author", "", "Fetch a random quote by the specified author")
	addModeFlag(readmeRandomCmd, readmeRandomMode)

	readmeDailyCmd.Flags().StringVar(&readmeDailyFile, "file", "", "Path to the file to update (default $README_PATH or README.md)")
	addModeFlag(readmeDailyCmd, readmeDailyMode)

	readmeCmd.AddCommand(readmeRandomCmd, readmeDailyCmd)
	rootCmd.AddCommand(readmeCmd)
}

func runReadmeRandom(cmd *cobra.Command, args []string) error {
	query := lookupQuery(cmd, readmeRandomID, readmeRandomAuthor)
	return serve(cmd, func(ctx context.Context, a *app.App) error {
		q, err := a.Quotes.GetQuote(ctx, query, readmeRandomMode.mode)
		if err != nil {
			return err
		}
		return writeReadme(cmd.OutOrStdout(), a, readmeRandomFile, q)
	})
}

func runReadmeDaily(cmd *cobra.Command, args []string) error {
	return serve(cmd, func(ctx context.Context, a *app.App) error {
		q, err := a.Quotes.GetDailyQuote(ctx, readmeDailyMode.mode)
		if err != nil {
			return err
		}
		return writeReadme(cmd.OutOrStdout(), a, readmeDailyFile, q)
	})
}
