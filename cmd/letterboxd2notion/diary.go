// ABOUTME: Diary command walking every page of the member's Letterboxd diary
// ABOUTME: Prints per-page progress on stderr and the collected films on stdout

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/letterboxd2notion/internal/fetch"
)

var diaryCmd = &cobra.Command{
	Use:   "diary",
	Short: "List every film in the diary",
	Long: `Fetch the whole Letterboxd diary, one page at a time with a pause
between pages. Diary entries carry viewing IDs and no review text.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		enrich, _ := cmd.Flags().GetBool("enrich")
		asJSON, _ := cmd.Flags().GetBool("json")

		if err := cfg.Validate(enrich); err != nil {
			return err
		}
		f := newFetcher()
		scraper := newScraper(f)

		faint := color.New(color.Faint).SprintFunc()
		films, err := scraper.ParseAllPages(cmd.Context(), func(page int) {
			fmt.Fprintf(os.Stderr, "%s\n", faint(fmt.Sprintf("Fetching diary page %d...", page)))
		})
		if err != nil {
			var rle *fetch.RateLimitError
			if errors.As(err, &rle) {
				return fmt.Errorf("letterboxd rate limited the diary after %d films, retry in %v: %w", len(films), rle.Duration(), err)
			}
			return err
		}

		if enrich {
			runner, err := newRunner(f, true)
			if err != nil {
				return err
			}
			enriched, report, err := runner.EnrichAll(cmd.Context(), films)
			if err != nil {
				return err
			}
			films = enriched
			report.Diary = len(films)
			defer printReport(os.Stderr, report)
		}

		if asJSON {
			return printJSON(os.Stdout, films)
		}
		printFilms(os.Stdout, films)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diaryCmd)
	diaryCmd.Flags().Bool("enrich", false, "resolve TMDB poster and backdrop URLs")
	diaryCmd.Flags().Bool("json", false, "print films as JSON")
}
