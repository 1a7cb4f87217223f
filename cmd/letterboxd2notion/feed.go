// ABOUTME: Feed command listing the films in the member's Letterboxd RSS feed
// ABOUTME: Optionally enriches them with TMDB artwork and prints JSON

package main

import (
	"os"

	"github.com/spf13/cobra"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "List films from the RSS feed",
	Long: `List the films in the member's Letterboxd RSS feed (the most recent
diary entries and reviews). Use --enrich to resolve TMDB artwork.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		enrich, _ := cmd.Flags().GetBool("enrich")
		asJSON, _ := cmd.Flags().GetBool("json")

		runner, err := newRunner(newFetcher(), enrich)
		if err != nil {
			return err
		}

		films, report, err := runner.Recent(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON {
			return printJSON(os.Stdout, films)
		}
		printFilms(os.Stdout, films)
		if enrich {
			printReport(os.Stdout, report)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(feedCmd)
	feedCmd.Flags().Bool("enrich", false, "resolve TMDB poster and backdrop URLs")
	feedCmd.Flags().Bool("json", false, "print films as JSON")
}
