// ABOUTME: Sync command producing Notion page payloads for enriched films
// ABOUTME: Recent mode reads the RSS feed; --full merges in the whole diary history

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/letterboxd2notion/internal/models"
	"github.com/harper/letterboxd2notion/internal/notion"
	"github.com/harper/letterboxd2notion/internal/pipeline"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Build Notion payloads for recent or all films",
	Long: `Fetch films, enrich them with TMDB artwork and write one Notion
create-page payload per line. By default only the RSS feed is read;
--full also walks the whole diary and merges duplicate viewings.

Payloads go to stdout unless --out names a file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		full, _ := cmd.Flags().GetBool("full")
		out, _ := cmd.Flags().GetString("out")

		runner, err := newRunner(newFetcher(), true)
		if err != nil {
			return err
		}

		var (
			films  []models.Film
			report pipeline.Report
		)
		if full {
			faint := color.New(color.Faint).SprintFunc()
			films, report, err = runner.Full(cmd.Context(), func(page int) {
				fmt.Fprintf(os.Stderr, "%s\n", faint(fmt.Sprintf("Fetching diary page %d...", page)))
			})
		} else {
			films, report, err = runner.Recent(cmd.Context())
		}
		if err != nil {
			return err
		}

		var w io.Writer = os.Stdout
		if out != "" {
			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer file.Close()
			w = file
		}

		if err := notion.NewPayloadWriter(w, cfg.NotionDatabaseID).Upsert(cmd.Context(), films); err != nil {
			return err
		}

		printReport(os.Stderr, report)
		if out != "" {
			green := color.New(color.FgGreen).SprintFunc()
			fmt.Fprintf(os.Stderr, "%s wrote %d payload(s) to %s\n", green("v"), len(films), out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().Bool("full", false, "include the whole diary history")
	syncCmd.Flags().StringP("out", "o", "", "write payloads to a file instead of stdout")
}
