// ABOUTME: Review command rendering one feed review in the terminal
// ABOUTME: Converts the review paragraphs to Markdown and renders them with glamour

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/letterboxd2notion/internal/content"
	"github.com/harper/letterboxd2notion/internal/models"
	"github.com/harper/letterboxd2notion/internal/parse"
)

var reviewCmd = &cobra.Command{
	Use:   "review <letterboxd-id>",
	Short: "Read a review from the feed",
	Long:  "Display the review text of a feed entry, e.g. letterboxd-review-42",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := reviewID(args[0])

		items, err := parse.FetchItems(cmd.Context(), newFetcher(), cfg.RSSURL)
		if err != nil {
			return err
		}
		item, ok := parse.FindItem(items, id)
		if !ok {
			return fmt.Errorf("feed entry not found: %s", id)
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		if film, ok := item.Film(); ok {
			fmt.Printf("%s  %s\n", bold(filmLabel(film)), ratingStars(film.Rating))
			if link, ok := item.Link(); ok {
				fmt.Printf("%s\n", faint(link))
			}
		}

		description, _ := item.Description()
		markdown, ok := content.ReviewMarkdown(description)
		if !ok {
			fmt.Println("\n(No review text)")
			return nil
		}

		rendered, err := glamour.Render(markdown, "dark")
		if err != nil {
			fmt.Printf("%s\n", faint("(markdown rendering unavailable, showing plain text)"))
			fmt.Printf("\n%s\n", markdown)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

// reviewID accepts either a full feed ID or its bare number.
func reviewID(arg string) string {
	arg = strings.TrimSpace(arg)
	if _, err := strconv.Atoi(arg); err == nil {
		return models.ReviewIDPrefix + arg
	}
	return arg
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}
