// ABOUTME: Terminal and JSON rendering of film lists for CLI commands
// ABOUTME: Star ratings, rewatch markers and colored run summaries

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/harper/letterboxd2notion/internal/models"
	"github.com/harper/letterboxd2notion/internal/pipeline"
	"github.com/harper/letterboxd2notion/internal/timeutil"
)

// ratingStars renders a half-star rating, e.g. 3.5 -> "★★★½".
func ratingStars(rating *float64) string {
	if rating == nil {
		return ""
	}
	halves := int(math.Round(*rating * 2))
	stars := strings.Repeat("★", halves/2)
	if halves%2 == 1 {
		stars += "½"
	}
	return stars
}

func filmLabel(f models.Film) string {
	if f.Year == 0 {
		return f.Title
	}
	return fmt.Sprintf("%s (%d)", f.Title, f.Year)
}

func printFilms(w io.Writer, films []models.Film) {
	faint := color.New(color.Faint).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	for _, f := range films {
		date := timeutil.FormatDate(f.WatchedDate)
		if date == "" {
			date = "----------"
		}
		line := fmt.Sprintf("%s  %s", faint(date), filmLabel(f))
		if stars := ratingStars(f.Rating); stars != "" {
			line += "  " + yellow(stars)
		}
		if f.Rewatch {
			line += "  " + cyan("↻")
		}
		if f.Review != nil {
			line += "  " + faint("(review)")
		}
		fmt.Fprintln(w, line)
		fmt.Fprintf(w, "            %s\n", faint(f.LetterboxdID))
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printReport(w io.Writer, report pipeline.Report) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary: %d feed film(s), %d diary film(s) %s\n", report.Feed, report.Diary, faint("run "+report.RunID))
	if report.Enriched > 0 {
		fmt.Fprintf(w, "  %s %d enriched\n", green("v"), report.Enriched)
	}
	if report.Unchanged > 0 {
		fmt.Fprintf(w, "  %s %d unchanged\n", faint("-"), report.Unchanged)
	}
	if report.Failed > 0 {
		fmt.Fprintf(w, "  %s %d failed\n", red("x"), report.Failed)
	}
}
