// ABOUTME: Letterboxd diary page parsing using goquery
// ABOUTME: Turns tr.diary-entry-row rows into Film records and detects whether more pages follow

package diary

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/harper/letterboxd2notion/internal/models"
	"github.com/harper/letterboxd2notion/internal/parse"
	"github.com/harper/letterboxd2notion/internal/timeutil"
)

// DefaultBaseURL is the site root film permalinks are built from.
const DefaultBaseURL = "https://letterboxd.com"

var (
	titleYearPattern = regexp.MustCompile(`\s*\((\d{4})\)$`)
	dayPathPattern   = regexp.MustCompile(`/for/(\d{4})/(\d{1,2})/(\d{1,2})`)
)

// Page is the result of parsing one diary page.
type Page struct {
	Number  int
	Films   []models.Film
	HasMore bool
}

// ParsePage parses one page of diary markup. Rows missing their viewing ID
// or film metadata are skipped. Film permalinks use DefaultBaseURL.
func ParsePage(markup []byte, page int) (Page, error) {
	return parsePage(markup, page, DefaultBaseURL)
}

func parsePage(markup []byte, page int, baseURL string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return Page{}, &parse.ParseError{Source: "diary", Err: err}
	}

	films := make([]models.Film, 0)
	doc.Find("tr.diary-entry-row").Each(func(_ int, row *goquery.Selection) {
		if film, ok := parseRow(row, baseURL); ok {
			films = append(films, film)
		}
	})

	return Page{
		Number:  page,
		Films:   films,
		HasMore: hasMore(doc, len(films)),
	}, nil
}

// hasMore reports whether another page is expected. An empty page always
// ends the history. When the page renders pagination controls, a missing
// "next" link means this is the last page.
func hasMore(doc *goquery.Document, count int) bool {
	if count == 0 {
		return false
	}
	nav := doc.Find(".paginate-nextprev, .pagination")
	if nav.Length() == 0 {
		return true
	}
	return nav.Find("a.next").Length() > 0
}

func parseRow(row *goquery.Selection, baseURL string) (models.Film, bool) {
	viewingID := strings.TrimSpace(row.AttrOr("data-viewing-id", ""))
	if viewingID == "" {
		return models.Film{}, false
	}

	poster := row.Find("div.react-component[data-item-slug]").First()
	if poster.Length() == 0 {
		return models.Film{}, false
	}

	name := strings.TrimSpace(poster.AttrOr("data-item-name", ""))
	slug := strings.TrimSpace(poster.AttrOr("data-item-slug", ""))
	if name == "" || slug == "" {
		return models.Film{}, false
	}

	title, year := splitTitleYear(name)

	film := models.Film{
		LetterboxdID:  models.ViewingID(viewingID),
		Title:         title,
		Year:          year,
		LetterboxdURL: strings.TrimRight(baseURL, "/") + "/film/" + slug + "/",
		Rewatch:       isRewatch(row),
	}
	if rating, ok := extractRating(row); ok {
		film.Rating = &rating
	}
	if watched, ok := extractWatchedDate(row); ok {
		film.WatchedDate = &watched
	}
	return film, true
}

// splitTitleYear splits "Home Alone (1990)" into ("Home Alone", 1990).
// Names without a trailing year come back verbatim with year 0.
func splitTitleYear(name string) (string, int) {
	m := titleYearPattern.FindStringSubmatchIndex(name)
	if m == nil {
		return name, 0
	}
	year, err := strconv.Atoi(name[m[2]:m[3]])
	if err != nil {
		return name, 0
	}
	return name[:m[0]], year
}

// extractRating reads a "rated-<n>" class where n counts half stars.
func extractRating(row *goquery.Selection) (float64, bool) {
	var (
		rating float64
		found  bool
	)
	row.Find("span.rating[class*='rated-']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rating, found = ratingFromClasses(s.AttrOr("class", ""))
		return !found
	})
	return rating, found
}

func ratingFromClasses(classes string) (float64, bool) {
	for _, cls := range strings.Fields(classes) {
		v, ok := strings.CutPrefix(cls, "rated-")
		if !ok {
			continue
		}
		halfStars, err := strconv.Atoi(v)
		if err != nil || halfStars < 1 || halfStars > 10 {
			continue
		}
		return float64(halfStars) / 2, true
	}
	return 0, false
}

// extractWatchedDate reads the diary day link, e.g.
// /testuser/diary/films/for/2025/12/26/.
func extractWatchedDate(row *goquery.Selection) (time.Time, bool) {
	href, ok := row.Find("a.daydate").First().Attr("href")
	if !ok {
		return time.Time{}, false
	}
	m := dayPathPattern.FindStringSubmatch(href)
	if m == nil {
		return time.Time{}, false
	}
	return timeutil.DateFromStrings(m[1], m[2], m[3])
}

// isRewatch reports whether the rewatch cell carries the rewatch icon
// without the "off" status marker. No markers at all means not a rewatch.
func isRewatch(row *goquery.Selection) bool {
	cell := row.Find("td.col-rewatch, td.td-rewatch").First()
	if cell.Length() == 0 {
		return false
	}
	marked := cell.HasClass("icon-rewatch") || cell.Find(".icon-rewatch").Length() > 0
	off := cell.HasClass("icon-status-off") || cell.Find(".icon-status-off").Length() > 0
	return marked && !off
}
