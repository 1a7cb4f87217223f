// ABOUTME: Letterboxd RSS feed parsing using the gofeed library
// ABOUTME: Maps each item's letterboxd:/tmdb: extension fields to explicit optional values, then to Film records

package parse

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/harper/letterboxd2notion/internal/content"
	"github.com/harper/letterboxd2notion/internal/models"
	"github.com/harper/letterboxd2notion/internal/timeutil"
)

// Extension prefixes as declared by the Letterboxd feed
// (xmlns:letterboxd="https://letterboxd.com", xmlns:tmdb="https://themoviedb.org").
const (
	letterboxdPrefix = "letterboxd"
	tmdbPrefix       = "tmdb"
)

// Item is one feed item with every source field exposed as an explicit
// (value, ok) pair. A missing or blank field reports ok=false; accessors
// never panic on absent extensions.
type Item struct {
	guid        string
	link        string
	description string
	extensions  ext.Extensions
}

// GUID returns the item's guid, e.g. "letterboxd-review-42".
func (i Item) GUID() (string, bool) {
	return present(i.guid)
}

// Link returns the item's permalink.
func (i Item) Link() (string, bool) {
	return present(i.link)
}

// Description returns the raw HTML description.
func (i Item) Description() (string, bool) {
	return present(i.description)
}

// FilmTitle returns letterboxd:filmTitle.
func (i Item) FilmTitle() (string, bool) {
	return i.extension(letterboxdPrefix, "filmTitle")
}

// FilmYear returns letterboxd:filmYear.
func (i Item) FilmYear() (int, bool) {
	v, ok := i.extension(letterboxdPrefix, "filmYear")
	if !ok {
		return 0, false
	}
	year, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return year, true
}

// MemberRating returns letterboxd:memberRating (0.5 to 5.0).
func (i Item) MemberRating() (float64, bool) {
	v, ok := i.extension(letterboxdPrefix, "memberRating")
	if !ok {
		return 0, false
	}
	rating, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return rating, true
}

// WatchedDate returns letterboxd:watchedDate.
func (i Item) WatchedDate() (time.Time, bool) {
	v, ok := i.extension(letterboxdPrefix, "watchedDate")
	if !ok {
		return time.Time{}, false
	}
	return timeutil.ParseISODate(v)
}

// Rewatch returns letterboxd:rewatch as a boolean ("Yes" is true).
func (i Item) Rewatch() (bool, bool) {
	v, ok := i.extension(letterboxdPrefix, "rewatch")
	if !ok {
		return false, false
	}
	return v == "Yes", true
}

// TMDBID returns tmdb:movieId.
func (i Item) TMDBID() (int, bool) {
	v, ok := i.extension(tmdbPrefix, "movieId")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (i Item) extension(prefix, name string) (string, bool) {
	byName, ok := i.extensions[prefix]
	if !ok {
		return "", false
	}
	values := byName[name]
	if len(values) == 0 {
		return "", false
	}
	return present(values[0].Value)
}

func present(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Film converts the item to a Film. It reports false when the guid, film
// title or film year is missing; every other field is optional on its own.
func (i Item) Film() (models.Film, bool) {
	guid, ok := i.GUID()
	if !ok {
		return models.Film{}, false
	}
	title, ok := i.FilmTitle()
	if !ok {
		return models.Film{}, false
	}
	year, ok := i.FilmYear()
	if !ok {
		return models.Film{}, false
	}

	film := models.Film{
		LetterboxdID: guid,
		Title:        title,
		Year:         year,
	}
	if link, ok := i.Link(); ok {
		film.LetterboxdURL = link
	}
	if rating, ok := i.MemberRating(); ok {
		film.Rating = &rating
	}
	if watched, ok := i.WatchedDate(); ok {
		film.WatchedDate = &watched
	}
	if rewatch, ok := i.Rewatch(); ok {
		film.Rewatch = rewatch
	}
	if id, ok := i.TMDBID(); ok {
		film.TMDBID = &id
	}
	if desc, ok := i.Description(); ok {
		film.Review = content.ExtractReview(desc)
	}
	return film, true
}

// ParseItems parses a Letterboxd RSS document into items. Returns a
// *ParseError when the document itself is not a readable feed.
func ParseItems(data []byte) ([]Item, error) {
	parser := gofeed.NewParser()
	feed, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Source: "rss", Err: err}
	}

	items := make([]Item, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		items = append(items, Item{
			guid:        it.GUID,
			link:        it.Link,
			description: it.Description,
			extensions:  it.Extensions,
		})
	}
	return items, nil
}

// ParseFeed parses a Letterboxd RSS document into films, silently skipping
// items that are not film entries (lists, items lacking title or year).
func ParseFeed(data []byte) ([]models.Film, error) {
	items, err := ParseItems(data)
	if err != nil {
		return nil, err
	}

	films := make([]models.Film, 0, len(items))
	for _, item := range items {
		if film, ok := item.Film(); ok {
			films = append(films, film)
		}
	}
	return films, nil
}
