// ABOUTME: Film model representing one watched-film record from Letterboxd
// ABOUTME: Films are values; enrichment derives a copy with only artwork and TMDB ID changed

package models

import (
	"strings"
	"time"
)

// Letterboxd ID prefixes. Feed items carry review IDs; diary rows only
// expose a viewing ID, from which a pseudo-ID is synthesized.
const (
	ReviewIDPrefix  = "letterboxd-review-"
	ViewingIDPrefix = "letterboxd-viewing-"
)

// Film is the canonical watched-film record shared by parsers, the
// enricher and the storage hand-off. Treat it as immutable: copy it
// through WithEnrichment rather than assigning fields on a shared value.
type Film struct {
	LetterboxdID  string     `json:"letterboxd_id"`
	TMDBID        *int       `json:"tmdb_id,omitempty"`
	Title         string     `json:"title"`
	Year          int        `json:"year"` // 0 = unknown
	LetterboxdURL string     `json:"letterboxd_url"`
	Rating        *float64   `json:"rating,omitempty"`
	WatchedDate   *time.Time `json:"watched_date,omitempty"`
	Rewatch       bool       `json:"rewatch"`
	Review        *string    `json:"review,omitempty"`
	BackdropURL   *string    `json:"backdrop_url,omitempty"`
	PosterURL     *string    `json:"poster_url,omitempty"`
}

// ViewingID builds the pseudo-ID for a diary row.
func ViewingID(viewingID string) string {
	return ViewingIDPrefix + viewingID
}

// IsReview reports whether the film came from a feed review item.
func (f Film) IsReview() bool {
	return strings.HasPrefix(f.LetterboxdID, ReviewIDPrefix)
}

// IsViewing reports whether the film was synthesized from a diary row.
func (f Film) IsViewing() bool {
	return strings.HasPrefix(f.LetterboxdID, ViewingIDPrefix)
}

// HasTMDBID reports whether a catalog ID is known.
func (f Film) HasTMDBID() bool {
	return f.TMDBID != nil
}

// Enrichment holds what the movie database resolved for a film.
type Enrichment struct {
	TMDBID      int
	PosterURL   *string
	BackdropURL *string
}

// WithEnrichment returns a copy of f carrying the resolved artwork. The
// TMDB ID is only taken from e when f has none; a source-asserted ID
// always wins. All other fields pass through unchanged.
func (f Film) WithEnrichment(e Enrichment) Film {
	out := f.clone()
	out.PosterURL = cloneString(e.PosterURL)
	out.BackdropURL = cloneString(e.BackdropURL)
	if out.TMDBID == nil && e.TMDBID > 0 {
		id := e.TMDBID
		out.TMDBID = &id
	}
	return out
}

// clone deep-copies the pointer fields so the copy shares no memory with f.
func (f Film) clone() Film {
	out := f
	if f.TMDBID != nil {
		id := *f.TMDBID
		out.TMDBID = &id
	}
	if f.Rating != nil {
		r := *f.Rating
		out.Rating = &r
	}
	if f.WatchedDate != nil {
		d := *f.WatchedDate
		out.WatchedDate = &d
	}
	out.Review = cloneString(f.Review)
	out.BackdropURL = cloneString(f.BackdropURL)
	out.PosterURL = cloneString(f.PosterURL)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Equal reports field-for-field equality, comparing pointed-to values.
func (f Film) Equal(o Film) bool {
	if f.LetterboxdID != o.LetterboxdID || f.Title != o.Title || f.Year != o.Year ||
		f.LetterboxdURL != o.LetterboxdURL || f.Rewatch != o.Rewatch {
		return false
	}
	if !eqPtr(f.TMDBID, o.TMDBID) || !eqPtr(f.Rating, o.Rating) ||
		!eqPtr(f.Review, o.Review) || !eqPtr(f.BackdropURL, o.BackdropURL) ||
		!eqPtr(f.PosterURL, o.PosterURL) {
		return false
	}
	switch {
	case f.WatchedDate == nil && o.WatchedDate == nil:
		return true
	case f.WatchedDate == nil || o.WatchedDate == nil:
		return false
	default:
		return f.WatchedDate.Equal(*o.WatchedDate)
	}
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
