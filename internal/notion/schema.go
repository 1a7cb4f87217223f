// ABOUTME: Notion database schema and per-film page payloads for the film history database
// ABOUTME: Every Film attribute maps onto a named database property or the page cover/icon

package notion

import (
	"unicode/utf8"

	"github.com/harper/letterboxd2notion/internal/models"
	"github.com/harper/letterboxd2notion/internal/timeutil"
)

// Database property names.
const (
	PropTitle        = "Title"
	PropRating       = "Rating"
	PropFilmYear     = "Film Year"
	PropWatchedDate  = "Watched Date"
	PropReview       = "Review"
	PropMovieURL     = "Movie URL"
	PropBackdrop     = "Backdrop"
	PropLetterboxdID = "Letterboxd ID"
	PropTMDBID       = "TMDB ID"
	PropRewatch      = "Rewatch"
	PropStatus       = "Status"
)

// StatusWatched is the Status option every synced film carries.
const StatusWatched = "Visto"

// MaxRichTextLength is Notion's limit for a single rich text segment.
const MaxRichTextLength = 2000

// Schema is the property configuration for PATCH /databases/{id}.
var Schema = map[string]any{
	PropTitle:        map[string]any{"title": map[string]any{}},
	PropRating:       numberSchema(),
	PropFilmYear:     numberSchema(),
	PropWatchedDate:  map[string]any{"date": map[string]any{}},
	PropReview:       map[string]any{"rich_text": map[string]any{}},
	PropMovieURL:     map[string]any{"url": map[string]any{}},
	PropBackdrop:     map[string]any{"files": map[string]any{}},
	PropLetterboxdID: map[string]any{"rich_text": map[string]any{}},
	PropTMDBID:       numberSchema(),
	PropRewatch:      map[string]any{"checkbox": map[string]any{}},
	PropStatus: map[string]any{"select": map[string]any{
		"options": []map[string]any{{"name": StatusWatched}},
	}},
}

func numberSchema() map[string]any {
	return map[string]any{"number": map[string]any{"format": "number"}}
}

// SchemaUpdatePayload returns the body for PATCH /databases/{id}.
func SchemaUpdatePayload() map[string]any {
	return map[string]any{"properties": Schema}
}

// Text is the content of a rich text segment.
type Text struct {
	Content string `json:"content"`
}

// RichText is one Notion rich text segment.
type RichText struct {
	Type string `json:"type"`
	Text Text   `json:"text"`
}

// External points at a file hosted outside Notion.
type External struct {
	URL string `json:"url"`
}

// File is an external file reference.
type File struct {
	Type     string   `json:"type"`
	Name     string   `json:"name,omitempty"`
	External External `json:"external"`
}

// Date is a Notion date value.
type Date struct {
	Start string `json:"start"`
}

// Select is a Notion select value.
type Select struct {
	Name string `json:"name"`
}

// Property is one page property value. Exactly one field is set.
type Property struct {
	Title    []RichText `json:"title,omitempty"`
	RichText []RichText `json:"rich_text,omitempty"`
	Number   *float64   `json:"number,omitempty"`
	Date     *Date      `json:"date,omitempty"`
	URL      *string    `json:"url,omitempty"`
	Files    []File     `json:"files,omitempty"`
	Checkbox *bool      `json:"checkbox,omitempty"`
	Select   *Select    `json:"select,omitempty"`
}

// Parent addresses the target database.
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// Page is a create-page payload.
type Page struct {
	Parent     Parent              `json:"parent"`
	Cover      *File               `json:"cover,omitempty"`
	Icon       *File               `json:"icon,omitempty"`
	Properties map[string]Property `json:"properties"`
}

// Properties maps a film onto database property values. Absent optional
// attributes are left out rather than cleared.
func Properties(film models.Film) map[string]Property {
	props := map[string]Property{
		PropTitle:        {Title: richText(film.Title)},
		PropLetterboxdID: {RichText: richText(film.LetterboxdID)},
		PropRewatch:      {Checkbox: boolPtr(film.Rewatch)},
		PropStatus:       {Select: &Select{Name: StatusWatched}},
	}
	if film.LetterboxdURL != "" {
		u := film.LetterboxdURL
		props[PropMovieURL] = Property{URL: &u}
	}
	if film.Year != 0 {
		props[PropFilmYear] = Property{Number: number(float64(film.Year))}
	}
	if film.Rating != nil {
		props[PropRating] = Property{Number: number(*film.Rating)}
	}
	if film.WatchedDate != nil {
		props[PropWatchedDate] = Property{Date: &Date{Start: timeutil.FormatDate(film.WatchedDate)}}
	}
	if film.Review != nil && *film.Review != "" {
		props[PropReview] = Property{RichText: richText(*film.Review)}
	}
	if film.BackdropURL != nil {
		props[PropBackdrop] = Property{Files: []File{externalFile("backdrop", *film.BackdropURL)}}
	}
	if film.TMDBID != nil {
		props[PropTMDBID] = Property{Number: number(float64(*film.TMDBID))}
	}
	return props
}

// NewPage builds the create-page payload for film in databaseID. The
// poster rides as page icon, the backdrop (or poster) as cover.
func NewPage(databaseID string, film models.Film) Page {
	page := Page{
		Parent:     Parent{DatabaseID: databaseID},
		Properties: Properties(film),
	}
	if film.PosterURL != nil {
		icon := externalFile("", *film.PosterURL)
		page.Icon = &icon
	}
	switch {
	case film.BackdropURL != nil:
		cover := externalFile("", *film.BackdropURL)
		page.Cover = &cover
	case film.PosterURL != nil:
		cover := externalFile("", *film.PosterURL)
		page.Cover = &cover
	}
	return page
}

// richText splits s into segments of at most MaxRichTextLength runes.
func richText(s string) []RichText {
	if s == "" {
		return []RichText{}
	}
	var out []RichText
	for len(s) > 0 {
		cut := len(s)
		if utf8.RuneCountInString(s) > MaxRichTextLength {
			cut = 0
			for n := 0; n < MaxRichTextLength; n++ {
				_, size := utf8.DecodeRuneInString(s[cut:])
				cut += size
			}
		}
		out = append(out, RichText{Type: "text", Text: Text{Content: s[:cut]}})
		s = s[cut:]
	}
	return out
}

func externalFile(name, url string) File {
	return File{Type: "external", Name: name, External: External{URL: url}}
}

func number(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

