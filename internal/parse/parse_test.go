// ABOUTME: Test suite for Letterboxd RSS feed parsing
// ABOUTME: Uses inline RSS fixtures with letterboxd: and tmdb: namespaced fields

package parse

import (
	"errors"
	"testing"
)

const feedHeader = `<?xml version="1.0" encoding="utf-8"?>
<rss version="2.0" xmlns:letterboxd="https://letterboxd.com" xmlns:tmdb="https://themoviedb.org" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Letterboxd - Test User</title>
    <link>https://letterboxd.com/testuser/</link>
    <description>Letterboxd - Test User</description>
`

const feedFooter = `  </channel>
</rss>`

const arrivalItem = `    <item>
      <title>Arrival, 2016 - ★★★★½</title>
      <link>https://letterboxd.com/testuser/film/arrival/</link>
      <guid isPermaLink="false">letterboxd-review-42</guid>
      <pubDate>Sat, 9 Mar 2024 20:11:05 +1300</pubDate>
      <letterboxd:watchedDate>2024-03-09</letterboxd:watchedDate>
      <letterboxd:rewatch>No</letterboxd:rewatch>
      <letterboxd:filmTitle>Arrival</letterboxd:filmTitle>
      <letterboxd:filmYear>2016</letterboxd:filmYear>
      <letterboxd:memberRating>4.5</letterboxd:memberRating>
      <tmdb:movieId>329865</tmdb:movieId>
      <description><![CDATA[<p><img src="https://a.ltrbxd.com/resized/film-poster/arrival.jpg"/></p> <p>A quiet masterpiece.</p>]]></description>
      <dc:creator>Test User</dc:creator>
    </item>
`

func TestParseFeed_EndToEnd(t *testing.T) {
	films, err := ParseFeed([]byte(feedHeader + arrivalItem + feedFooter))
	if err != nil {
		t.Fatalf("ParseFeed() error = %v", err)
	}
	if len(films) != 1 {
		t.Fatalf("len(films) = %d, want 1", len(films))
	}

	f := films[0]
	if f.LetterboxdID != "letterboxd-review-42" {
		t.Errorf("LetterboxdID = %q, want %q", f.LetterboxdID, "letterboxd-review-42")
	}
	if f.Title != "Arrival" {
		t.Errorf("Title = %q, want %q", f.Title, "Arrival")
	}
	if f.Year != 2016 {
		t.Errorf("Year = %d, want 2016", f.Year)
	}
	if f.LetterboxdURL != "https://letterboxd.com/testuser/film/arrival/" {
		t.Errorf("LetterboxdURL = %q", f.LetterboxdURL)
	}
	if f.Rating == nil || *f.Rating != 4.5 {
		t.Errorf("Rating = %v, want 4.5", f.Rating)
	}
	if f.Rewatch {
		t.Error("Rewatch = true, want false")
	}
	if f.TMDBID == nil || *f.TMDBID != 329865 {
		t.Errorf("TMDBID = %v, want 329865", f.TMDBID)
	}
	if f.WatchedDate == nil || f.WatchedDate.Format("2006-01-02") != "2024-03-09" {
		t.Errorf("WatchedDate = %v, want 2024-03-09", f.WatchedDate)
	}
	if f.Review == nil || *f.Review != "A quiet masterpiece." {
		t.Errorf("Review = %v, want %q", f.Review, "A quiet masterpiece.")
	}
	if f.PosterURL != nil || f.BackdropURL != nil {
		t.Error("artwork must not be populated by the feed parser")
	}
}

func TestParseFeed_SkipsIncompleteItems(t *testing.T) {
	items := `    <item>
      <title>A list</title>
      <link>https://letterboxd.com/testuser/list/favourites/</link>
      <guid isPermaLink="false">letterboxd-list-7</guid>
      <description><![CDATA[<p>My favourites</p>]]></description>
    </item>
    <item>
      <title>No guid</title>
      <letterboxd:filmTitle>Heat</letterboxd:filmTitle>
      <letterboxd:filmYear>1995</letterboxd:filmYear>
    </item>
    <item>
      <guid isPermaLink="false">letterboxd-review-1</guid>
      <letterboxd:filmTitle>No Year</letterboxd:filmTitle>
    </item>
    <item>
      <guid isPermaLink="false">letterboxd-review-2</guid>
      <letterboxd:filmTitle>Bad Year</letterboxd:filmTitle>
      <letterboxd:filmYear>soon</letterboxd:filmYear>
    </item>
` + arrivalItem

	films, err := ParseFeed([]byte(feedHeader + items + feedFooter))
	if err != nil {
		t.Fatalf("ParseFeed() error = %v", err)
	}
	if len(films) != 1 {
		t.Fatalf("len(films) = %d, want 1 (only the complete item)", len(films))
	}
	if films[0].LetterboxdID != "letterboxd-review-42" {
		t.Errorf("LetterboxdID = %q, want letterboxd-review-42", films[0].LetterboxdID)
	}
}

func TestParseFeed_OptionalFieldsIndependent(t *testing.T) {
	item := `    <item>
      <link>https://letterboxd.com/testuser/film/dune-part-two/</link>
      <guid isPermaLink="false">letterboxd-review-99</guid>
      <letterboxd:watchedDate>not-a-date</letterboxd:watchedDate>
      <letterboxd:rewatch>Yes</letterboxd:rewatch>
      <letterboxd:filmTitle>Dune: Part Two</letterboxd:filmTitle>
      <letterboxd:filmYear>2024</letterboxd:filmYear>
      <letterboxd:memberRating>great</letterboxd:memberRating>
      <tmdb:movieId></tmdb:movieId>
    </item>
`
	films, err := ParseFeed([]byte(feedHeader + item + feedFooter))
	if err != nil {
		t.Fatalf("ParseFeed() error = %v", err)
	}
	if len(films) != 1 {
		t.Fatalf("len(films) = %d, want 1", len(films))
	}

	f := films[0]
	if !f.Rewatch {
		t.Error("Rewatch = false, want true")
	}
	if f.Rating != nil {
		t.Errorf("Rating = %v, want nil for malformed rating", *f.Rating)
	}
	if f.WatchedDate != nil {
		t.Errorf("WatchedDate = %v, want nil for malformed date", *f.WatchedDate)
	}
	if f.TMDBID != nil {
		t.Errorf("TMDBID = %v, want nil for empty id", *f.TMDBID)
	}
	if f.Review != nil {
		t.Errorf("Review = %q, want nil without description", *f.Review)
	}
}

func TestParseItems_ExposesDescription(t *testing.T) {
	items, err := ParseItems([]byte(feedHeader + arrivalItem + feedFooter))
	if err != nil {
		t.Fatalf("ParseItems() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	desc, ok := items[0].Description()
	if !ok || desc == "" {
		t.Fatal("expected raw description")
	}
	if _, ok := items[0].FilmTitle(); !ok {
		t.Error("expected film title extension")
	}
	var empty Item
	if _, ok := empty.FilmTitle(); ok {
		t.Error("zero Item must report absent fields")
	}
}

func TestParseFeed_InvalidDocument(t *testing.T) {
	_, err := ParseFeed([]byte("this is not a feed"))
	if err == nil {
		t.Fatal("expected error for invalid document")
	}
	if !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Source != "rss" {
		t.Errorf("expected *ParseError with source rss, got %v", err)
	}
}

func TestParseFeed_EmptyChannel(t *testing.T) {
	films, err := ParseFeed([]byte(feedHeader + feedFooter))
	if err != nil {
		t.Fatalf("ParseFeed() error = %v", err)
	}
	if len(films) != 0 {
		t.Errorf("len(films) = %d, want 0", len(films))
	}
}
