// ABOUTME: Paginated diary scraper issuing one request per page with a fixed pacing delay
// ABOUTME: Stops at the first empty page or when the page parser reports no further pages

package diary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/harper/letterboxd2notion/internal/fetch"
	"github.com/harper/letterboxd2notion/internal/logger"
	"github.com/harper/letterboxd2notion/internal/models"
)

// DefaultPageDelay is the minimum spacing between two diary page requests.
const DefaultPageDelay = 2 * time.Second

// Scraper walks a member's diary. It holds no mutable state, so a single
// Scraper may serve concurrent calls for different diaries or pages.
type Scraper struct {
	fetcher   fetch.Fetcher
	diaryURL  string
	baseURL   string
	pageDelay time.Duration
	log       logrus.FieldLogger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithPageDelay overrides the pacing delay between page requests.
func WithPageDelay(d time.Duration) Option {
	return func(s *Scraper) {
		if d >= 0 {
			s.pageDelay = d
		}
	}
}

// WithBaseURL overrides the site root used for film permalinks.
func WithBaseURL(u string) Option {
	return func(s *Scraper) {
		if u = strings.TrimSpace(u); u != "" {
			s.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithLogger sets the logger used for per-page progress.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Scraper) {
		if l != nil {
			s.log = l
		}
	}
}

// NewScraper creates a Scraper for the diary at diaryURL, e.g.
// https://letterboxd.com/testuser/diary/.
func NewScraper(f fetch.Fetcher, diaryURL string, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher:   f,
		diaryURL:  strings.TrimRight(strings.TrimSpace(diaryURL), "/"),
		baseURL:   DefaultBaseURL,
		pageDelay: DefaultPageDelay,
		log:       logger.Get(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PageURL returns the URL of the given diary page.
func (s *Scraper) PageURL(page int) string {
	return fmt.Sprintf("%s/page/%d/", s.diaryURL, page)
}

// FetchPage fetches and parses a single diary page. A 429 surfaces as
// *fetch.RateLimitError.
func (s *Scraper) FetchPage(ctx context.Context, page int) (Page, error) {
	if page < 1 {
		return Page{}, fmt.Errorf("page must be positive, got %d", page)
	}

	result, err := s.fetcher.Fetch(ctx, s.PageURL(page))
	if err != nil {
		return Page{}, fmt.Errorf("fetch diary page %d: %w", page, err)
	}
	return parsePage(result.Body, page, s.baseURL)
}

// ParseAllPages fetches pages 1, 2, 3, ... until a page yields no films or
// reports no further pages. onPage, when non-nil, is called with the page
// number before that page is requested. Every request after the first waits
// out the pacing delay; cancelling ctx ends the wait early.
//
// On failure the films collected from earlier pages are returned along with
// the error.
func (s *Scraper) ParseAllPages(ctx context.Context, onPage func(page int)) ([]models.Film, error) {
	var all []models.Film

	for page := 1; ; page++ {
		if page > 1 {
			if err := sleep(ctx, s.pageDelay); err != nil {
				return all, err
			}
		}

		if onPage != nil {
			onPage(page)
		}

		result, err := s.FetchPage(ctx, page)
		if err != nil {
			return all, err
		}

		s.log.WithFields(logrus.Fields{
			"page":  page,
			"films": len(result.Films),
		}).Debug("parsed diary page")

		if len(result.Films) == 0 {
			break
		}
		all = append(all, result.Films...)

		if !result.HasMore {
			break
		}
	}

	return all, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
