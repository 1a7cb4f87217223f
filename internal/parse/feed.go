// ABOUTME: Thin fetch wrapper around ParseFeed for the Letterboxd RSS endpoint
// ABOUTME: Issues exactly one request per call and surfaces rate limiting unchanged

package parse

import (
	"context"
	"fmt"

	"github.com/harper/letterboxd2notion/internal/fetch"
	"github.com/harper/letterboxd2notion/internal/models"
)

// FetchItems fetches the RSS feed at rssURL and returns its raw items.
func FetchItems(ctx context.Context, f fetch.Fetcher, rssURL string) ([]Item, error) {
	result, err := f.Fetch(ctx, rssURL)
	if err != nil {
		return nil, fmt.Errorf("fetch rss feed: %w", err)
	}
	return ParseItems(result.Body)
}

// FetchFeed fetches the RSS feed at rssURL and parses it into films.
// A 429 surfaces as *fetch.RateLimitError; the call never retries.
func FetchFeed(ctx context.Context, f fetch.Fetcher, rssURL string) ([]models.Film, error) {
	result, err := f.Fetch(ctx, rssURL)
	if err != nil {
		return nil, fmt.Errorf("fetch rss feed: %w", err)
	}
	return ParseFeed(result.Body)
}

// FindItem returns the item whose guid equals guid.
func FindItem(items []Item, guid string) (Item, bool) {
	for _, item := range items {
		if id, ok := item.GUID(); ok && id == guid {
			return item, true
		}
	}
	return Item{}, false
}
