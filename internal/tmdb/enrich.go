// ABOUTME: Enrichment of Film records with TMDB artwork and catalog ID
// ABOUTME: Direct lookup when the film carries a TMDB ID, otherwise first search match wins

package tmdb

import (
	"context"
	"errors"

	"github.com/harper/letterboxd2notion/internal/models"
)

// Artwork URLs are <image base>/<ImageSize><path>.
const (
	DefaultImageBase = "https://image.tmdb.org/t/p"
	ImageSize        = "w500"
)

// Enrich returns a copy of film with poster/backdrop URLs and, when absent,
// the TMDB ID resolved. A 404 on lookup or an empty search result returns
// film unchanged with a nil error.
func (c *Client) Enrich(ctx context.Context, film models.Film, apiKey string) (models.Film, error) {
	movie, err := c.resolve(ctx, film, apiKey)
	if err != nil {
		return film, err
	}
	if movie == nil {
		return film, nil
	}
	return film.WithEnrichment(models.Enrichment{
		TMDBID:      movie.ID,
		PosterURL:   c.ImageURL(movie.PosterPath),
		BackdropURL: c.ImageURL(movie.BackdropPath),
	}), nil
}

func (c *Client) resolve(ctx context.Context, film models.Film, apiKey string) (*Movie, error) {
	if film.HasTMDBID() {
		movie, err := c.MovieDetails(ctx, *film.TMDBID, apiKey)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return movie, err
	}

	resp, err := c.SearchMovie(ctx, film.Title, film.Year, apiKey)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	first := resp.Results[0]
	return &first, nil
}

// ImageURL builds an artwork URL for a TMDB relative path; empty paths
// yield nil.
func (c *Client) ImageURL(path string) *string {
	if path == "" {
		return nil
	}
	u := c.imageBase + "/" + ImageSize + path
	return &u
}
