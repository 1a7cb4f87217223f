// ABOUTME: Minimal TMDB v3 client for movie lookup by ID and movie search by title/year
// ABOUTME: The API key is passed on every call; 429 surfaces as fetch.RateLimitError

package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/harper/letterboxd2notion/internal/fetch"
	"github.com/harper/letterboxd2notion/internal/logger"
)

// DefaultBaseURL is the TMDB v3 API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// Movie is the subset of a TMDB movie payload used for enrichment.
type Movie struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	ReleaseDate  string `json:"release_date"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
}

// SearchResponse models one page of /search/movie.
type SearchResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Client talks to the TMDB API. It carries no per-call state and is safe
// for concurrent use.
type Client struct {
	baseURL    string
	imageBase  string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithImageBase overrides the artwork URL root.
func WithImageBase(base string) Option {
	return func(c *Client) {
		if base = strings.TrimSpace(base); base != "" {
			c.imageBase = strings.TrimRight(base, "/")
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a TMDB client. An empty baseURL means DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		imageBase:  DefaultImageBase,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.Get(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MovieDetails fetches /movie/{id}. A 404 returns ErrNotFound.
func (c *Client) MovieDetails(ctx context.Context, id int, apiKey string) (*Movie, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid tmdb id %d", id)
	}
	params := url.Values{}
	params.Set("api_key", apiKey)

	var movie Movie
	if err := c.get(ctx, "movie", "/movie/"+strconv.Itoa(id), params, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// SearchMovie queries /search/movie. The year filter is sent only when
// year is non-zero.
func (c *Client) SearchMovie(ctx context.Context, title string, year int, apiKey string) (*SearchResponse, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("api_key", apiKey)
	params.Set("query", title)
	if year != 0 {
		params.Set("year", strconv.Itoa(year))
	}

	var payload SearchResponse
	if err := c.get(ctx, "search", "/search/movie", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		// The query string carries the API key.
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = c.baseURL + path
		}
		return fmt.Errorf("execute tmdb %s request (latency=%v): %w", op, latency, err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"op":      op,
		"status":  resp.StatusCode,
		"latency": latency,
	}).Debug("tmdb request")

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound && op == "movie":
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return fetch.NewRateLimitError(c.baseURL+path, resp.Header)
	default:
		return &APIError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb %s response: %w", op, err)
	}
	return nil
}
