// ABOUTME: HTTP fetcher issuing exactly one GET per call for Letterboxd documents
// ABOUTME: Maps 429 to RateLimitError and other non-2xx statuses to StatusError with a response size cap

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

const (
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (compatible; letterboxd2notion/1.0)"
)

// Result contains the response from an HTTP fetch operation.
type Result struct {
	URL        string // final URL after redirects
	StatusCode int
	Body       []byte
}

// Fetcher is the single-request contract the parsers' wrappers depend on.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Result, error)
}

// Client fetches documents over HTTP. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

var _ Fetcher = (*Client)(nil)

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

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a Client. The default HTTP client keeps a cookie jar so
// Letterboxd session cookies survive across diary pages.
func New(opts ...Option) *Client {
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
		},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves a URL, following redirects.
// Returns *RateLimitError for 429 and *StatusError for any other non-2xx status.
func (c *Client) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewRateLimitError(urlStr, resp.Header)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: urlStr, StatusCode: resp.StatusCode}
	}

	// Read response body with DoS protection (10MB limit)
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response too large (exceeds %d bytes)", MaxResponseSize)
	}

	finalURL := urlStr
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Result{
		URL:        finalURL,
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
