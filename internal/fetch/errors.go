// ABOUTME: Error conditions surfaced by HTTP fetches against external sources
// ABOUTME: RateLimitError carries the Retry-After hint; StatusError carries the unexpected status code

package fetch

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultRetryAfter is used when a 429 response has no usable Retry-After header.
const DefaultRetryAfter = 60

// ErrRateLimited matches any *RateLimitError via errors.Is.
var ErrRateLimited = errors.New("rate limited")

// RateLimitError reports an HTTP 429. The core never retries; callers decide.
type RateLimitError struct {
	URL        string
	RetryAfter int // seconds
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited by %s (retry after %ds)", host(e.URL), e.RetryAfter)
}

// Is lets errors.Is(err, ErrRateLimited) match.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// Duration returns the retry hint as a time.Duration.
func (e *RateLimitError) Duration() time.Duration {
	return time.Duration(e.RetryAfter) * time.Second
}

// NewRateLimitError builds a RateLimitError from response headers. Only the
// delta-seconds form of Retry-After is understood; anything else falls back
// to DefaultRetryAfter.
func NewRateLimitError(rawURL string, h http.Header) *RateLimitError {
	retry := DefaultRetryAfter
	if v := strings.TrimSpace(h.Get("Retry-After")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			retry = n
		}
	}
	return &RateLimitError{URL: rawURL, RetryAfter: retry}
}

// StatusError reports a non-2xx, non-429 response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

func host(u string) string {
	parsed, err := url.Parse(u)
	if err != nil || parsed.Host == "" {
		return "server"
	}
	return parsed.Host
}
