// ABOUTME: Error conditions surfaced by the TMDB client
// ABOUTME: APIError carries the unexpected status code; ErrNotFound marks a 404 on ID lookup

package tmdb

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by MovieDetails when TMDB answers 404.
var ErrNotFound = errors.New("tmdb movie not found")

// APIError reports an unexpected TMDB status code.
type APIError struct {
	Op         string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tmdb %s returned %d", e.Op, e.StatusCode)
}
