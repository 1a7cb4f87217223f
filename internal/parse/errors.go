// ABOUTME: Document-level parse failure shared by the feed and diary parsers
// ABOUTME: Item-level problems never produce a ParseError; they are skipped

package parse

import (
	"errors"
	"fmt"
)

// ErrParse matches any *ParseError via errors.Is.
var ErrParse = errors.New("parse failed")

// ParseError reports that a whole document (feed, diary page) could not be parsed.
type ParseError struct {
	Source string // "rss" or "diary"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s document: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrParse) match.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
