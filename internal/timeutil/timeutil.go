// ABOUTME: Calendar-date helpers shared by the feed and diary parsers
// ABOUTME: Dates are midnight UTC; invalid calendar values are rejected instead of normalized

package timeutil

import (
	"strconv"
	"time"
)

// DateLayout is the ISO calendar-date layout used by Letterboxd and Notion.
const DateLayout = "2006-01-02"

// Date returns midnight UTC of the given calendar day. It reports false when
// the values do not name a real day (time.Date would silently roll 2024-02-30
// over into March).
func Date(year, month, day int) (time.Time, bool) {
	if year <= 0 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// DateFromStrings parses three numeric components into a calendar date.
func DateFromStrings(year, month, day string) (time.Time, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, false
	}
	return Date(y, m, d)
}

// ParseISODate parses a YYYY-MM-DD string.
func ParseISODate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t as YYYY-MM-DD, or "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
