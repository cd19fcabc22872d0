// Package dates provides best-effort parsing of the date strings found
// in the wild on web pages and feeds. Unparseable input yields no date
// rather than an error.
package dates

import (
	"strings"
	"time"
)

// layouts are tried in order. The list covers RFC feed dates, ISO
// variants and the loose human formats seen in meta tags.
var layouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// dayMonthLayouts lack a year; the current year is inferred.
var dayMonthLayouts = []string{
	"Jan 2",
	"January 2",
	"2 Jan",
	"2 January",
}

// Parse converts a date string to a UTC instant. ok is false when no
// known layout matches.
func Parse(value string) (t time.Time, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}

	for _, layout := range dayMonthLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			now := time.Now().UTC()
			return time.Date(now.Year(), parsed.Month(), parsed.Day(),
				0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// ParseClamped parses value and clamps results later than now back to
// now. Feed and page dates in the future are publisher clock errors.
func ParseClamped(value string, now time.Time) (time.Time, bool) {
	parsed, ok := Parse(value)
	if !ok {
		return time.Time{}, false
	}

	return Clamp(parsed, now), true
}

// Clamp returns t, or now when t is later than now.
func Clamp(t, now time.Time) time.Time {
	if t.After(now) {
		return now.UTC()
	}

	return t.UTC()
}
