package utils

import (
	"regexp"
	"time"
)

// ParseTimestamp parses a client-supplied timestamp. RFC 3339 is preferred;
// the bare "2006-01-02T15:04:05" form (no zone) is accepted as UTC for
// compatibility with older clients.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidClock reports whether s is a wall-clock time in "HH:MM" form.
func IsValidClock(s string) bool {
	return clockRegex.MatchString(s)
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
