package service

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD request date into UTC midnight. Lifecycle
// comparisons (lease expiry, move-while-leased checks) all happen on
// normalized dates so time-of-day never affects a transition decision.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, ErrValidation)
	}
	return t.UTC(), nil
}

// parseOptionalDate parses a nullable request date.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// normalizeDate truncates t to UTC midnight.
func normalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// formatDate renders a date the way requests carry them.
func formatDate(t time.Time) string { return t.UTC().Format(dateLayout) }

// formatOptionalDate renders a nullable date.
func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

// formatTimestamp renders a full timestamp for response payloads.
func formatTimestamp(t time.Time) string { return t.UTC().Format("2006-01-02T15:04:05Z") }
