// Package dateutil provides day-key parsing and validation utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
)

// DayKey formats t as the canonical YYYY-MM-DD key used throughout the
// schedule.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDay parses a day key in YYYY-MM-DD format.
// If the string is empty, returns today's key.
func ParseDay(s string) (string, error) {
	if s == "" {
		return DayKey(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", ErrInvalidDateFormat
	}
	return DayKey(t), nil
}

// ParseRelativeDay parses a day string that can be:
//   - Empty string or "today": today's key
//   - "tomorrow", "yesterday"
//   - An absolute key: "2025-01-15"
//
// Inputs are case-insensitive.
func ParseRelativeDay(s string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return DayKey(now), nil
	case "tomorrow":
		return DayKey(now.AddDate(0, 0, 1)), nil
	case "yesterday":
		return DayKey(now.AddDate(0, 0, -1)), nil
	}
	return ParseDay(s)
}

// NextDay returns the day key one calendar day after key.
func NextDay(key string) (string, error) {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return "", ErrInvalidDateFormat
	}
	return DayKey(t.AddDate(0, 0, 1)), nil
}

// PrevDay returns the day key one calendar day before key.
func PrevDay(key string) (string, error) {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return "", ErrInvalidDateFormat
	}
	return DayKey(t.AddDate(0, 0, -1)), nil
}
