package models

import (
	"errors"
	"fmt"
	"time"
)

// DeadlineStatus buckets, ordered from least to most pressing
const (
	StatusOK      = "ok"
	StatusWarning = "warning"
	StatusUrgent  = "urgent"
	StatusExpired = "expired"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// ErrInvalidDateFormat is returned when a calendar date cannot be parsed
var ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

// ParseDate parses a YYYY-MM-DD calendar date at midnight UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return t, nil
}

// DaysUntil returns the whole-day difference between expiresAt and today.
// The time-of-day component of today is discarded.
func DaysUntil(expiresAt string, today time.Time) (int, error) {
	exp, err := ParseDate(expiresAt)
	if err != nil {
		return 0, err
	}
	y, m, d := today.UTC().Date()
	ref := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(exp.Sub(ref).Hours() / 24), nil
}

// StatusForDate classifies an expiry date against today:
// expired below 0 days, urgent through day 7, warning through day 30, ok after
func StatusForDate(expiresAt string, today time.Time) (string, error) {
	days, err := DaysUntil(expiresAt, today)
	if err != nil {
		return "", err
	}
	switch {
	case days < 0:
		return StatusExpired, nil
	case days <= 7:
		return StatusUrgent, nil
	case days <= 30:
		return StatusWarning, nil
	default:
		return StatusOK, nil
	}
}

// statusColors are the calendar display colors per status
var statusColors = map[string]string{
	StatusOK:      "#22c55e",
	StatusWarning: "#eab308",
	StatusUrgent:  "#ef4444",
	StatusExpired: "#991b1b",
}

// StatusColor returns the display color for a status bucket
func StatusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return statusColors[StatusOK]
}
