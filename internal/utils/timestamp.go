package utils

import (
	"fmt"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/constants"
)

// ParseTimestamp parses a "YYYY-MM-DD HH:MM:SS" value in UTC.
// An empty string yields nil.
func ParseTimestamp(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if len(value) != len(constants.TimestampLayout) {
		return nil, fmt.Errorf("timestamp must be %d characters, got %d", len(constants.TimestampLayout), len(value))
	}

	t, err := time.ParseInLocation(constants.TimestampLayout, value, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return &t, nil
}

// FormatTimestamp is the inverse of ParseTimestamp.
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(constants.TimestampLayout)
}
