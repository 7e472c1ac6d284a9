package helpers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// ParseDate accepts the ISO 8601 date strings the dashboards submit.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// ParseClock validates an HH:MM time-of-day string and returns it
// normalized, defaulting to midnight when empty.
func ParseClock(s string) (string, error) {
	if s == "" {
		return "00:00", nil
	}
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return "", fmt.Errorf("invalid time of day %q", s)
	}
	return parsed.Format("15:04"), nil
}

func ParseUUIDParam(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
