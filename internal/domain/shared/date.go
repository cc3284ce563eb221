package shared

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date form used on the wire
const DateLayout = "2006-01-02"

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, DateLayout}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
// Anything else is a validation error.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, NewValidationError("Date must be a valid Date object")
}
