// Package identity generates record identifiers and canonical timestamps.
package identity

import (
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// NewID returns a random UUID. IDs must stay unique against records
// restored from earlier processes, so a counter is not enough.
func NewID() string {
	return uuid.New().String()
}

// Now returns the current time as an ISO-8601 timestamp.
func Now() string {
	return Format(time.Now())
}

// Format renders t as an ISO-8601 timestamp in UTC.
func Format(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Parse reads a timestamp produced by Format. Plain dates and RFC 3339
// values are accepted too, since invoice forms carry user-entered dates.
func Parse(s string) (time.Time, error) {
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	_, err := time.Parse(TimestampLayout, s)
	return time.Time{}, err
}
