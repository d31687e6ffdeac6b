package util

import "time"

// TimePointer converts a time.Time to a pointer to a time.Time.
func TimePointer(t time.Time) *time.Time {
	return &t
}

// UTCMillis truncates t to millisecond precision in UTC, the resolution
// bar timestamps are stored and published with.
func UTCMillis(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
