// Package time contains time related helpers
package time

import "time"

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// RFC3339 renders t in UTC with millisecond precision, empty for the zero time
func RFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// Since returns whole milliseconds elapsed since start according to now
func Since(start time.Time, now func() time.Time) int64 {
	if now == nil {
		now = time.Now
	}
	return now().Sub(start).Milliseconds()
}
