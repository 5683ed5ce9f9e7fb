// Package biztime centralizes clock access. All storage and transport use UTC
// with millisecond precision, matching the persisted integer timestamps.
package biztime

import "time"

// NowUTC returns the current time in UTC truncated to milliseconds.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// FromMillis converts a persisted Unix millisecond timestamp to UTC.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ToMillis converts t to Unix milliseconds for persistence.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// NotBefore returns now, or prev when the clock reads earlier than prev.
// Timestamps that must never move backwards go through here.
func NotBefore(prev, now time.Time) time.Time {
	if now.Before(prev) {
		return prev
	}
	return now
}
