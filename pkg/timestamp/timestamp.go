// Package timestamp provides standardized Unix timestamp handling utilities.
//
// Two integer resolutions are used across the pipeline and both live here so
// no call site converts by hand: event envelopes carry milliseconds since the
// Unix epoch, log records carry microseconds. All values are UTC.
//
// Zero Value Semantics:
//   - A timestamp value of 0 means "not set" or "unparseable"
//   - Functions handle zero values gracefully, returning appropriate defaults
package timestamp

import (
	"fmt"
	"time"
)

// NowMillis returns the current time as Unix milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// NowMicros returns the current time as Unix microseconds.
func NowMicros() int64 {
	return time.Now().UnixMicro()
}

// ToUnixMs converts a time.Time to Unix milliseconds.
func ToUnixMs(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// ToUnixMicro converts a time.Time to Unix microseconds.
func ToUnixMicro(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

// FromUnixMs converts Unix milliseconds to time.Time.
// Returns zero time if timestamp is 0.
func FromUnixMs(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// FromUnixMicro converts Unix microseconds to time.Time.
// Returns zero time if timestamp is 0.
func FromUnixMicro(us int64) time.Time {
	if us == 0 {
		return time.Time{}
	}
	return time.UnixMicro(us)
}

// Format converts Unix milliseconds to an RFC3339 string for display.
// Returns empty string if timestamp is 0.
func Format(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

// IsZero checks if a timestamp is unset (zero).
func IsZero(v int64) bool {
	return v == 0
}

// Validate checks if a millisecond timestamp is valid (non-negative and
// reasonable). Returns an error if the timestamp is negative or unreasonably
// far in the future (past year 3000).
func Validate(ms int64) error {
	if ms < 0 {
		return fmt.Errorf("timestamp cannot be negative: %d", ms)
	}
	if ms > 32503680000000 {
		return fmt.Errorf("timestamp too far in future: %d", ms)
	}
	return nil
}
