package common

import "time"

// NowUTC returns the current time in UTC truncated to microseconds, the
// precision of a PostgreSQL TIMESTAMP. Save states stamped with it compare
// equal after a database round trip.
func NowUTC() time.Time {
	return TruncateToMicroUTC(time.Now())
}

// TruncateToMicroUTC converts t to UTC and drops sub-microsecond precision.
//
// Example:
//   - Input: 2026-10-16 14:23:45.123456789 +02:00
//   - Output: 2026-10-16 12:23:45.123456 UTC
func TruncateToMicroUTC(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
