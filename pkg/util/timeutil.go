package util

import "time"

// NowUTC returns the current UTC time truncated to microseconds, the
// resolution Postgres keeps for timestamptz. Memory and SQL repositories
// therefore order rows identically.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
