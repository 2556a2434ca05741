package utils

import (
	"time"
)

// TimeNowUTC returns the current wall clock in UTC, truncated to microseconds
// so values round-trip through PostgreSQL timestamps unchanged.
func TimeNowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
