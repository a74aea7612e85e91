package rating

import (
	"fmt"
	"time"
)

const (
	secondsPerDay = 86400

	// The club's standings roll over at local midnight (UTC+6). The offset
	// is fixed here instead of reading the host timezone so results are
	// reproducible anywhere.
	localOffsetSeconds = 6 * 3600
)

// DateKey converts an epoch-seconds timestamp to the local calendar-day key
// in "YYYY-MM-DD" form.
func DateKey(seconds int64) string {
	local := seconds + localOffsetSeconds
	days := floorDiv(local, secondsPerDay)
	t := time.Unix(days*secondsPerDay, 0).UTC()
	return t.Format("2006-01-02")
}

// StartOfDay returns the epoch-seconds instant of local midnight for the day
// containing the given timestamp. Idempotent: StartOfDay(StartOfDay(s)) ==
// StartOfDay(s).
func StartOfDay(seconds int64) int64 {
	local := seconds + localOffsetSeconds
	return floorDiv(local, secondsPerDay)*secondsPerDay - localOffsetSeconds
}

// StartOfDayFromKey returns the epoch-seconds instant of local midnight for a
// "YYYY-MM-DD" day key.
func StartOfDayFromKey(key string) (int64, error) {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return 0, fmt.Errorf("rating.StartOfDayFromKey: %w", err)
	}
	return t.Unix() - localOffsetSeconds, nil
}

// floorDiv divides rounding toward negative infinity, so pre-1970 timestamps
// still land on the right day boundary.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
