package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey(t *testing.T) {
	tests := []struct {
		name    string
		seconds int64
		want    string
	}{
		{
			name:    "epoch is already past local midnight",
			seconds: 0, // 1970-01-01 06:00 local
			want:    "1970-01-01",
		},
		{
			name:    "just before local midnight",
			seconds: 86400 - 6*3600 - 1, // 23:59:59 local on Jan 1
			want:    "1970-01-01",
		},
		{
			name:    "exactly local midnight",
			seconds: 86400 - 6*3600, // 00:00:00 local on Jan 2
			want:    "1970-01-02",
		},
		{
			name:    "UTC evening rolls into next local day",
			seconds: 1717200000, // 2024-06-01 00:00 UTC -> 06:00 local
			want:    "2024-06-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateKey(tt.seconds))
		})
	}
}

func TestStartOfDayIdempotent(t *testing.T) {
	for _, seconds := range []int64{0, 1717200000, 86400 - 6*3600, 86400 - 6*3600 - 1} {
		start := StartOfDay(seconds)
		assert.Equal(t, start, StartOfDay(start), "seconds=%d", seconds)
		assert.LessOrEqual(t, start, seconds)
		assert.Less(t, seconds-start, int64(secondsPerDay))
	}
}

func TestStartOfDayFromKey(t *testing.T) {
	start, err := StartOfDayFromKey("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", DateKey(start))
	assert.Equal(t, start, StartOfDay(start))

	// one second earlier is the previous local day
	assert.Equal(t, "2024-05-31", DateKey(start-1))

	_, err = StartOfDayFromKey("not-a-date")
	assert.Error(t, err)
}

func TestStartOfDayMatchesDateKey(t *testing.T) {
	// walking a timestamp across a boundary changes both functions together
	boundary := StartOfDay(1717200000)
	assert.NotEqual(t, DateKey(boundary-1), DateKey(boundary))
	assert.Equal(t, DateKey(boundary), DateKey(boundary+secondsPerDay-1))
}
