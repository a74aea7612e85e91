package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a fixed evaluation instant keeps every case reproducible
const testNow int64 = 1717200000 // 2024-06-01 00:00 UTC

func solvedAt(daysAgo int, problemRating int) SolvedProblem {
	return SolvedProblem{
		ContestID:       100 + daysAgo,
		Index:           "A",
		Name:            "problem",
		Rating:          problemRating,
		SolvedAtSeconds: testNow - int64(daysAgo)*secondsPerDay,
	}
}

func TestTimeWeight(t *testing.T) {
	tests := []struct {
		daysAgo float64
		want    float64
	}{
		{0, 1},
		{5, 1},
		{5.5, 0.98},
		{17.5, 0.5},
		{30, 0},
		{31, 0},
		{100, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, timeWeight(tt.daysAgo), 1e-9, "daysAgo=%v", tt.daysAgo)
	}
}

func TestRatingMultiplier(t *testing.T) {
	tests := []struct {
		problem, max int
		want         float64
	}{
		{1600, 1500, 1.1},  // 100 above the ceiling
		{2500, 1500, 2},    // capped at 2x
		{3000, 1500, 2},    // still capped
		{1500, 1500, 1},    // exactly at the ceiling
		{1400, 1500, 0.66}, // 100 below
		{500, 1500, 0.3},   // floor
		{800, 0, 1.8},      // no known ceiling: everything is "above"
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ratingMultiplier(tt.problem, tt.max), 1e-9,
			"problem=%d max=%d", tt.problem, tt.max)
	}
}

func TestScoreUpToNoEvents(t *testing.T) {
	assert.Equal(t, BaseRating, ScoreUpTo(1500, nil, testNow))
	assert.Equal(t, BaseRating, ScoreUpTo(1500, []SolvedProblem{}, testNow))
}

func TestScoreUpToSkipsNonQualifyingEvents(t *testing.T) {
	events := []SolvedProblem{
		{Rating: 1600, SolvedAtSeconds: 0},                   // no timestamp
		{Rating: 0, SolvedAtSeconds: testNow},                // unrated
		{Rating: 1600, SolvedAtSeconds: testNow, Gym: true},  // practice area
		solvedAt(31, 1600),                                   // outside the window
		solvedAt(30, 1600),                                   // weight exactly zero
	}
	assert.Equal(t, BaseRating, ScoreUpTo(1500, events, testNow))
}

func TestScoreUpToWorkedExample(t *testing.T) {
	// maxRating 1500, one 1600-rated solve right now:
	// expected = 1/(1+10^1.5), multiplier = 1.1, K = 32, weight = 1
	// delta ≈ 34.1, rating rounds to 1034
	events := []SolvedProblem{solvedAt(0, 1600)}
	assert.Equal(t, 1034, ScoreUpTo(1500, events, testNow))
}

func TestScoreUpToIdempotent(t *testing.T) {
	events := []SolvedProblem{
		solvedAt(0, 1600),
		solvedAt(3, 1200),
		solvedAt(10, 1900),
		solvedAt(25, 800),
	}
	first := ScoreUpTo(1500, events, testNow)
	assert.Equal(t, first, ScoreUpTo(1500, events, testNow))
}

func TestScoreUpToOrderIndependentInput(t *testing.T) {
	// events are re-sorted by solve time internally, so input order must
	// not change the result
	events := []SolvedProblem{
		solvedAt(10, 1900),
		solvedAt(0, 1600),
		solvedAt(25, 800),
		solvedAt(3, 1200),
	}
	reversed := make([]SolvedProblem, len(events))
	for i, e := range events {
		reversed[len(events)-1-i] = e
	}
	assert.Equal(t, ScoreUpTo(1500, events, testNow), ScoreUpTo(1500, reversed, testNow))
}

func TestScoreMonotonicNonDecrease(t *testing.T) {
	events := []SolvedProblem{
		solvedAt(0, 1600),
		solvedAt(3, 1200),
		solvedAt(10, 1900),
		solvedAt(25, 800),
	}
	prev := ScoreUpTo(1500, nil, testNow)
	for i := 1; i <= len(events); i++ {
		score := ScoreUpTo(1500, events[:i], testNow)
		assert.GreaterOrEqual(t, score, prev, "prefix of %d events", i)
		prev = score
	}
}

func TestScoreUpToNegativeMaxRatingTreatedAsZero(t *testing.T) {
	events := []SolvedProblem{solvedAt(0, 1600)}
	assert.Equal(t, ScoreUpTo(0, events, testNow), ScoreUpTo(-5, events, testNow))
}

func TestRecentDaysBucketsAndDeltas(t *testing.T) {
	events := []SolvedProblem{
		solvedAt(0, 1600),
		solvedAt(1, 1400),
		{Rating: 0, SolvedAtSeconds: testNow - secondsPerDay, Name: "unrated"}, // pending, yesterday
		solvedAt(10, 1900), // before the 5-day view, still contributes to the base
	}

	points := RecentDays(1500, events, 5, testNow)
	require.Len(t, points, 5)

	// chronological, contiguous day keys ending today
	assert.Equal(t, DateKey(testNow), points[4].Date)
	for i := 1; i < len(points); i++ {
		assert.Equal(t, points[i-1].ToRating, points[i].FromRating)
		assert.Equal(t, points[i].Delta, points[i].ToRating-points[i].FromRating)
	}

	today := points[4]
	yesterday := points[3]
	require.Len(t, today.Problems, 1)
	assert.Equal(t, 1600, today.Problems[0].Rating)
	require.Len(t, yesterday.Problems, 1)
	assert.Equal(t, 1400, yesterday.Problems[0].Rating)
	assert.Equal(t, 1, yesterday.PendingCount)
	assert.Equal(t, 0, today.PendingCount)

	// the 10-day-old solve lifts the starting point above base
	assert.Greater(t, points[0].FromRating, BaseRating)

	// today's end state agrees with the live score
	assert.Equal(t, ScoreUpTo(1500, events, testNow), today.ToRating)
}

func TestRecentDaysEmptyInput(t *testing.T) {
	points := RecentDays(1500, nil, 5, testNow)
	require.Len(t, points, 5)
	for _, p := range points {
		assert.Equal(t, BaseRating, p.FromRating)
		assert.Equal(t, BaseRating, p.ToRating)
		assert.Equal(t, 0, p.Delta)
		assert.Empty(t, p.Problems)
		assert.Equal(t, 0, p.PendingCount)
	}
	assert.Nil(t, RecentDays(1500, nil, 0, testNow))
}

func TestRecentDaysStalePendingExcluded(t *testing.T) {
	// an unrated solve older than the relevance window never counts as
	// pending, even if its calendar day were in view
	events := []SolvedProblem{
		{Rating: 0, SolvedAtSeconds: testNow - 31*secondsPerDay, Name: "old unrated"},
	}
	points := RecentDays(1500, events, 40, testNow)
	for _, p := range points {
		assert.Equal(t, 0, p.PendingCount, "date=%s", p.Date)
	}
}
