package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRanklistNoData(t *testing.T) {
	cases := []*RawContest{
		nil,
		{},
		{Participants: map[int]RawParticipant{1: {Username: "a"}}}, // submissions missing
		{Submissions: []RawSubmission{}},                           // participants missing
	}
	for _, raw := range cases {
		_, err := BuildRanklist(raw)
		assert.ErrorIs(t, err, ErrNoRankData)
	}
}

func TestBuildRanklistEmptyContestIsNotAnError(t *testing.T) {
	ranked, err := BuildRanklist(&RawContest{
		Participants: map[int]RawParticipant{},
		Submissions:  []RawSubmission{},
	})
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestBuildRanklistScoring(t *testing.T) {
	raw := &RawContest{
		LengthSeconds: 18000,
		Participants: map[int]RawParticipant{
			1: {Username: "alpha", DisplayName: "Team_Alpha"},
			2: {Username: "beta", DisplayName: "Team Beta"},
			3: {Username: "ghost"}, // never submits
		},
		Submissions: []RawSubmission{
			{TeamID: 1, ProblemID: 1, Accepted: false, AtSeconds: 600},
			{TeamID: 1, ProblemID: 1, Accepted: true, AtSeconds: 1200},
			{TeamID: 1, ProblemID: 1, Accepted: true, AtSeconds: 1300}, // after first accept, ignored
			{TeamID: 2, ProblemID: 1, Accepted: true, AtSeconds: 900},
			{TeamID: 2, ProblemID: 2, Accepted: true, AtSeconds: 3000},
			{TeamID: 1, ProblemID: 2, Accepted: true, AtSeconds: 2000},
			{TeamID: 2, ProblemID: 3, Accepted: false, AtSeconds: 4000},
			{TeamID: 1, ProblemID: 3, Accepted: true, AtSeconds: 30000}, // past duration, dropped
			{TeamID: 99, ProblemID: 1, Accepted: true, AtSeconds: 100},  // unknown team, ignored
		},
	}

	ranked, err := BuildRanklist(raw)
	require.NoError(t, err)
	require.Len(t, ranked, 2, "non-participants are excluded")

	// team 1: solved 2, penalty 1200 + 20min wrong + 2000 = 4400
	// team 2: solved 2, penalty 900 + 3000 = 3900 -> better
	assert.Equal(t, 2, ranked[0].TeamID)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[0].Solved)
	assert.Equal(t, int64(3900), ranked[0].Penalty)
	assert.Equal(t, 3, ranked[0].Submissions)

	assert.Equal(t, 1, ranked[1].TeamID)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, 2, ranked[1].Solved)
	assert.Equal(t, int64(4400), ranked[1].Penalty)
	// the post-accept duplicate still counts as a submission; the
	// past-duration one does not
	assert.Equal(t, 4, ranked[1].Submissions)

	assert.Contains(t, ranked[1].Aliases, "Team_Alpha")
	assert.Contains(t, ranked[1].Aliases, "Team Alpha")
	assert.Contains(t, ranked[1].Aliases, "alpha")
}

func TestBuildRanklistSharedRanksWithGaps(t *testing.T) {
	raw := &RawContest{
		Participants: map[int]RawParticipant{
			1: {Username: "a"}, 2: {Username: "b"}, 3: {Username: "c"}, 4: {Username: "d"},
		},
		Submissions: []RawSubmission{
			{TeamID: 1, ProblemID: 1, Accepted: true, AtSeconds: 100},
			{TeamID: 2, ProblemID: 1, Accepted: true, AtSeconds: 100},
			{TeamID: 3, ProblemID: 1, Accepted: true, AtSeconds: 500},
			{TeamID: 4, ProblemID: 1, Accepted: false, AtSeconds: 50},
		},
	}

	ranked, err := BuildRanklist(raw)
	require.NoError(t, err)
	require.Len(t, ranked, 4)

	// identical (solved, penalty) share rank 1; next distinct pair jumps to 3
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 1, ranked[1].Rank)
	assert.Equal(t, 3, ranked[2].Rank)
	assert.Equal(t, 4, ranked[3].Rank)
	assert.Equal(t, 0, ranked[3].Solved)
}

func TestBuildRanklistDurationFromTimestamps(t *testing.T) {
	raw := &RawContest{
		BeginSeconds: 1000,
		EndSeconds:   1000 + 3600,
		Participants: map[int]RawParticipant{1: {Username: "a"}},
		Submissions: []RawSubmission{
			{TeamID: 1, ProblemID: 1, Accepted: true, AtSeconds: 3500},
			{TeamID: 1, ProblemID: 2, Accepted: true, AtSeconds: 3700}, // past derived duration
		},
	}
	ranked, err := BuildRanklist(raw)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, 1, ranked[0].Solved)
}

func TestBuildRanklistUnboundedWhenNoDuration(t *testing.T) {
	raw := &RawContest{
		Participants: map[int]RawParticipant{1: {Username: "a"}},
		Submissions: []RawSubmission{
			{TeamID: 1, ProblemID: 1, Accepted: true, AtSeconds: 999999},
		},
	}
	ranked, err := BuildRanklist(raw)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, 1, ranked[0].Solved)
}

func TestBuildRanklistNamePlaceholders(t *testing.T) {
	raw := &RawContest{
		Participants: map[int]RawParticipant{7: {}},
		Submissions: []RawSubmission{
			{TeamID: 7, ProblemID: 1, Accepted: true, AtSeconds: 10},
		},
	}
	ranked, err := BuildRanklist(raw)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Team 7", ranked[0].Name)
}
