package judge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"club_tracker/internal/common"
	"club_tracker/internal/domain/rating"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVjudgeServer(t *testing.T, body string, status int) *VjudgeClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contest/rank/single/42", r.URL.Path)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewVjudgeClient(srv.URL, 5*time.Second, nil, time.Minute)
}

func TestFetchContestRank(t *testing.T) {
	client := newVjudgeServer(t, `{
		"title": "Weekly Practice",
		"length": 18000,
		"begin": 1717200000,
		"participants": {"7": ["alice_w", "Alice W"], "9": ["bob"]},
		"submissions": [[7, 3, 1, 600], [9, 3, 0, 300], [9, 3, 1, 900]]
	}`, http.StatusOK)

	raw, err := client.FetchContestRank(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, "Weekly Practice", raw.Title)
	assert.Equal(t, int64(18000), raw.LengthSeconds)
	assert.Equal(t, int64(1717200000), raw.BeginSeconds)

	require.Len(t, raw.Participants, 2)
	assert.Equal(t, rating.RawParticipant{Username: "alice_w", DisplayName: "Alice W"}, raw.Participants[7])
	assert.Equal(t, rating.RawParticipant{Username: "bob"}, raw.Participants[9])

	require.Len(t, raw.Submissions, 3)
	assert.Equal(t, rating.RawSubmission{TeamID: 7, ProblemID: 3, Accepted: true, AtSeconds: 600}, raw.Submissions[0])
	assert.False(t, raw.Submissions[1].Accepted)
}

func TestFetchContestRankMissingSections(t *testing.T) {
	client := newVjudgeServer(t, `{"title": "No standings here"}`, http.StatusOK)

	_, err := client.FetchContestRank(context.Background(), 42)
	assert.ErrorIs(t, err, rating.ErrNoRankData)
}

func TestFetchContestRankMalformedBody(t *testing.T) {
	client := newVjudgeServer(t, `<html>rate limited</html>`, http.StatusOK)

	_, err := client.FetchContestRank(context.Background(), 42)
	assert.ErrorIs(t, err, rating.ErrNoRankData)
}

func TestFetchContestRankUpstreamError(t *testing.T) {
	client := newVjudgeServer(t, ``, http.StatusBadGateway)

	_, err := client.FetchContestRank(context.Background(), 42)
	assert.ErrorIs(t, err, common.ErrUpstream)
}

func TestFetchContestRankSkipsShortTuples(t *testing.T) {
	client := newVjudgeServer(t, `{
		"participants": {"1": ["x"]},
		"submissions": [[1, 2], [1, 2, 1, 100]]
	}`, http.StatusOK)

	raw, err := client.FetchContestRank(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, raw.Submissions, 1)
	assert.Equal(t, int64(100), raw.Submissions[0].AtSeconds)
}

func TestFirstPositive(t *testing.T) {
	assert.Equal(t, int64(5), firstPositive(0, 5, 9))
	assert.Equal(t, int64(0), firstPositive(0, 0))
}
