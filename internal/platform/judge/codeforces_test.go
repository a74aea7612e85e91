package judge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"club_tracker/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCFServer(t *testing.T, handler http.HandlerFunc) *CodeforcesClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCodeforcesClient(srv.URL, 5*time.Second)
}

func TestGetUserInfo(t *testing.T) {
	client := newCFServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user.info", r.URL.Path)
		assert.Equal(t, "tourist", r.URL.Query().Get("handles"))
		w.Write([]byte(`{"status":"OK","result":[{"handle":"tourist","rating":3700,"maxRating":3979}]}`))
	})

	info, err := client.GetUserInfo(context.Background(), "tourist")
	require.NoError(t, err)
	assert.Equal(t, "tourist", info.Handle)
	assert.Equal(t, 3979, info.MaxRating)
}

func TestGetUserInfoMaxRatingFallback(t *testing.T) {
	// Unrated-but-active accounts report rating without maxRating.
	client := newCFServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK","result":[{"handle":"newbie","rating":820}]}`))
	})

	info, err := client.GetUserInfo(context.Background(), "newbie")
	require.NoError(t, err)
	assert.Equal(t, 820, info.MaxRating)
}

func TestGetUserInfoNotFound(t *testing.T) {
	client := newCFServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"FAILED","result":[]}`))
	})

	_, err := client.GetUserInfo(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetUserInfoUpstreamError(t *testing.T) {
	client := newCFServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.GetUserInfo(context.Background(), "tourist")
	assert.ErrorIs(t, err, common.ErrUpstream)
}

func TestGetSolvedProblems(t *testing.T) {
	client := newCFServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user.status", r.URL.Path)
		w.Write([]byte(`{"status":"OK","result":[
			{"creationTimeSeconds":2000,"verdict":"OK","problem":{"contestId":1700,"index":"A","name":"Alpha","rating":800}},
			{"creationTimeSeconds":1000,"verdict":"OK","problem":{"contestId":1700,"index":"A","name":"Alpha","rating":800}},
			{"creationTimeSeconds":1500,"verdict":"WRONG_ANSWER","problem":{"contestId":1700,"index":"B","name":"Beta","rating":1200}},
			{"creationTimeSeconds":1800,"verdict":"OK","problem":{"contestId":104000,"index":"C","name":"GymProblem","rating":1500}}
		]}`))
	})

	problems, err := client.GetSolvedProblems(context.Background(), "someone")
	require.NoError(t, err)
	require.Len(t, problems, 2)

	// De-dup keeps the earliest accepted time for a problem.
	assert.Equal(t, "A", problems[0].Index)
	assert.Equal(t, int64(1000), problems[0].SolvedAtSeconds)
	assert.False(t, problems[0].Gym)

	// High contest IDs are gym contests.
	assert.Equal(t, "C", problems[1].Index)
	assert.True(t, problems[1].Gym)
}
