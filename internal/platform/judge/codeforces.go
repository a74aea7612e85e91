package judge

import (
	"club_tracker/internal/common"
	"club_tracker/internal/domain/rating"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Gym (practice-area) contests live in a separate Codeforces ID range.
const gymContestIDStart = 100000

// CodeforcesClient wraps the two Codeforces API calls the refresh pipeline
// needs. All failures are wrapped in common.ErrUpstream so callers can map
// them to a 502 without inspecting transport details.
type CodeforcesClient struct {
	baseURL string
	http    *http.Client
}

func NewCodeforcesClient(baseURL string, timeout time.Duration) *CodeforcesClient {
	return &CodeforcesClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// UserInfo is the slice of user.info this system cares about.
type UserInfo struct {
	Handle    string
	MaxRating int
}

type cfUserInfoResponse struct {
	Status string `json:"status"`
	Result []struct {
		Handle    string `json:"handle"`
		Rating    int    `json:"rating"`
		MaxRating int    `json:"maxRating"`
	} `json:"result"`
}

type cfStatusResponse struct {
	Status string `json:"status"`
	Result []struct {
		CreationTimeSeconds int64  `json:"creationTimeSeconds"`
		Verdict             string `json:"verdict"`
		Problem             struct {
			ContestID int    `json:"contestId"`
			Index     string `json:"index"`
			Name      string `json:"name"`
			Rating    int    `json:"rating"`
		} `json:"problem"`
	} `json:"result"`
}

func (c *CodeforcesClient) GetUserInfo(ctx context.Context, handle string) (*UserInfo, error) {
	var resp cfUserInfoResponse
	if err := c.get(ctx, "/user.info", url.Values{"handles": {handle}}, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" || len(resp.Result) == 0 {
		return nil, fmt.Errorf("codeforces user %q not found: %w", handle, common.ErrNotFound)
	}

	info := resp.Result[0]
	maxRating := info.MaxRating
	if maxRating == 0 {
		maxRating = info.Rating
	}
	return &UserInfo{Handle: info.Handle, MaxRating: maxRating}, nil
}

// GetSolvedProblems returns the handle's accepted solves, de-duplicated by
// contest+index with the earliest accepted submission kept as the solve
// time.
func (c *CodeforcesClient) GetSolvedProblems(ctx context.Context, handle string) ([]rating.SolvedProblem, error) {
	var resp cfStatusResponse
	if err := c.get(ctx, "/user.status", url.Values{"handle": {handle}}, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("codeforces submissions for %q unavailable: %w", handle, common.ErrUpstream)
	}

	solved := map[string]rating.SolvedProblem{}
	order := []string{}
	for _, sub := range resp.Result {
		if sub.Verdict != "OK" {
			continue
		}
		key := fmt.Sprintf("%d-%s", sub.Problem.ContestID, sub.Problem.Index)
		if existing, ok := solved[key]; ok {
			if sub.CreationTimeSeconds < existing.SolvedAtSeconds {
				existing.SolvedAtSeconds = sub.CreationTimeSeconds
				solved[key] = existing
			}
			continue
		}
		solved[key] = rating.SolvedProblem{
			ContestID:       sub.Problem.ContestID,
			Index:           sub.Problem.Index,
			Name:            sub.Problem.Name,
			Rating:          sub.Problem.Rating,
			SolvedAtSeconds: sub.CreationTimeSeconds,
			Gym:             sub.Problem.ContestID >= gymContestIDStart,
		}
		order = append(order, key)
	}

	problems := make([]rating.SolvedProblem, 0, len(order))
	for _, key := range order {
		problems = append(problems, solved[key])
	}
	return problems, nil
}

func (c *CodeforcesClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("judge.CodeforcesClient: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("codeforces request failed: %v: %w", err, common.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("codeforces returned status %d: %w", resp.StatusCode, common.ErrUpstream)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("codeforces response decode failed: %v: %w", err, common.ErrUpstream)
	}
	return nil
}
