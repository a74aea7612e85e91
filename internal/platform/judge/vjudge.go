package judge

import (
	"club_tracker/internal/common"
	"club_tracker/internal/domain/rating"
	"club_tracker/internal/platform/logger"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// VjudgeClient fetches contest rank payloads and turns the source's
// positional tuple shapes into the tagged records the rating package
// consumes. Raw payloads are cached in Redis so repeated standings requests
// do not hammer the (anonymous, throttled) VJudge API.
type VjudgeClient struct {
	baseURL  string
	http     *http.Client
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewVjudgeClient(baseURL string, timeout time.Duration, rdb *redis.Client, cacheTTL time.Duration) *VjudgeClient {
	return &VjudgeClient{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		rdb:      rdb,
		cacheTTL: cacheTTL,
	}
}

// vjudgeRankResponse mirrors the wire shape: participants keyed by team id
// as [username, displayName] tuples, submissions as [teamId, problemId,
// accepted, seconds] tuples. The positional shapes stop here.
type vjudgeRankResponse struct {
	Title        string              `json:"title"`
	Length       int64               `json:"length"`
	Duration     int64               `json:"duration"`
	Begin        int64               `json:"begin"`
	End          int64               `json:"end"`
	StartTime    int64               `json:"startTime"`
	EndTime      int64               `json:"endTime"`
	Participants map[string][]string `json:"participants"`
	Submissions  [][]int64           `json:"submissions"`
}

// FetchContestRank returns a contest's raw rank payload, from cache when
// fresh. A payload without usable participants/submissions sections yields
// rating.ErrNoRankData.
func (c *VjudgeClient) FetchContestRank(ctx context.Context, contestID int64) (*rating.RawContest, error) {
	body, err := c.rankBody(ctx, contestID)
	if err != nil {
		return nil, err
	}

	var resp vjudgeRankResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("vjudge rank decode failed for contest %d: %v: %w", contestID, err, rating.ErrNoRankData)
	}
	if resp.Participants == nil || resp.Submissions == nil {
		return nil, fmt.Errorf("vjudge contest %d: %w", contestID, rating.ErrNoRankData)
	}

	raw := &rating.RawContest{
		Title:         resp.Title,
		LengthSeconds: firstPositive(resp.Length, resp.Duration),
		BeginSeconds:  firstPositive(resp.Begin, resp.StartTime),
		EndSeconds:    firstPositive(resp.End, resp.EndTime),
		Participants:  make(map[int]rating.RawParticipant, len(resp.Participants)),
		Submissions:   make([]rating.RawSubmission, 0, len(resp.Submissions)),
	}

	for key, tuple := range resp.Participants {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		p := rating.RawParticipant{}
		if len(tuple) > 0 {
			p.Username = tuple[0]
		}
		if len(tuple) > 1 {
			p.DisplayName = tuple[1]
		}
		raw.Participants[id] = p
	}

	for _, tuple := range resp.Submissions {
		if len(tuple) < 4 {
			continue
		}
		raw.Submissions = append(raw.Submissions, rating.RawSubmission{
			TeamID:    int(tuple[0]),
			ProblemID: int(tuple[1]),
			Accepted:  tuple[2] == 1,
			AtSeconds: tuple[3],
		})
	}
	return raw, nil
}

func (c *VjudgeClient) rankBody(ctx context.Context, contestID int64) ([]byte, error) {
	cacheKey := fmt.Sprintf("vjudge:rank:%d", contestID)
	if c.rdb != nil {
		if cached, err := c.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			return cached, nil
		}
	}

	url := fmt.Sprintf("%s/contest/rank/single/%d", c.baseURL, contestID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("judge.VjudgeClient: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vjudge request failed for contest %d: %v: %w", contestID, err, common.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vjudge returned status %d for contest %d: %w", resp.StatusCode, contestID, common.ErrUpstream)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("vjudge response read failed: %v: %w", err, common.ErrUpstream)
	}

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, cacheKey, body, c.cacheTTL).Err(); err != nil {
			logger.Warn("Failed to cache vjudge rank payload", "contestId", contestID, "error", err)
		}
	}
	return body, nil
}

func firstPositive(values ...int64) int64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
