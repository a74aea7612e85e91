package service

import (
	"club_tracker/internal/domain/model"
	"club_tracker/internal/domain/rating"
	"club_tracker/internal/domain/repository"
	"club_tracker/internal/platform/judge"
	"club_tracker/internal/platform/logger"
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// The public standings show the last five local days; one extra day of
	// history is kept so the oldest shown day has a from-rating.
	recentWindowDays = 5
	keptHistoryDays  = recentWindowDays + 1

	pendingRelevanceDays = 30
	secondsPerDay        = 86400
)

// RefreshService runs the per-handle refresh pipeline: pull the handle's
// Codeforces data, recompute today's practice rating, rebuild the recent
// solved/pending buckets, and prune everything that aged out of the kept
// window. Refreshes are idempotent upserts, so re-running one is harmless.
type RefreshService struct {
	handleRepo   repository.HandleRepository
	snapshotRepo repository.SnapshotRepository
	codeforces   *judge.CodeforcesClient
	rdb          *redis.Client
	queueName    string
}

func NewRefreshService(
	handleRepo repository.HandleRepository,
	snapshotRepo repository.SnapshotRepository,
	codeforces *judge.CodeforcesClient,
	rdb *redis.Client,
	queueName string,
) *RefreshService {
	return &RefreshService{
		handleRepo:   handleRepo,
		snapshotRepo: snapshotRepo,
		codeforces:   codeforces,
		rdb:          rdb,
		queueName:    queueName,
	}
}

func (s *RefreshService) RefreshHandle(ctx context.Context, handle string) error {
	logger.Info("Refreshing handle", "handle", handle)
	nowSeconds := time.Now().Unix()
	todayKey := rating.DateKey(nowSeconds)

	info, err := s.codeforces.GetUserInfo(ctx, handle)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", handle, err)
	}
	solved, err := s.codeforces.GetSolvedProblems(ctx, handle)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", handle, err)
	}

	lastSixDates := make([]string, keptHistoryDays)
	for i := range lastSixDates {
		lastSixDates[i] = rating.DateKey(nowSeconds - int64(keptHistoryDays-1-i)*secondsPerDay)
	}
	lastFiveDates := lastSixDates[1:]

	dailyMap := make(map[string][]model.SolvedProblemRef, len(lastFiveDates))
	for _, dateKey := range lastFiveDates {
		dailyMap[dateKey] = []model.SolvedProblemRef{}
	}
	pending := []model.PendingProblem{}
	pendingSeen := map[string]struct{}{}

	for _, problem := range solved {
		if problem.SolvedAtSeconds <= 0 || problem.Gym {
			continue
		}
		dateKey := rating.DateKey(problem.SolvedAtSeconds)
		daysAgo := (nowSeconds - problem.SolvedAtSeconds) / secondsPerDay

		if problem.Rating <= 0 {
			if daysAgo <= pendingRelevanceDays {
				key := fmt.Sprintf("%d-%s", problem.ContestID, problem.Index)
				if _, ok := pendingSeen[key]; ok {
					continue
				}
				pendingSeen[key] = struct{}{}
				pending = append(pending, model.PendingProblem{
					Handle:          handle,
					Date:            dateKey,
					ContestID:       problem.ContestID,
					Index:           problem.Index,
					Name:            problem.Name,
					SolvedAtSeconds: problem.SolvedAtSeconds,
				})
			}
			continue
		}

		if bucket, ok := dailyMap[dateKey]; ok {
			dailyMap[dateKey] = append(bucket, model.SolvedProblemRef{
				ContestID: problem.ContestID,
				Index:     problem.Index,
				Name:      problem.Name,
				Rating:    problem.Rating,
			})
		}
	}

	for _, dateKey := range lastFiveDates {
		entry := &model.DailySolved{Handle: handle, Date: dateKey, Problems: dailyMap[dateKey]}
		if err := s.snapshotRepo.ReplaceDailySolved(ctx, entry); err != nil {
			return fmt.Errorf("refresh %s: %w", handle, err)
		}
	}
	if err := s.snapshotRepo.ReplacePending(ctx, handle, pending); err != nil {
		return fmt.Errorf("refresh %s: %w", handle, err)
	}

	// Only today's rating is recomputed; previous days keep their stored
	// values so history does not retroactively shift.
	todayRating := rating.ScoreUpTo(info.MaxRating, solved, nowSeconds)
	if err := s.snapshotRepo.UpsertRatingHistory(ctx, &model.RatingHistory{
		Handle: handle,
		Date:   todayKey,
		Rating: todayRating,
	}); err != nil {
		return fmt.Errorf("refresh %s: %w", handle, err)
	}

	if err := s.snapshotRepo.UpsertMeta(ctx, &model.HandleMeta{
		Handle:         handle,
		MaxRating:      info.MaxRating,
		TotalSolved:    len(solved),
		CurrentRating:  todayRating,
		LastUpdateDate: todayKey,
	}); err != nil {
		return fmt.Errorf("refresh %s: %w", handle, err)
	}

	if err := s.snapshotRepo.PruneBefore(ctx, handle, lastSixDates[0]); err != nil {
		return fmt.Errorf("refresh %s: %w", handle, err)
	}

	logger.Info("Handle refreshed", "handle", handle, "rating", todayRating, "solved", len(solved))
	return nil
}

// EnqueueHandle schedules one handle for background refresh.
func (s *RefreshService) EnqueueHandle(ctx context.Context, handle string) error {
	if err := s.rdb.LPush(ctx, s.queueName, handle).Err(); err != nil {
		return fmt.Errorf("failed to enqueue refresh for %s: %w", handle, err)
	}
	return nil
}

// EnqueueAll schedules every registered handle for background refresh.
func (s *RefreshService) EnqueueAll(ctx context.Context) error {
	handles, err := s.handleRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list handles for refresh: %w", err)
	}
	for _, h := range handles {
		if err := s.EnqueueHandle(ctx, h.Handle); err != nil {
			return err
		}
	}
	logger.Info("Enqueued refresh for all handles", "count", len(handles))
	return nil
}
