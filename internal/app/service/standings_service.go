package service

import (
	"club_tracker/internal/common"
	"club_tracker/internal/domain/model"
	"club_tracker/internal/domain/rating"
	"club_tracker/internal/domain/repository"
	"club_tracker/internal/platform/logger"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
)

// StandingsService assembles the public standings page from persisted
// snapshots. No judge API calls happen on the request path.
type StandingsService struct {
	handleRepo   repository.HandleRepository
	snapshotRepo repository.SnapshotRepository
}

func NewStandingsService(handleRepo repository.HandleRepository, snapshotRepo repository.SnapshotRepository) *StandingsService {
	return &StandingsService{handleRepo: handleRepo, snapshotRepo: snapshotRepo}
}

func (s *StandingsService) GetStandings(ctx context.Context) ([]model.StandingsRow, error) {
	handles, err := s.handleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list handles: %w", err)
	}
	if len(handles) == 0 {
		return []model.StandingsRow{}, nil
	}

	// The page shows fully-elapsed local days, so the window ends at the
	// last second of yesterday.
	nowSeconds := time.Now().Unix()
	targetEndSeconds := rating.StartOfDay(nowSeconds) - 1
	todayKey := rating.DateKey(targetEndSeconds)

	lastSixDates := make([]string, keptHistoryDays)
	for i := range lastSixDates {
		lastSixDates[i] = rating.DateKey(targetEndSeconds - int64(keptHistoryDays-1-i)*secondsPerDay)
	}
	lastFiveDates := lastSixDates[1:]

	rows := make([]model.StandingsRow, 0, len(handles))
	for _, entry := range handles {
		row, err := s.buildRow(ctx, entry, todayKey, lastSixDates, lastFiveDates)
		if err != nil {
			// One broken handle must not take the whole page down.
			logger.Error("Failed to load standings row", "handle", entry.Handle, "error", err)
			row = model.StandingsRow{
				ID:             entry.ID,
				Handle:         entry.Handle,
				Name:           entry.Name,
				Roll:           entry.Roll,
				Batch:          entry.Batch,
				StandingRating: rating.BaseRating,
				RecentStats:    []rating.DailyPoint{},
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].StandingRating > rows[j].StandingRating
	})
	return rows, nil
}

func (s *StandingsService) buildRow(
	ctx context.Context,
	entry model.Handle,
	todayKey string,
	lastSixDates, lastFiveDates []string,
) (model.StandingsRow, error) {
	meta, err := s.snapshotRepo.GetMeta(ctx, entry.Handle)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return model.StandingsRow{}, err
		}
		meta = &model.HandleMeta{Handle: entry.Handle, CurrentRating: rating.BaseRating}
	}

	history, err := s.snapshotRepo.ListRatingHistory(ctx, entry.Handle, lastSixDates)
	if err != nil {
		return model.StandingsRow{}, err
	}
	historyMap := make(map[string]int, len(history))
	for _, h := range history {
		historyMap[h.Date] = h.Rating
	}

	solvedEntries, err := s.snapshotRepo.ListDailySolved(ctx, entry.Handle, lastFiveDates)
	if err != nil {
		return model.StandingsRow{}, err
	}
	solvedMap := make(map[string][]model.SolvedProblemRef, len(solvedEntries))
	for _, d := range solvedEntries {
		solvedMap[d.Date] = d.Problems
	}

	pendingCounts, err := s.snapshotRepo.CountPendingByDate(ctx, entry.Handle, lastFiveDates)
	if err != nil {
		return model.StandingsRow{}, err
	}

	recentStats := make([]rating.DailyPoint, 0, len(lastFiveDates))
	for i, dateKey := range lastFiveDates {
		toRating, hasToday := historyMap[dateKey]
		fromRating, hasPrev := historyMap[lastSixDates[i]]
		if !hasPrev {
			if hasToday {
				fromRating = toRating
			} else {
				fromRating = rating.BaseRating
			}
		}
		if !hasToday {
			toRating = fromRating
		}
		recentStats = append(recentStats, rating.DailyPoint{
			Date:         dateKey,
			FromRating:   fromRating,
			ToRating:     toRating,
			Delta:        toRating - fromRating,
			Problems:     toProblemRefs(solvedMap[dateKey]),
			PendingCount: pendingCounts[dateKey],
		})
	}
	// newest day first for display
	for i, j := 0, len(recentStats)-1; i < j; i, j = i+1, j-1 {
		recentStats[i], recentStats[j] = recentStats[j], recentStats[i]
	}

	currentRating := meta.CurrentRating
	if r, ok := historyMap[todayKey]; ok {
		currentRating = r
	}
	if currentRating == 0 {
		currentRating = rating.BaseRating
	}

	return model.StandingsRow{
		ID:             entry.ID,
		Handle:         entry.Handle,
		Name:           entry.Name,
		Roll:           entry.Roll,
		Batch:          entry.Batch,
		MaxRating:      meta.MaxRating,
		SolvedCount:    meta.TotalSolved,
		StandingRating: currentRating,
		RecentStats:    recentStats,
	}, nil
}

func toProblemRefs(problems []model.SolvedProblemRef) []rating.ProblemRef {
	refs := make([]rating.ProblemRef, 0, len(problems))
	for _, p := range problems {
		refs = append(refs, rating.ProblemRef{
			ContestID: p.ContestID,
			Index:     p.Index,
			Name:      p.Name,
			Rating:    p.Rating,
		})
	}
	return refs
}
