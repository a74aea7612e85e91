package service

import (
	"club_tracker/internal/common"
	"club_tracker/internal/domain/model"
	"club_tracker/internal/domain/rating"
	"club_tracker/internal/domain/repository"
	"club_tracker/internal/platform/judge"
	"club_tracker/internal/platform/logger"
	"context"
	"errors"
	"fmt"
)

// LadderService computes the team Elo ladder on demand from the configured
// contests. Unusable contests (throttled source, malformed payload) are
// skipped, never treated as contests where everyone failed to place.
type LadderService struct {
	teamRepo repository.TeamRepository
	vjudge   *judge.VjudgeClient
}

func NewLadderService(teamRepo repository.TeamRepository, vjudge *judge.VjudgeClient) *LadderService {
	return &LadderService{teamRepo: teamRepo, vjudge: vjudge}
}

func (s *LadderService) GetStandings(ctx context.Context) (*model.LadderResponse, error) {
	contests, err := s.teamRepo.ListContests(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}
	teams, err := s.teamRepo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	mode := s.currentMode(ctx)

	resp := &model.LadderResponse{
		Contests:  contests,
		Teams:     teams,
		Standings: []rating.TeamStanding{},
		EloMode:   string(mode),
	}
	if len(teams) == 0 {
		return resp, nil
	}

	ranklists := make([][]rating.RankEntry, 0, len(contests))
	for _, contest := range contests {
		entries, title, err := s.contestRanklist(ctx, contest.ContestID)
		if err != nil {
			logger.Warn("Skipping contest without usable rank data",
				"contestId", contest.ContestID, "error", err)
			continue
		}
		if title != "" && title != contest.Title {
			if err := s.teamRepo.UpdateContestTitle(ctx, contest.ID, title); err != nil {
				logger.Warn("Failed to update contest title", "contestId", contest.ContestID, "error", err)
			}
		}
		ranklists = append(ranklists, entries)
	}

	groups := make([]rating.TeamGroup, 0, len(teams))
	for _, team := range teams {
		aliases := make([]string, 0, len(team.Aliases)+1)
		aliases = append(aliases, team.Name)
		aliases = append(aliases, team.Aliases...)
		groups = append(groups, rating.TeamGroup{ID: team.ID, Name: team.Name, Aliases: aliases})
	}

	resp.Standings = rating.BuildStandings(ranklists, groups, mode)
	return resp, nil
}

func (s *LadderService) contestRanklist(ctx context.Context, contestID int64) ([]rating.RankEntry, string, error) {
	raw, err := s.vjudge.FetchContestRank(ctx, contestID)
	if err != nil {
		return nil, "", err
	}
	entries, err := rating.BuildRanklist(raw)
	if err != nil {
		return nil, "", err
	}
	return entries, raw.Title, nil
}

func (s *LadderService) currentMode(ctx context.Context) rating.Mode {
	cfg, err := s.teamRepo.GetConfig(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			logger.Warn("Failed to load ladder config, using normal mode", "error", err)
		}
		return rating.ModeNormal
	}
	return rating.ParseMode(cfg.Mode)
}
