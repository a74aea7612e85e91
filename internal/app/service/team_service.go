package service

import (
	"club_tracker/internal/common"
	"club_tracker/internal/domain/model"
	"club_tracker/internal/domain/rating"
	"club_tracker/internal/domain/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// TeamService is the admin-facing team, contest and ladder-config CRUD.
type TeamService struct {
	teamRepo repository.TeamRepository
}

func NewTeamService(teamRepo repository.TeamRepository) *TeamService {
	return &TeamService{teamRepo: teamRepo}
}

type CreateTeamRequest struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

type CreateContestRequest struct {
	ContestID int64  `json:"contestId"`
	Title     string `json:"title"`
}

func (s *TeamService) ListTeams(ctx context.Context) ([]model.Team, error) {
	return s.teamRepo.ListTeams(ctx)
}

func (s *TeamService) CreateTeam(ctx context.Context, req CreateTeamRequest) (*model.Team, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("team name is required: %w", common.ErrBadRequest)
	}

	team := &model.Team{
		ID:      uuid.NewString(),
		Slug:    slug.Make(name),
		Name:    name,
		Aliases: cleanAliases(req.Aliases),
	}
	if err := s.teamRepo.CreateTeam(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, id string) error {
	return s.teamRepo.DeleteTeam(ctx, id)
}

func (s *TeamService) ListContests(ctx context.Context) ([]model.Contest, error) {
	return s.teamRepo.ListContests(ctx, false)
}

func (s *TeamService) CreateContest(ctx context.Context, req CreateContestRequest) (*model.Contest, error) {
	if req.ContestID <= 0 {
		return nil, fmt.Errorf("contestId must be positive: %w", common.ErrBadRequest)
	}

	contest := &model.Contest{
		ID:        uuid.NewString(),
		ContestID: req.ContestID,
		Title:     strings.TrimSpace(req.Title),
		Enabled:   true,
	}
	if err := s.teamRepo.CreateContest(ctx, contest); err != nil {
		return nil, fmt.Errorf("failed to create contest: %w", err)
	}
	return contest, nil
}

func (s *TeamService) SetContestEnabled(ctx context.Context, id string, enabled bool) (*model.Contest, error) {
	return s.teamRepo.UpdateContestEnabled(ctx, id, enabled)
}

func (s *TeamService) DeleteContest(ctx context.Context, id string) error {
	return s.teamRepo.DeleteContest(ctx, id)
}

func (s *TeamService) GetConfig(ctx context.Context) (*model.LadderConfig, error) {
	cfg, err := s.teamRepo.GetConfig(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &model.LadderConfig{Mode: string(rating.ModeNormal)}, nil
		}
		return nil, err
	}
	return cfg, nil
}

func (s *TeamService) SetConfig(ctx context.Context, mode string) (*model.LadderConfig, error) {
	switch rating.Mode(mode) {
	case rating.ModeNormal, rating.ModeGainOnly, rating.ModeZeroParticipation:
	default:
		return nil, fmt.Errorf("unknown elo mode %q: %w", mode, common.ErrBadRequest)
	}
	cfg := &model.LadderConfig{Mode: mode}
	if err := s.teamRepo.PutConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to update ladder config: %w", err)
	}
	return cfg, nil
}

// cleanAliases trims entries and drops empties and duplicates.
func cleanAliases(raw []string) []string {
	seen := map[string]bool{}
	aliases := []string{}
	for _, alias := range raw {
		alias = strings.TrimSpace(alias)
		if alias == "" || seen[alias] {
			continue
		}
		seen[alias] = true
		aliases = append(aliases, alias)
	}
	return aliases
}
