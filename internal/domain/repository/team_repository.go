package repository

import (
	"club_tracker/internal/common"
	"club_tracker/internal/domain/model"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

type TeamRepository interface {
	CreateTeam(ctx context.Context, team *model.Team) error
	DeleteTeam(ctx context.Context, id string) error
	ListTeams(ctx context.Context) ([]model.Team, error)

	CreateContest(ctx context.Context, contest *model.Contest) error
	UpdateContestEnabled(ctx context.Context, id string, enabled bool) (*model.Contest, error)
	UpdateContestTitle(ctx context.Context, id string, title string) error
	DeleteContest(ctx context.Context, id string) error
	ListContests(ctx context.Context, enabledOnly bool) ([]model.Contest, error)

	GetConfig(ctx context.Context) (*model.LadderConfig, error)
	PutConfig(ctx context.Context, cfg *model.LadderConfig) error
}

type pgTeamRepository struct {
	db *sql.DB
}

func NewPgTeamRepository(db *sql.DB) TeamRepository {
	return &pgTeamRepository{db: db}
}

func (r *pgTeamRepository) CreateTeam(ctx context.Context, team *model.Team) error {
	aliases, err := json.Marshal(team.Aliases)
	if err != nil {
		return fmt.Errorf("pgTeamRepository.CreateTeam marshal: %w", err)
	}
	query := `INSERT INTO teams (id, slug, name, aliases) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, team.ID, team.Slug, team.Name, aliases); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("team with given name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgTeamRepository.CreateTeam: %w", err)
	}
	return nil
}

func (r *pgTeamRepository) DeleteTeam(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgTeamRepository.DeleteTeam: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgTeamRepository) ListTeams(ctx context.Context) ([]model.Team, error) {
	query := `SELECT id, slug, name, aliases, created_at FROM teams ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgTeamRepository.ListTeams: %w", err)
	}
	defer rows.Close()

	teams := []model.Team{}
	for rows.Next() {
		var t model.Team
		var aliases []byte
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &aliases, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgTeamRepository.ListTeams scan: %w", err)
		}
		if err := json.Unmarshal(aliases, &t.Aliases); err != nil {
			return nil, fmt.Errorf("pgTeamRepository.ListTeams unmarshal: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *pgTeamRepository) CreateContest(ctx context.Context, contest *model.Contest) error {
	query := `INSERT INTO contests (id, contest_id, title, enabled) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, contest.ID, contest.ContestID, contest.Title, contest.Enabled); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("contest already tracked: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgTeamRepository.CreateContest: %w", err)
	}
	return nil
}

func (r *pgTeamRepository) UpdateContestEnabled(ctx context.Context, id string, enabled bool) (*model.Contest, error) {
	query := `UPDATE contests SET enabled = $2 WHERE id = $1
	          RETURNING id, contest_id, title, enabled, created_at`
	contest := &model.Contest{}
	err := r.db.QueryRowContext(ctx, query, id, enabled).Scan(
		&contest.ID, &contest.ContestID, &contest.Title, &contest.Enabled, &contest.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTeamRepository.UpdateContestEnabled: %w", err)
	}
	return contest, nil
}

func (r *pgTeamRepository) UpdateContestTitle(ctx context.Context, id string, title string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE contests SET title = $2 WHERE id = $1`, id, title); err != nil {
		return fmt.Errorf("pgTeamRepository.UpdateContestTitle: %w", err)
	}
	return nil
}

func (r *pgTeamRepository) DeleteContest(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgTeamRepository.DeleteContest: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgTeamRepository) ListContests(ctx context.Context, enabledOnly bool) ([]model.Contest, error) {
	query := `SELECT id, contest_id, title, enabled, created_at FROM contests ORDER BY created_at DESC`
	if enabledOnly {
		query = `SELECT id, contest_id, title, enabled, created_at FROM contests
		         WHERE enabled ORDER BY created_at ASC`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgTeamRepository.ListContests: %w", err)
	}
	defer rows.Close()

	contests := []model.Contest{}
	for rows.Next() {
		var c model.Contest
		if err := rows.Scan(&c.ID, &c.ContestID, &c.Title, &c.Enabled, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgTeamRepository.ListContests scan: %w", err)
		}
		contests = append(contests, c)
	}
	return contests, rows.Err()
}

func (r *pgTeamRepository) GetConfig(ctx context.Context) (*model.LadderConfig, error) {
	cfg := &model.LadderConfig{}
	err := r.db.QueryRowContext(ctx, `SELECT elo_mode FROM ladder_config LIMIT 1`).Scan(&cfg.Mode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTeamRepository.GetConfig: %w", err)
	}
	return cfg, nil
}

// PutConfig upserts the single config row. The fixed id keeps it single.
func (r *pgTeamRepository) PutConfig(ctx context.Context, cfg *model.LadderConfig) error {
	query := `INSERT INTO ladder_config (id, elo_mode) VALUES (1, $1)
	          ON CONFLICT (id) DO UPDATE SET elo_mode = EXCLUDED.elo_mode`
	if _, err := r.db.ExecContext(ctx, query, cfg.Mode); err != nil {
		return fmt.Errorf("pgTeamRepository.PutConfig: %w", err)
	}
	return nil
}
