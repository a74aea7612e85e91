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

// SnapshotRepository persists the per-handle refresh artifacts: the meta
// row, the daily rating history, the per-day solved buckets, and the pending
// (unrated) solves. The refresh worker overwrites these wholesale; the
// standings endpoint only reads them.
type SnapshotRepository interface {
	UpsertMeta(ctx context.Context, meta *model.HandleMeta) error
	GetMeta(ctx context.Context, handle string) (*model.HandleMeta, error)

	UpsertRatingHistory(ctx context.Context, entry *model.RatingHistory) error
	ListRatingHistory(ctx context.Context, handle string, dates []string) ([]model.RatingHistory, error)

	ReplaceDailySolved(ctx context.Context, entry *model.DailySolved) error
	ListDailySolved(ctx context.Context, handle string, dates []string) ([]model.DailySolved, error)

	ReplacePending(ctx context.Context, handle string, pending []model.PendingProblem) error
	CountPendingByDate(ctx context.Context, handle string, dates []string) (map[string]int, error)

	PruneBefore(ctx context.Context, handle, oldestKeptDate string) error
	DeleteAllForHandle(ctx context.Context, handle string) error
}

type pgSnapshotRepository struct {
	db *sql.DB
}

func NewPgSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &pgSnapshotRepository{db: db}
}

func (r *pgSnapshotRepository) UpsertMeta(ctx context.Context, meta *model.HandleMeta) error {
	query := `INSERT INTO handle_meta (handle, max_rating, total_solved, current_rating, last_update_date)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (handle) DO UPDATE SET
	            max_rating = EXCLUDED.max_rating,
	            total_solved = EXCLUDED.total_solved,
	            current_rating = EXCLUDED.current_rating,
	            last_update_date = EXCLUDED.last_update_date`
	_, err := r.db.ExecContext(ctx, query,
		meta.Handle, meta.MaxRating, meta.TotalSolved, meta.CurrentRating, meta.LastUpdateDate)
	if err != nil {
		return fmt.Errorf("pgSnapshotRepository.UpsertMeta: %w", err)
	}
	return nil
}

func (r *pgSnapshotRepository) GetMeta(ctx context.Context, handle string) (*model.HandleMeta, error) {
	query := `SELECT handle, max_rating, total_solved, current_rating, last_update_date
	          FROM handle_meta WHERE handle = $1`
	meta := &model.HandleMeta{}
	err := r.db.QueryRowContext(ctx, query, handle).Scan(
		&meta.Handle, &meta.MaxRating, &meta.TotalSolved, &meta.CurrentRating, &meta.LastUpdateDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSnapshotRepository.GetMeta: %w", err)
	}
	return meta, nil
}

func (r *pgSnapshotRepository) UpsertRatingHistory(ctx context.Context, entry *model.RatingHistory) error {
	query := `INSERT INTO rating_history (handle, date, rating)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (handle, date) DO UPDATE SET rating = EXCLUDED.rating`
	if _, err := r.db.ExecContext(ctx, query, entry.Handle, entry.Date, entry.Rating); err != nil {
		return fmt.Errorf("pgSnapshotRepository.UpsertRatingHistory: %w", err)
	}
	return nil
}

func (r *pgSnapshotRepository) ListRatingHistory(ctx context.Context, handle string, dates []string) ([]model.RatingHistory, error) {
	query := `SELECT handle, date, rating FROM rating_history
	          WHERE handle = $1 AND date = ANY($2)`
	rows, err := r.db.QueryContext(ctx, query, handle, dates)
	if err != nil {
		return nil, fmt.Errorf("pgSnapshotRepository.ListRatingHistory: %w", err)
	}
	defer rows.Close()

	entries := []model.RatingHistory{}
	for rows.Next() {
		var e model.RatingHistory
		if err := rows.Scan(&e.Handle, &e.Date, &e.Rating); err != nil {
			return nil, fmt.Errorf("pgSnapshotRepository.ListRatingHistory scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *pgSnapshotRepository) ReplaceDailySolved(ctx context.Context, entry *model.DailySolved) error {
	problems, err := json.Marshal(entry.Problems)
	if err != nil {
		return fmt.Errorf("pgSnapshotRepository.ReplaceDailySolved marshal: %w", err)
	}
	query := `INSERT INTO daily_solved (handle, date, problems)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (handle, date) DO UPDATE SET problems = EXCLUDED.problems`
	if _, err := r.db.ExecContext(ctx, query, entry.Handle, entry.Date, problems); err != nil {
		return fmt.Errorf("pgSnapshotRepository.ReplaceDailySolved: %w", err)
	}
	return nil
}

func (r *pgSnapshotRepository) ListDailySolved(ctx context.Context, handle string, dates []string) ([]model.DailySolved, error) {
	query := `SELECT handle, date, problems FROM daily_solved
	          WHERE handle = $1 AND date = ANY($2)`
	rows, err := r.db.QueryContext(ctx, query, handle, dates)
	if err != nil {
		return nil, fmt.Errorf("pgSnapshotRepository.ListDailySolved: %w", err)
	}
	defer rows.Close()

	entries := []model.DailySolved{}
	for rows.Next() {
		var e model.DailySolved
		var problems []byte
		if err := rows.Scan(&e.Handle, &e.Date, &problems); err != nil {
			return nil, fmt.Errorf("pgSnapshotRepository.ListDailySolved scan: %w", err)
		}
		if err := json.Unmarshal(problems, &e.Problems); err != nil {
			return nil, fmt.Errorf("pgSnapshotRepository.ListDailySolved unmarshal: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *pgSnapshotRepository) ReplacePending(ctx context.Context, handle string, pending []model.PendingProblem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgSnapshotRepository.ReplacePending begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pending_problems WHERE handle = $1`, handle); err != nil {
		return fmt.Errorf("pgSnapshotRepository.ReplacePending delete: %w", err)
	}
	query := `INSERT INTO pending_problems (handle, date, contest_id, problem_index, name, solved_at_seconds)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (handle, contest_id, problem_index) DO NOTHING`
	for _, p := range pending {
		if _, err := tx.ExecContext(ctx, query,
			p.Handle, p.Date, p.ContestID, p.Index, p.Name, p.SolvedAtSeconds); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				continue
			}
			return fmt.Errorf("pgSnapshotRepository.ReplacePending insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pgSnapshotRepository.ReplacePending commit: %w", err)
	}
	return nil
}

func (r *pgSnapshotRepository) CountPendingByDate(ctx context.Context, handle string, dates []string) (map[string]int, error) {
	query := `SELECT date, COUNT(*) FROM pending_problems
	          WHERE handle = $1 AND date = ANY($2) GROUP BY date`
	rows, err := r.db.QueryContext(ctx, query, handle, dates)
	if err != nil {
		return nil, fmt.Errorf("pgSnapshotRepository.CountPendingByDate: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var date string
		var count int
		if err := rows.Scan(&date, &count); err != nil {
			return nil, fmt.Errorf("pgSnapshotRepository.CountPendingByDate scan: %w", err)
		}
		counts[date] = count
	}
	return counts, rows.Err()
}

// PruneBefore drops snapshot rows older than the kept window. Date keys are
// "YYYY-MM-DD", so lexicographic comparison is chronological.
func (r *pgSnapshotRepository) PruneBefore(ctx context.Context, handle, oldestKeptDate string) error {
	for _, table := range []string{"daily_solved", "rating_history", "pending_problems"} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE handle = $1 AND date < $2`, table)
		if _, err := r.db.ExecContext(ctx, query, handle, oldestKeptDate); err != nil {
			return fmt.Errorf("pgSnapshotRepository.PruneBefore %s: %w", table, err)
		}
	}
	return nil
}

func (r *pgSnapshotRepository) DeleteAllForHandle(ctx context.Context, handle string) error {
	for _, table := range []string{"daily_solved", "rating_history", "pending_problems", "handle_meta"} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE handle = $1`, table)
		if _, err := r.db.ExecContext(ctx, query, handle); err != nil {
			return fmt.Errorf("pgSnapshotRepository.DeleteAllForHandle %s: %w", table, err)
		}
	}
	return nil
}
