package repository

import (
	"club_tracker/internal/common"
	"club_tracker/internal/domain/model"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

type HandleRepository interface {
	Create(ctx context.Context, handle *model.Handle) error
	Update(ctx context.Context, handle *model.Handle) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Handle, error)
	List(ctx context.Context) ([]model.Handle, error)
}

type pgHandleRepository struct {
	db *sql.DB
}

func NewPgHandleRepository(db *sql.DB) HandleRepository {
	return &pgHandleRepository{db: db}
}

func (r *pgHandleRepository) Create(ctx context.Context, handle *model.Handle) error {
	query := `INSERT INTO handles (id, handle, name, roll, batch)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, handle.ID, handle.Handle, handle.Name, handle.Roll, handle.Batch)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("handle already registered: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgHandleRepository.Create: %w", err)
	}
	return nil
}

func (r *pgHandleRepository) Update(ctx context.Context, handle *model.Handle) error {
	query := `UPDATE handles SET handle = $2, name = $3, roll = $4, batch = $5, updated_at = now()
	          WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, handle.ID, handle.Handle, handle.Name, handle.Roll, handle.Batch)
	if err != nil {
		return fmt.Errorf("pgHandleRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgHandleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM handles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgHandleRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgHandleRepository) FindByID(ctx context.Context, id string) (*model.Handle, error) {
	query := `SELECT id, handle, name, roll, batch, created_at, updated_at
	          FROM handles WHERE id = $1`
	handle := &model.Handle{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&handle.ID, &handle.Handle, &handle.Name, &handle.Roll, &handle.Batch,
		&handle.CreatedAt, &handle.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgHandleRepository.FindByID: %w", err)
	}
	return handle, nil
}

func (r *pgHandleRepository) List(ctx context.Context) ([]model.Handle, error) {
	query := `SELECT id, handle, name, roll, batch, created_at, updated_at
	          FROM handles ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgHandleRepository.List: %w", err)
	}
	defer rows.Close()

	handles := []model.Handle{}
	for rows.Next() {
		var h model.Handle
		if err := rows.Scan(&h.ID, &h.Handle, &h.Name, &h.Roll, &h.Batch, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgHandleRepository.List scan: %w", err)
		}
		handles = append(handles, h)
	}
	return handles, rows.Err()
}
