package repository

import (
	"club_tracker/internal/common"
	"club_tracker/internal/domain/model"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type RequestRepository interface {
	Create(ctx context.Context, request *model.Request) error
	FindByID(ctx context.Context, id string) (*model.Request, error)
	List(ctx context.Context, status string) ([]model.Request, error)
	SetStatus(ctx context.Context, id, status string, at time.Time) error
}

type pgRequestRepository struct {
	db *sql.DB
}

func NewPgRequestRepository(db *sql.DB) RequestRepository {
	return &pgRequestRepository{db: db}
}

func (r *pgRequestRepository) Create(ctx context.Context, request *model.Request) error {
	query := `INSERT INTO requests (id, type, status, handle, name, roll, batch, team_name, team_handles)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		request.ID, request.Type, request.Status,
		request.Handle, request.Name, request.Roll, request.Batch,
		request.TeamName, request.TeamHandles)
	if err != nil {
		return fmt.Errorf("pgRequestRepository.Create: %w", err)
	}
	return nil
}

func (r *pgRequestRepository) FindByID(ctx context.Context, id string) (*model.Request, error) {
	query := `SELECT id, type, status, handle, name, roll, batch, team_name, team_handles,
	                 approved_at, rejected_at, created_at
	          FROM requests WHERE id = $1`
	request := &model.Request{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&request.ID, &request.Type, &request.Status,
		&request.Handle, &request.Name, &request.Roll, &request.Batch,
		&request.TeamName, &request.TeamHandles,
		&request.ApprovedAt, &request.RejectedAt, &request.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgRequestRepository.FindByID: %w", err)
	}
	return request, nil
}

// List returns requests newest first, optionally filtered by status.
func (r *pgRequestRepository) List(ctx context.Context, status string) ([]model.Request, error) {
	query := `SELECT id, type, status, handle, name, roll, batch, team_name, team_handles,
	                 approved_at, rejected_at, created_at
	          FROM requests`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgRequestRepository.List: %w", err)
	}
	defer rows.Close()

	requests := []model.Request{}
	for rows.Next() {
		var req model.Request
		if err := rows.Scan(
			&req.ID, &req.Type, &req.Status,
			&req.Handle, &req.Name, &req.Roll, &req.Batch,
			&req.TeamName, &req.TeamHandles,
			&req.ApprovedAt, &req.RejectedAt, &req.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgRequestRepository.List scan: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *pgRequestRepository) SetStatus(ctx context.Context, id, status string, at time.Time) error {
	var query string
	switch status {
	case model.RequestStatusApproved:
		query = `UPDATE requests SET status = $2, approved_at = $3 WHERE id = $1 AND status = 'pending'`
	case model.RequestStatusRejected:
		query = `UPDATE requests SET status = $2, rejected_at = $3 WHERE id = $1 AND status = 'pending'`
	default:
		return fmt.Errorf("unsupported request status %q: %w", status, common.ErrBadRequest)
	}
	res, err := r.db.ExecContext(ctx, query, id, status, at)
	if err != nil {
		return fmt.Errorf("pgRequestRepository.SetStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
