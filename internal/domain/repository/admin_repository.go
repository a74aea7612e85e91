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

type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindByUsername(ctx context.Context, username string) (*model.Admin, error)
	GetPasskey(ctx context.Context) (*model.Passkey, error)
	PutPasskey(ctx context.Context, keyHash string) error
}

type pgAdminRepository struct {
	db *sql.DB
}

func NewPgAdminRepository(db *sql.DB) AdminRepository {
	return &pgAdminRepository{db: db}
}

func (r *pgAdminRepository) Create(ctx context.Context, admin *model.Admin) error {
	query := `INSERT INTO admins (id, username, hashed_password) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, admin.ID, admin.Username, admin.HashedPassword); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("admin with given username already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgAdminRepository.Create: %w", err)
	}
	return nil
}

func (r *pgAdminRepository) FindByUsername(ctx context.Context, username string) (*model.Admin, error) {
	query := `SELECT id, username, hashed_password FROM admins WHERE username = $1`
	admin := &model.Admin{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&admin.ID, &admin.Username, &admin.HashedPassword)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAdminRepository.FindByUsername: %w", err)
	}
	return admin, nil
}

func (r *pgAdminRepository) GetPasskey(ctx context.Context) (*model.Passkey, error) {
	passkey := &model.Passkey{}
	err := r.db.QueryRowContext(ctx, `SELECT key_hash FROM passkeys LIMIT 1`).Scan(&passkey.KeyHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAdminRepository.GetPasskey: %w", err)
	}
	return passkey, nil
}

// PutPasskey upserts the single shared passkey row.
func (r *pgAdminRepository) PutPasskey(ctx context.Context, keyHash string) error {
	query := `INSERT INTO passkeys (id, key_hash) VALUES (1, $1)
	          ON CONFLICT (id) DO UPDATE SET key_hash = EXCLUDED.key_hash`
	if _, err := r.db.ExecContext(ctx, query, keyHash); err != nil {
		return fmt.Errorf("pgAdminRepository.PutPasskey: %w", err)
	}
	return nil
}
