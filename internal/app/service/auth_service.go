package service

import (
	"club_tracker/internal/common"
	"club_tracker/internal/common/security"
	"club_tracker/internal/domain/model"
	"club_tracker/internal/domain/repository"
	"club_tracker/internal/platform/config"
	"club_tracker/internal/platform/logger"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type AuthService struct {
	adminRepo repository.AdminRepository
}

func NewAuthService(adminRepo repository.AdminRepository) *AuthService {
	return &AuthService{adminRepo: adminRepo}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	admin, err := s.adminRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, admin.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &LoginResponse{Token: token}, nil
}

// VerifyPasskey checks a member-supplied passkey against the stored hash,
// seeding the default passkey on first use.
func (s *AuthService) VerifyPasskey(ctx context.Context, passkey string) (bool, error) {
	if passkey == "" {
		return false, nil
	}
	record, err := s.adminRepo.GetPasskey(ctx)
	if errors.Is(err, common.ErrNotFound) {
		if err := s.seedPasskey(ctx); err != nil {
			return false, err
		}
		record, err = s.adminRepo.GetPasskey(ctx)
	}
	if err != nil {
		return false, fmt.Errorf("failed to load passkey: %w", err)
	}
	return security.CheckPasswordHash(passkey, record.KeyHash), nil
}

// EnsureDefaults seeds the default admin account and passkey so a fresh
// deployment is immediately usable.
func (s *AuthService) EnsureDefaults(ctx context.Context) error {
	_, err := s.adminRepo.FindByUsername(ctx, config.AppConfig.DefaultAdminUsername)
	if errors.Is(err, common.ErrNotFound) {
		hashed, hashErr := security.HashPassword(config.AppConfig.DefaultAdminPassword)
		if hashErr != nil {
			return fmt.Errorf("failed to hash default admin password: %w", hashErr)
		}
		admin := &model.Admin{
			ID:             uuid.NewString(),
			Username:       config.AppConfig.DefaultAdminUsername,
			HashedPassword: hashed,
		}
		if createErr := s.adminRepo.Create(ctx, admin); createErr != nil && !errors.Is(createErr, common.ErrConflict) {
			return fmt.Errorf("failed to seed default admin: %w", createErr)
		}
		logger.Info("Seeded default admin account", "username", admin.Username)
	} else if err != nil {
		return fmt.Errorf("failed to check default admin: %w", err)
	}

	if _, err := s.adminRepo.GetPasskey(ctx); errors.Is(err, common.ErrNotFound) {
		return s.seedPasskey(ctx)
	} else if err != nil {
		return fmt.Errorf("failed to check passkey: %w", err)
	}
	return nil
}

func (s *AuthService) seedPasskey(ctx context.Context) error {
	hashed, err := security.HashPassword(config.AppConfig.DefaultPasskey)
	if err != nil {
		return fmt.Errorf("failed to hash default passkey: %w", err)
	}
	if err := s.adminRepo.PutPasskey(ctx, hashed); err != nil {
		return fmt.Errorf("failed to seed passkey: %w", err)
	}
	logger.Info("Seeded default passkey")
	return nil
}
