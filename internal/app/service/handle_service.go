package service

import (
	"club_tracker/internal/common"
	"club_tracker/internal/domain/model"
	"club_tracker/internal/domain/repository"
	"club_tracker/internal/platform/logger"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// HandleService is the admin-facing handle CRUD. Creating a handle also
// schedules its first refresh so it shows real data quickly.
type HandleService struct {
	handleRepo   repository.HandleRepository
	snapshotRepo repository.SnapshotRepository
	refresh      *RefreshService
}

func NewHandleService(
	handleRepo repository.HandleRepository,
	snapshotRepo repository.SnapshotRepository,
	refresh *RefreshService,
) *HandleService {
	return &HandleService{handleRepo: handleRepo, snapshotRepo: snapshotRepo, refresh: refresh}
}

type CreateHandleRequest struct {
	Handle string `json:"handle"`
	Name   string `json:"name"`
	Roll   string `json:"roll"`
	Batch  string `json:"batch"`
}

func (s *HandleService) List(ctx context.Context) ([]model.Handle, error) {
	return s.handleRepo.List(ctx)
}

func (s *HandleService) Create(ctx context.Context, req CreateHandleRequest) (*model.Handle, error) {
	if strings.TrimSpace(req.Handle) == "" {
		return nil, fmt.Errorf("handle is required: %w", common.ErrBadRequest)
	}

	handle := &model.Handle{
		ID:     uuid.NewString(),
		Handle: strings.TrimSpace(req.Handle),
		Name:   strings.TrimSpace(req.Name),
		Roll:   strings.TrimSpace(req.Roll),
		Batch:  strings.TrimSpace(req.Batch),
	}
	if err := s.handleRepo.Create(ctx, handle); err != nil {
		return nil, fmt.Errorf("failed to create handle: %w", err)
	}

	if err := s.refresh.EnqueueHandle(ctx, handle.Handle); err != nil {
		logger.Warn("Failed to enqueue initial refresh", "handle", handle.Handle, "error", err)
	}
	return s.handleRepo.FindByID(ctx, handle.ID)
}

func (s *HandleService) Update(ctx context.Context, id string, req CreateHandleRequest) (*model.Handle, error) {
	if strings.TrimSpace(req.Handle) == "" {
		return nil, fmt.Errorf("handle is required: %w", common.ErrBadRequest)
	}
	existing, err := s.handleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Handle = strings.TrimSpace(req.Handle)
	if req.Name != "" {
		existing.Name = strings.TrimSpace(req.Name)
	}
	if req.Roll != "" {
		existing.Roll = strings.TrimSpace(req.Roll)
	}
	if req.Batch != "" {
		existing.Batch = strings.TrimSpace(req.Batch)
	}
	if err := s.handleRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update handle: %w", err)
	}
	return s.handleRepo.FindByID(ctx, id)
}

// Delete removes the handle and all of its snapshots.
func (s *HandleService) Delete(ctx context.Context, id string) error {
	existing, err := s.handleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.handleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete handle: %w", err)
	}
	if err := s.snapshotRepo.DeleteAllForHandle(ctx, existing.Handle); err != nil {
		logger.Warn("Failed to delete snapshots for removed handle", "handle", existing.Handle, "error", err)
	}
	return nil
}

// Refresh schedules an out-of-band refresh for one handle.
func (s *HandleService) Refresh(ctx context.Context, id string) error {
	existing, err := s.handleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.refresh.EnqueueHandle(ctx, existing.Handle)
}
