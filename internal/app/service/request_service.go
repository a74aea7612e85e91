package service

import (
	"club_tracker/internal/common"
	"club_tracker/internal/domain/model"
	"club_tracker/internal/domain/repository"
	"club_tracker/internal/platform/logger"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestService takes passkey-gated membership requests from the public
// site and lets admins approve or reject them. Approval materializes the
// request into a tracked handle or a ladder team.
type RequestService struct {
	requestRepo repository.RequestRepository
	authService *AuthService
	handles     *HandleService
	teams       *TeamService
}

func NewRequestService(
	requestRepo repository.RequestRepository,
	authService *AuthService,
	handles *HandleService,
	teams *TeamService,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		authService: authService,
		handles:     handles,
		teams:       teams,
	}
}

type HandleRequestInput struct {
	Passkey string `json:"passkey"`
	Handle  string `json:"handle"`
	Name    string `json:"name"`
	Roll    string `json:"roll"`
	Batch   string `json:"batch"`
}

type TeamRequestInput struct {
	Passkey     string `json:"passkey"`
	TeamName    string `json:"teamName"`
	TeamHandles string `json:"teamHandles"`
}

func (s *RequestService) SubmitHandleRequest(ctx context.Context, input HandleRequestInput) (*model.Request, error) {
	if err := s.checkPasskey(ctx, input.Passkey); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Handle) == "" {
		return nil, fmt.Errorf("handle is required: %w", common.ErrBadRequest)
	}

	request := &model.Request{
		ID:     uuid.NewString(),
		Type:   model.RequestTypeHandle,
		Status: model.RequestStatusPending,
		Handle: strings.TrimSpace(input.Handle),
		Name:   strings.TrimSpace(input.Name),
		Roll:   strings.TrimSpace(input.Roll),
		Batch:  strings.TrimSpace(input.Batch),
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create handle request: %w", err)
	}
	return s.requestRepo.FindByID(ctx, request.ID)
}

func (s *RequestService) SubmitTeamRequest(ctx context.Context, input TeamRequestInput) (*model.Request, error) {
	if err := s.checkPasskey(ctx, input.Passkey); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.TeamName) == "" {
		return nil, fmt.Errorf("team name is required: %w", common.ErrBadRequest)
	}

	request := &model.Request{
		ID:          uuid.NewString(),
		Type:        model.RequestTypeTeam,
		Status:      model.RequestStatusPending,
		TeamName:    strings.TrimSpace(input.TeamName),
		TeamHandles: strings.TrimSpace(input.TeamHandles),
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create team request: %w", err)
	}
	return s.requestRepo.FindByID(ctx, request.ID)
}

func (s *RequestService) List(ctx context.Context, status string) ([]model.Request, error) {
	if status != "" &&
		status != model.RequestStatusPending &&
		status != model.RequestStatusApproved &&
		status != model.RequestStatusRejected {
		return nil, fmt.Errorf("unknown request status %q: %w", status, common.ErrBadRequest)
	}
	return s.requestRepo.List(ctx, status)
}

// Approve marks the request approved and creates the handle or team it
// describes. The record creation happens first so a failure leaves the
// request pending for a retry.
func (s *RequestService) Approve(ctx context.Context, id string) (*model.Request, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != model.RequestStatusPending {
		return nil, fmt.Errorf("request already %s: %w", request.Status, common.ErrConflict)
	}

	switch request.Type {
	case model.RequestTypeHandle:
		_, err = s.handles.Create(ctx, CreateHandleRequest{
			Handle: request.Handle,
			Name:   request.Name,
			Roll:   request.Roll,
			Batch:  request.Batch,
		})
	case model.RequestTypeTeam:
		_, err = s.teams.CreateTeam(ctx, CreateTeamRequest{
			Name:    request.TeamName,
			Aliases: splitHandles(request.TeamHandles),
		})
	default:
		err = fmt.Errorf("unknown request type %q: %w", request.Type, common.ErrBadRequest)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to materialize request: %w", err)
	}

	if err := s.requestRepo.SetStatus(ctx, id, model.RequestStatusApproved, time.Now()); err != nil {
		logger.Error("Request materialized but status update failed", "request_id", id, "error", err)
		return nil, err
	}
	return s.requestRepo.FindByID(ctx, id)
}

func (s *RequestService) Reject(ctx context.Context, id string) (*model.Request, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != model.RequestStatusPending {
		return nil, fmt.Errorf("request already %s: %w", request.Status, common.ErrConflict)
	}
	if err := s.requestRepo.SetStatus(ctx, id, model.RequestStatusRejected, time.Now()); err != nil {
		return nil, err
	}
	return s.requestRepo.FindByID(ctx, id)
}

func (s *RequestService) checkPasskey(ctx context.Context, passkey string) error {
	ok, err := s.authService.VerifyPasskey(ctx, passkey)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("invalid passkey: %w", common.ErrForbidden)
	}
	return nil
}

// splitHandles turns the comma or space separated member list of a team
// request into alias candidates for ranklist matching.
func splitHandles(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	handles := []string{}
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			handles = append(handles, f)
		}
	}
	return handles
}
