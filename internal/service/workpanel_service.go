package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
	"workpanel-api/internal/dto"
	"workpanel-api/internal/repository"
	"workpanel-api/internal/response"
)

// WorkpanelService defines the interface for workpanel business logic
type WorkpanelService interface {
	CreateWorkpanel(ctx context.Context, userID uuid.UUID, req *dto.CreateWorkpanelRequest) (*dto.WorkpanelResponse, error)
	GetWorkpanel(ctx context.Context, workpanelID, userID uuid.UUID) (*dto.WorkpanelResponse, error)
	ListAccessible(ctx context.Context, userID uuid.UUID) ([]*dto.AccessibleWorkpanelResponse, error)
	UpdateWorkpanel(ctx context.Context, workpanelID, userID uuid.UUID, req *dto.UpdateWorkpanelRequest) (*dto.WorkpanelResponse, error)
	DeleteWorkpanel(ctx context.Context, workpanelID, userID uuid.UUID) error
}

// workpanelServiceImpl is the implementation of WorkpanelService
type workpanelServiceImpl struct {
	workpanelRepo repository.WorkpanelRepository
	roleService   RoleService
	logger        *zap.Logger
}

// NewWorkpanelService creates a new instance of WorkpanelService
func NewWorkpanelService(
	workpanelRepo repository.WorkpanelRepository,
	roleService RoleService,
	logger *zap.Logger,
) WorkpanelService {
	return &workpanelServiceImpl{
		workpanelRepo: workpanelRepo,
		roleService:   roleService,
		logger:        logger,
	}
}

// CreateWorkpanel creates a workpanel with the caller as its owner
func (s *workpanelServiceImpl) CreateWorkpanel(ctx context.Context, userID uuid.UUID, req *dto.CreateWorkpanelRequest) (*dto.WorkpanelResponse, error) {
	workpanel := &domain.Workpanel{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.workpanelRepo.Create(ctx, workpanel); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create workpanel", err.Error())
	}

	member := &domain.WorkpanelMember{
		ID:          uuid.New(),
		WorkpanelID: workpanel.ID,
		UserID:      userID,
		RoleName:    domain.WorkpanelRoleOwner,
	}
	if err := s.workpanelRepo.AddMember(ctx, member); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add owner membership", err.Error())
	}
	if err := s.roleService.GrantAccessPath(ctx, workpanel.ID, userID); err != nil {
		return nil, err
	}

	s.logger.Info("workpanel created",
		zap.String("workpanel_id", workpanel.ID.String()),
		zap.String("owner_id", userID.String()))
	return dto.ToWorkpanelResponse(workpanel), nil
}

// GetWorkpanel returns a workpanel the caller is a member of
func (s *workpanelServiceImpl) GetWorkpanel(ctx context.Context, workpanelID, userID uuid.UUID) (*dto.WorkpanelResponse, error) {
	if _, err := s.roleService.ResolveWorkpanelRole(ctx, workpanelID, userID); err != nil {
		return nil, err
	}

	workpanel, err := s.workpanelRepo.FindByID(ctx, workpanelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Workpanel not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load workpanel", err.Error())
	}
	return dto.ToWorkpanelResponse(workpanel), nil
}

// ListAccessible returns every workpanel in the caller's access index with
// the caller's effective role in each
func (s *workpanelServiceImpl) ListAccessible(ctx context.Context, userID uuid.UUID) ([]*dto.AccessibleWorkpanelResponse, error) {
	workpanels, err := s.workpanelRepo.FindAccessibleByUser(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list accessible workpanels", err.Error())
	}

	responses := make([]*dto.AccessibleWorkpanelResponse, 0, len(workpanels))
	for _, workpanel := range workpanels {
		entry := &dto.AccessibleWorkpanelResponse{
			ID:      workpanel.ID,
			Name:    workpanel.Name,
			IsOwner: workpanel.OwnerID == userID,
		}
		// Indexed without direct membership means team-room-only or
		// board-only access.
		role, err := s.roleService.ResolveWorkpanelRole(ctx, workpanel.ID, userID)
		if err == nil {
			entry.EffectiveRole = string(role)
		} else {
			entry.EffectiveRole = string(domain.WorkpanelRoleViewer)
		}
		responses = append(responses, entry)
	}
	return responses, nil
}

// UpdateWorkpanel updates a workpanel's metadata, owner or admin only
func (s *workpanelServiceImpl) UpdateWorkpanel(ctx context.Context, workpanelID, userID uuid.UUID, req *dto.UpdateWorkpanelRequest) (*dto.WorkpanelResponse, error) {
	role, err := s.roleService.ResolveWorkpanelRole(ctx, workpanelID, userID)
	if err != nil {
		return nil, err
	}
	if role != domain.WorkpanelRoleOwner && role != domain.WorkpanelRoleAdmin {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Insufficient role to update this workpanel", "")
	}

	workpanel, err := s.workpanelRepo.FindByID(ctx, workpanelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Workpanel not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load workpanel", err.Error())
	}

	if req.Name != nil {
		workpanel.Name = *req.Name
	}
	if req.Description != nil {
		workpanel.Description = *req.Description
	}
	if err := s.workpanelRepo.Update(ctx, workpanel); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update workpanel", err.Error())
	}
	return dto.ToWorkpanelResponse(workpanel), nil
}

// DeleteWorkpanel deletes a workpanel, owner only
func (s *workpanelServiceImpl) DeleteWorkpanel(ctx context.Context, workpanelID, userID uuid.UUID) error {
	role, err := s.roleService.ResolveWorkpanelRole(ctx, workpanelID, userID)
	if err != nil {
		return err
	}
	if role != domain.WorkpanelRoleOwner {
		return response.NewAppError(response.ErrCodeForbidden, "Only the owner can delete a workpanel", "")
	}

	if err := s.workpanelRepo.Delete(ctx, workpanelID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete workpanel", err.Error())
	}
	s.logger.Info("workpanel deleted", zap.String("workpanel_id", workpanelID.String()))
	return nil
}
