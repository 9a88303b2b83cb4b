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

// TeamRoomService defines the interface for team room business logic
type TeamRoomService interface {
	CreateTeamRoom(ctx context.Context, userID uuid.UUID, req *dto.CreateTeamRoomRequest) (*dto.TeamRoomResponse, error)
	GetTeamRoom(ctx context.Context, teamRoomID, userID uuid.UUID) (*dto.TeamRoomResponse, error)
	ListByWorkpanel(ctx context.Context, workpanelID, userID uuid.UUID) ([]*dto.TeamRoomResponse, error)
	UpdateTeamRoom(ctx context.Context, teamRoomID, userID uuid.UUID, req *dto.UpdateTeamRoomRequest) (*dto.TeamRoomResponse, error)
	DeleteTeamRoom(ctx context.Context, teamRoomID, userID uuid.UUID) error
}

// teamRoomServiceImpl is the implementation of TeamRoomService
type teamRoomServiceImpl struct {
	teamRoomRepo repository.TeamRoomRepository
	boardRepo    repository.BoardRepository
	roleService  RoleService
	logger       *zap.Logger
}

// NewTeamRoomService creates a new instance of TeamRoomService
func NewTeamRoomService(
	teamRoomRepo repository.TeamRoomRepository,
	boardRepo repository.BoardRepository,
	roleService RoleService,
	logger *zap.Logger,
) TeamRoomService {
	return &teamRoomServiceImpl{
		teamRoomRepo: teamRoomRepo,
		boardRepo:    boardRepo,
		roleService:  roleService,
		logger:       logger,
	}
}

// CreateTeamRoom creates a team room with the caller as its manager
func (s *teamRoomServiceImpl) CreateTeamRoom(ctx context.Context, userID uuid.UUID, req *dto.CreateTeamRoomRequest) (*dto.TeamRoomResponse, error) {
	role, err := s.roleService.ResolveWorkpanelRole(ctx, req.WorkpanelID, userID)
	if err != nil {
		return nil, err
	}
	if role == domain.WorkpanelRoleViewer {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Viewers cannot create team rooms", "")
	}

	teamRoom := &domain.TeamRoom{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		WorkpanelID: req.WorkpanelID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.teamRoomRepo.Create(ctx, teamRoom); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create team room", err.Error())
	}

	member := &domain.TeamRoomMember{
		ID:         uuid.New(),
		TeamRoomID: teamRoom.ID,
		UserID:     userID,
		RoleName:   domain.TeamRoomRoleManager,
	}
	if err := s.teamRoomRepo.AddMember(ctx, member); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add manager membership", err.Error())
	}

	s.logger.Info("team room created",
		zap.String("team_room_id", teamRoom.ID.String()),
		zap.String("workpanel_id", req.WorkpanelID.String()))
	return dto.ToTeamRoomResponse(teamRoom), nil
}

// GetTeamRoom returns a team room the caller can access
func (s *teamRoomServiceImpl) GetTeamRoom(ctx context.Context, teamRoomID, userID uuid.UUID) (*dto.TeamRoomResponse, error) {
	if _, _, err := s.roleService.ResolveTeamRoomRole(ctx, teamRoomID, userID); err != nil {
		return nil, err
	}

	teamRoom, err := s.teamRoomRepo.FindByID(ctx, teamRoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Team room not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load team room", err.Error())
	}
	return dto.ToTeamRoomResponse(teamRoom), nil
}

// ListByWorkpanel returns the team rooms of a workpanel
func (s *teamRoomServiceImpl) ListByWorkpanel(ctx context.Context, workpanelID, userID uuid.UUID) ([]*dto.TeamRoomResponse, error) {
	if _, err := s.roleService.ResolveWorkpanelRole(ctx, workpanelID, userID); err != nil {
		return nil, err
	}

	teamRooms, err := s.teamRoomRepo.FindByWorkpanelID(ctx, workpanelID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list team rooms", err.Error())
	}

	responses := make([]*dto.TeamRoomResponse, 0, len(teamRooms))
	for _, teamRoom := range teamRooms {
		responses = append(responses, dto.ToTeamRoomResponse(teamRoom))
	}
	return responses, nil
}

// UpdateTeamRoom updates a team room's metadata, manager only
func (s *teamRoomServiceImpl) UpdateTeamRoom(ctx context.Context, teamRoomID, userID uuid.UUID, req *dto.UpdateTeamRoomRequest) (*dto.TeamRoomResponse, error) {
	role, _, err := s.roleService.ResolveTeamRoomRole(ctx, teamRoomID, userID)
	if err != nil {
		return nil, err
	}
	if role != domain.TeamRoomRoleManager {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only managers can update a team room", "")
	}

	teamRoom, err := s.teamRoomRepo.FindByID(ctx, teamRoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Team room not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load team room", err.Error())
	}

	if req.Name != nil {
		teamRoom.Name = *req.Name
	}
	if req.Description != nil {
		teamRoom.Description = *req.Description
	}
	if err := s.teamRoomRepo.Update(ctx, teamRoom); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update team room", err.Error())
	}
	return dto.ToTeamRoomResponse(teamRoom), nil
}

// DeleteTeamRoom deletes a team room and detaches its boards into
// "Uncategorized" rather than deleting them
func (s *teamRoomServiceImpl) DeleteTeamRoom(ctx context.Context, teamRoomID, userID uuid.UUID) error {
	role, _, err := s.roleService.ResolveTeamRoomRole(ctx, teamRoomID, userID)
	if err != nil {
		return err
	}
	if role != domain.TeamRoomRoleManager {
		return response.NewAppError(response.ErrCodeForbidden, "Only managers can delete a team room", "")
	}

	boards, err := s.boardRepo.FindByTeamRoomID(ctx, teamRoomID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load team room boards", err.Error())
	}
	for _, board := range boards {
		board.TeamRoomID = nil
		if err := s.boardRepo.Update(ctx, board); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to detach board", err.Error())
		}
	}

	if err := s.teamRoomRepo.Delete(ctx, teamRoomID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete team room", err.Error())
	}
	s.logger.Info("team room deleted",
		zap.String("team_room_id", teamRoomID.String()),
		zap.Int("boards_detached", len(boards)))
	return nil
}
