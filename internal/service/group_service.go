package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
	"workpanel-api/internal/dto"
	"workpanel-api/internal/repository"
	"workpanel-api/internal/response"
)

// GroupService defines the interface for group (column) business logic
type GroupService interface {
	CreateGroup(ctx context.Context, userID uuid.UUID, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	RenameGroup(ctx context.Context, groupID, userID uuid.UUID, req *dto.RenameGroupRequest) (*dto.GroupResponse, error)
	DeleteGroup(ctx context.Context, groupID, userID uuid.UUID) error
}

// groupServiceImpl is the implementation of GroupService
type groupServiceImpl struct {
	groupRepo       repository.GroupRepository
	roleService     RoleService
	activityService ActivityService
	notifier        BoardNotifier
	logger          *zap.Logger
}

// NewGroupService creates a new instance of GroupService
func NewGroupService(
	groupRepo repository.GroupRepository,
	roleService RoleService,
	activityService ActivityService,
	notifier BoardNotifier,
	logger *zap.Logger,
) GroupService {
	return &groupServiceImpl{
		groupRepo:       groupRepo,
		roleService:     roleService,
		activityService: activityService,
		notifier:        notifier,
		logger:          logger,
	}
}

// CreateGroup appends a new column at the end of the board
func (s *groupServiceImpl) CreateGroup(ctx context.Context, userID uuid.UUID, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	if err := s.roleService.RequireBoardEdit(ctx, req.BoardID, userID); err != nil {
		return nil, err
	}

	count, err := s.groupRepo.CountByBoardID(ctx, req.BoardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count groups", err.Error())
	}

	group := &domain.Group{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		BoardID:   req.BoardID,
		Name:      req.Name,
		Position:  int(count),
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create group", err.Error())
	}

	s.activityService.Record(req.BoardID, userID, nil,
		fmt.Sprintf("added column %q", group.Name))
	notifyBoard(s.notifier, req.BoardID, userID)
	return dto.ToGroupResponse(group), nil
}

// RenameGroup renames a column
func (s *groupServiceImpl) RenameGroup(ctx context.Context, groupID, userID uuid.UUID, req *dto.RenameGroupRequest) (*dto.GroupResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Group not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load group", err.Error())
	}
	if err := s.roleService.RequireBoardEdit(ctx, group.BoardID, userID); err != nil {
		return nil, err
	}

	previous := group.Name
	group.Name = req.Name
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to rename group", err.Error())
	}

	s.activityService.Record(group.BoardID, userID, nil,
		fmt.Sprintf("renamed column %q to %q", previous, group.Name))
	notifyBoard(s.notifier, group.BoardID, userID)
	return dto.ToGroupResponse(group), nil
}

// DeleteGroup removes a column and every task in it
func (s *groupServiceImpl) DeleteGroup(ctx context.Context, groupID, userID uuid.UUID) error {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Group not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load group", err.Error())
	}
	if err := s.roleService.RequireBoardEdit(ctx, group.BoardID, userID); err != nil {
		return err
	}

	if err := s.groupRepo.DeleteCascade(ctx, groupID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete group", err.Error())
	}

	s.activityService.Record(group.BoardID, userID, nil,
		fmt.Sprintf("deleted column %q", group.Name))
	notifyBoard(s.notifier, group.BoardID, userID)
	s.logger.Info("group deleted",
		zap.String("group_id", groupID.String()),
		zap.String("board_id", group.BoardID.String()))
	return nil
}
