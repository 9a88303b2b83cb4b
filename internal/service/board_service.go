package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
	"workpanel-api/internal/dto"
	"workpanel-api/internal/metrics"
	"workpanel-api/internal/repository"
	"workpanel-api/internal/response"
)

// defaultGroupNames seeds the columns of every new board
var defaultGroupNames = []string{"To Do", "Doing", "Done"}

// BoardService defines the interface for board business logic
type BoardService interface {
	CreateBoard(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	GetBoard(ctx context.Context, boardID, userID uuid.UUID) (*dto.BoardResponse, error)
	ListByWorkpanel(ctx context.Context, workpanelID, userID uuid.UUID) ([]*dto.BoardResponse, error)
	ListByTeamRoom(ctx context.Context, teamRoomID, userID uuid.UUID) ([]*dto.BoardResponse, error)
	UpdateBoard(ctx context.Context, boardID, userID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error)
	DeleteBoard(ctx context.Context, boardID, userID uuid.UUID) error
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	boardRepo       repository.BoardRepository
	teamRoomRepo    repository.TeamRoomRepository
	groupRepo       repository.GroupRepository
	roleService     RoleService
	activityService ActivityService
	notifier        BoardNotifier
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	teamRoomRepo repository.TeamRoomRepository,
	groupRepo repository.GroupRepository,
	roleService RoleService,
	activityService ActivityService,
	notifier BoardNotifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		boardRepo:       boardRepo,
		teamRoomRepo:    teamRoomRepo,
		groupRepo:       groupRepo,
		roleService:     roleService,
		activityService: activityService,
		notifier:        notifier,
		metrics:         m,
		logger:          logger,
	}
}

// CreateBoard creates a board with default columns and the caller as manager
func (s *boardServiceImpl) CreateBoard(ctx context.Context, userID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	role, err := s.roleService.ResolveWorkpanelRole(ctx, req.WorkpanelID, userID)
	if err != nil {
		return nil, err
	}
	if role == domain.WorkpanelRoleViewer {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Viewers cannot create boards", "")
	}

	if req.TeamRoomID != nil {
		teamRoom, err := s.teamRoomRepo.FindByID(ctx, *req.TeamRoomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewAppError(response.ErrCodeNotFound, "Team room not found", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify team room", err.Error())
		}
		if teamRoom.WorkpanelID != req.WorkpanelID {
			return nil, response.NewAppError(response.ErrCodeValidation, "Team room belongs to another workpanel", "")
		}
	}

	board := &domain.Board{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		WorkpanelID: req.WorkpanelID,
		TeamRoomID:  req.TeamRoomID,
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
	}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create board", err.Error())
	}

	member := &domain.BoardMember{
		ID:       uuid.New(),
		BoardID:  board.ID,
		UserID:   userID,
		RoleName: domain.BoardRoleManager,
	}
	if err := s.boardRepo.AddMember(ctx, member); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add manager membership", err.Error())
	}

	for i, name := range defaultGroupNames {
		group := &domain.Group{
			BaseModel: domain.BaseModel{ID: uuid.New()},
			BoardID:   board.ID,
			Name:      name,
			Position:  i,
		}
		if err := s.groupRepo.Create(ctx, group); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to seed default groups", err.Error())
		}
	}

	s.metrics.IncrementBoardCreated()
	s.activityService.Record(board.ID, userID, nil, "created the board")
	s.logger.Info("board created",
		zap.String("board_id", board.ID.String()),
		zap.String("workpanel_id", req.WorkpanelID.String()))
	return dto.ToBoardResponse(board), nil
}

// GetBoard returns a board the caller can access
func (s *boardServiceImpl) GetBoard(ctx context.Context, boardID, userID uuid.UUID) (*dto.BoardResponse, error) {
	if _, _, err := s.roleService.ResolveBoardRole(ctx, boardID, userID); err != nil {
		return nil, err
	}

	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load board", err.Error())
	}
	return dto.ToBoardResponse(board), nil
}

// ListByWorkpanel returns the boards of a workpanel the caller can see.
// Private boards are filtered out unless the caller has a role on them.
func (s *boardServiceImpl) ListByWorkpanel(ctx context.Context, workpanelID, userID uuid.UUID) ([]*dto.BoardResponse, error) {
	if _, err := s.roleService.ResolveWorkpanelRole(ctx, workpanelID, userID); err != nil {
		return nil, err
	}

	boards, err := s.boardRepo.FindByWorkpanelID(ctx, workpanelID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list boards", err.Error())
	}
	return s.filterVisible(ctx, boards, userID), nil
}

// ListByTeamRoom returns the visible boards of a team room
func (s *boardServiceImpl) ListByTeamRoom(ctx context.Context, teamRoomID, userID uuid.UUID) ([]*dto.BoardResponse, error) {
	if _, _, err := s.roleService.ResolveTeamRoomRole(ctx, teamRoomID, userID); err != nil {
		return nil, err
	}

	boards, err := s.boardRepo.FindByTeamRoomID(ctx, teamRoomID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list boards", err.Error())
	}
	return s.filterVisible(ctx, boards, userID), nil
}

// filterVisible drops private boards the user has no role on
func (s *boardServiceImpl) filterVisible(ctx context.Context, boards []*domain.Board, userID uuid.UUID) []*dto.BoardResponse {
	responses := make([]*dto.BoardResponse, 0, len(boards))
	for _, board := range boards {
		if board.IsPrivate {
			if _, _, err := s.roleService.ResolveBoardRole(ctx, board.ID, userID); err != nil {
				continue
			}
		}
		responses = append(responses, dto.ToBoardResponse(board))
	}
	return responses
}

// UpdateBoard updates a board's metadata, manager only
func (s *boardServiceImpl) UpdateBoard(ctx context.Context, boardID, userID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	if err := s.roleService.RequireBoardManage(ctx, boardID, userID); err != nil {
		return nil, err
	}

	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load board", err.Error())
	}

	if req.TeamRoomID != nil {
		teamRoom, err := s.teamRoomRepo.FindByID(ctx, *req.TeamRoomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewAppError(response.ErrCodeNotFound, "Team room not found", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify team room", err.Error())
		}
		if teamRoom.WorkpanelID != board.WorkpanelID {
			return nil, response.NewAppError(response.ErrCodeValidation, "Team room belongs to another workpanel", "")
		}
		board.TeamRoomID = req.TeamRoomID
	}
	if req.Name != nil {
		board.Name = *req.Name
	}
	if req.Description != nil {
		board.Description = *req.Description
	}
	if req.IsPrivate != nil {
		board.IsPrivate = *req.IsPrivate
	}

	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update board", err.Error())
	}
	notifyBoard(s.notifier, boardID, userID)
	return dto.ToBoardResponse(board), nil
}

// DeleteBoard deletes a board, manager only
func (s *boardServiceImpl) DeleteBoard(ctx context.Context, boardID, userID uuid.UUID) error {
	if err := s.roleService.RequireBoardManage(ctx, boardID, userID); err != nil {
		return err
	}

	if err := s.boardRepo.Delete(ctx, boardID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete board", err.Error())
	}
	notifyBoard(s.notifier, boardID, userID)
	s.logger.Info("board deleted", zap.String("board_id", boardID.String()))
	return nil
}
