package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"workpanel-api/internal/domain"
	"workpanel-api/internal/dto"
	"workpanel-api/internal/repository"
	"workpanel-api/internal/response"
)

// ActivityService appends and reads the per-board activity log. Record is
// fire-and-forget: a failed append is logged and never fails the operation
// that produced it.
type ActivityService interface {
	Record(boardID, actorID uuid.UUID, taskID *uuid.UUID, message string)
	GetBoardActivity(ctx context.Context, boardID, userID uuid.UUID, page, pageSize int) (*dto.PaginatedActivityResponse, error)
}

// activityServiceImpl is the implementation of ActivityService
type activityServiceImpl struct {
	activityRepo repository.ActivityRepository
	roleService  RoleService
	logger       *zap.Logger
}

// NewActivityService creates a new instance of ActivityService
func NewActivityService(
	activityRepo repository.ActivityRepository,
	roleService RoleService,
	logger *zap.Logger,
) ActivityService {
	return &activityServiceImpl{
		activityRepo: activityRepo,
		roleService:  roleService,
		logger:       logger,
	}
}

// Record appends an activity entry in the background. The write uses its own
// context so it survives the request that triggered it.
func (s *activityServiceImpl) Record(boardID, actorID uuid.UUID, taskID *uuid.UUID, message string) {
	entry := &domain.ActivityEntry{
		ID:      uuid.New(),
		BoardID: boardID,
		ActorID: actorID,
		TaskID:  taskID,
		Message: message,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.activityRepo.Create(ctx, entry); err != nil {
			s.logger.Warn("failed to record activity entry",
				zap.String("board_id", boardID.String()),
				zap.Error(err))
		}
	}()
}

// GetBoardActivity returns one page of a board's activity, newest first
func (s *activityServiceImpl) GetBoardActivity(ctx context.Context, boardID, userID uuid.UUID, page, pageSize int) (*dto.PaginatedActivityResponse, error) {
	if _, _, err := s.roleService.ResolveBoardRole(ctx, boardID, userID); err != nil {
		return nil, err
	}

	entries, total, err := s.activityRepo.FindByBoardID(ctx, boardID, page, pageSize)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load activity", err.Error())
	}

	resp := &dto.PaginatedActivityResponse{
		Entries: make([]dto.ActivityEntryResponse, 0, len(entries)),
		Total:   total,
		Page:    page,
		HasMore: int64(page*pageSize) < total,
	}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, *dto.ToActivityEntryResponse(entry))
	}
	return resp, nil
}
