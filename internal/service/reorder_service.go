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
	"workpanel-api/internal/metrics"
	"workpanel-api/internal/repository"
	"workpanel-api/internal/response"
)

// ReorderService reconciles drag gestures into committed order mutations.
//
// Every committed move leaves positions dense: after any mutation the groups
// of a board are numbered 0..n-1 and so are the tasks of every group. The
// whole gesture commits in one transaction or not at all; a stale version
// token aborts with a conflict instead of last-write-wins.
type ReorderService interface {
	Move(ctx context.Context, boardID, userID uuid.UUID, req *dto.MoveRequest) (*dto.MoveResponse, error)
}

// reorderServiceImpl is the implementation of ReorderService
type reorderServiceImpl struct {
	boardRepo       repository.BoardRepository
	groupRepo       repository.GroupRepository
	taskRepo        repository.TaskRepository
	reorderRepo     repository.ReorderRepository
	roleService     RoleService
	activityService ActivityService
	notifier        BoardNotifier
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewReorderService creates a new instance of ReorderService
func NewReorderService(
	boardRepo repository.BoardRepository,
	groupRepo repository.GroupRepository,
	taskRepo repository.TaskRepository,
	reorderRepo repository.ReorderRepository,
	roleService RoleService,
	activityService ActivityService,
	notifier BoardNotifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) ReorderService {
	return &reorderServiceImpl{
		boardRepo:       boardRepo,
		groupRepo:       groupRepo,
		taskRepo:        taskRepo,
		reorderRepo:     reorderRepo,
		roleService:     roleService,
		activityService: activityService,
		notifier:        notifier,
		metrics:         m,
		logger:          logger,
	}
}

// Move applies one drag gesture to the board
func (s *reorderServiceImpl) Move(ctx context.Context, boardID, userID uuid.UUID, req *dto.MoveRequest) (*dto.MoveResponse, error) {
	if err := s.roleService.RequireBoardEdit(ctx, boardID, userID); err != nil {
		return nil, err
	}

	// Cancelled drag: nothing moved, nothing written.
	if req.Destination == nil {
		return &dto.MoveResponse{Committed: false}, nil
	}

	switch req.Kind {
	case dto.DragKindColumn:
		return s.moveColumn(ctx, boardID, userID, req)
	case dto.DragKindTask:
		return s.moveTask(ctx, boardID, userID, req)
	default:
		return nil, response.NewAppError(response.ErrCodeValidation, "Unknown drag kind", string(req.Kind))
	}
}

// moveColumn reorders a board's groups
func (s *reorderServiceImpl) moveColumn(ctx context.Context, boardID, userID uuid.UUID, req *dto.MoveRequest) (*dto.MoveResponse, error) {
	groups, err := s.groupRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load groups", err.Error())
	}
	if req.SourceIndex < 0 || req.SourceIndex >= len(groups) {
		return nil, response.NewAppError(response.ErrCodeValidation, "Source index out of range", "")
	}

	destIndex := clamp(req.Destination.Index, 0, len(groups)-1)
	if destIndex == req.SourceIndex {
		return &dto.MoveResponse{Committed: false}, nil
	}

	reordered := moveElement(groups, req.SourceIndex, destIndex)
	positions := make(map[uuid.UUID]int, len(reordered))
	for i, group := range reordered {
		positions[group.ID] = i
	}

	if err := s.reorderRepo.ApplyColumnOrder(ctx, boardID, positions, req.OrderVersion); err != nil {
		return nil, s.mapReorderError(err, boardID)
	}
	s.metrics.IncrementGroupReordered()

	moved := groups[req.SourceIndex]
	s.activityService.Record(boardID, userID, nil,
		fmt.Sprintf("moved column %q to position %d", moved.Name, destIndex))
	notifyBoard(s.notifier, boardID, userID)

	fresh, err := s.groupRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to reload groups", err.Error())
	}
	resp := &dto.MoveResponse{Committed: true}
	for _, group := range fresh {
		resp.ChangedGroups = append(resp.ChangedGroups, *dto.ToGroupResponse(group))
	}
	return resp, nil
}

// moveTask moves a task within its group or into another group
func (s *reorderServiceImpl) moveTask(ctx context.Context, boardID, userID uuid.UUID, req *dto.MoveRequest) (*dto.MoveResponse, error) {
	sourceGroup, err := s.findBoardGroup(ctx, boardID, req.SourceGroupID)
	if err != nil {
		return nil, err
	}

	sourceTasks, err := s.taskRepo.FindByGroupID(ctx, sourceGroup.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load tasks", err.Error())
	}
	if req.SourceIndex < 0 || req.SourceIndex >= len(sourceTasks) {
		return nil, response.NewAppError(response.ErrCodeValidation, "Source index out of range", "")
	}
	moved := sourceTasks[req.SourceIndex]

	positions := make(map[uuid.UUID]int)
	taskGroups := make(map[uuid.UUID]uuid.UUID)
	expectedVersions := map[uuid.UUID]*int64{sourceGroup.ID: req.SourceListVersion}

	sameGroup := req.Destination.GroupID == sourceGroup.ID
	if sameGroup {
		destIndex := clamp(req.Destination.Index, 0, len(sourceTasks)-1)
		if destIndex == req.SourceIndex {
			return &dto.MoveResponse{Committed: false}, nil
		}
		for i, task := range moveElement(sourceTasks, req.SourceIndex, destIndex) {
			positions[task.ID] = i
		}
	} else {
		destGroup, err := s.findBoardGroup(ctx, boardID, req.Destination.GroupID)
		if err != nil {
			return nil, err
		}
		destTasks, err := s.taskRepo.FindByGroupID(ctx, destGroup.ID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load tasks", err.Error())
		}

		remaining := append([]*domain.Task{}, sourceTasks[:req.SourceIndex]...)
		remaining = append(remaining, sourceTasks[req.SourceIndex+1:]...)
		for i, task := range remaining {
			positions[task.ID] = i
		}

		destIndex := clamp(req.Destination.Index, 0, len(destTasks))
		inserted := append([]*domain.Task{}, destTasks[:destIndex]...)
		inserted = append(inserted, moved)
		inserted = append(inserted, destTasks[destIndex:]...)
		for i, task := range inserted {
			positions[task.ID] = i
		}

		taskGroups[moved.ID] = destGroup.ID
		expectedVersions[destGroup.ID] = req.DestListVersion
	}

	if err := s.reorderRepo.ApplyTaskOrder(ctx, positions, taskGroups, expectedVersions); err != nil {
		return nil, s.mapReorderError(err, boardID)
	}
	s.metrics.IncrementTaskMoved()

	taskID := moved.ID
	s.activityService.Record(boardID, userID, &taskID,
		fmt.Sprintf("moved task %q", moved.Content))
	notifyBoard(s.notifier, boardID, userID)

	return s.buildTaskMoveResponse(ctx, sourceGroup.ID, req.Destination.GroupID, sameGroup)
}

// findBoardGroup loads a group and checks it belongs to the board
func (s *reorderServiceImpl) findBoardGroup(ctx context.Context, boardID, groupID uuid.UUID) (*domain.Group, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Group not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load group", err.Error())
	}
	if group.BoardID != boardID {
		return nil, response.NewAppError(response.ErrCodeValidation, "Group does not belong to this board", "")
	}
	return group, nil
}

// buildTaskMoveResponse reloads the touched groups and their tasks
func (s *reorderServiceImpl) buildTaskMoveResponse(ctx context.Context, sourceGroupID, destGroupID uuid.UUID, sameGroup bool) (*dto.MoveResponse, error) {
	resp := &dto.MoveResponse{Committed: true}

	groupIDs := []uuid.UUID{sourceGroupID}
	if !sameGroup {
		groupIDs = append(groupIDs, destGroupID)
	}
	for _, groupID := range groupIDs {
		group, err := s.groupRepo.FindByID(ctx, groupID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to reload group", err.Error())
		}
		resp.ChangedGroups = append(resp.ChangedGroups, *dto.ToGroupResponse(group))

		tasks, err := s.taskRepo.FindByGroupID(ctx, groupID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to reload tasks", err.Error())
		}
		for _, task := range tasks {
			resp.ChangedTasks = append(resp.ChangedTasks, *toTaskResponse(task, nil))
		}
	}
	return resp, nil
}

// mapReorderError converts repository errors from an order mutation
func (s *reorderServiceImpl) mapReorderError(err error, boardID uuid.UUID) error {
	if errors.Is(err, repository.ErrVersionConflict) {
		s.metrics.IncrementReorderConflict()
		s.logger.Info("reorder aborted on stale version",
			zap.String("board_id", boardID.String()))
		return response.NewAppError(response.ErrCodeVersionConflict, "Board changed since the drag started, refetch and retry", "")
	}
	return response.NewAppError(response.ErrCodeInternal, "Failed to apply reorder", err.Error())
}

// clamp bounds v to [lo, hi]
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// moveElement returns a new slice with the element at from moved to to
func moveElement[T any](items []T, from, to int) []T {
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)

	tail := append([]T{}, out[to:]...)
	out = append(out[:to], items[from])
	out = append(out, tail...)
	return out
}
