package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
	"workpanel-api/internal/dto"
	"workpanel-api/internal/repository"
	"workpanel-api/internal/response"
)

// BoardViewService materializes the full column structure of a board. The
// view is always rebuilt from the latest stored groups and tasks, never
// patched incrementally, so a fresh read reflects every committed write.
type BoardViewService interface {
	GetBoardView(ctx context.Context, boardID, userID uuid.UUID) (*dto.BoardViewResponse, error)
}

// boardViewServiceImpl is the implementation of BoardViewService
type boardViewServiceImpl struct {
	boardRepo   repository.BoardRepository
	groupRepo   repository.GroupRepository
	taskRepo    repository.TaskRepository
	roleService RoleService
	logger      *zap.Logger
}

// NewBoardViewService creates a new instance of BoardViewService
func NewBoardViewService(
	boardRepo repository.BoardRepository,
	groupRepo repository.GroupRepository,
	taskRepo repository.TaskRepository,
	roleService RoleService,
	logger *zap.Logger,
) BoardViewService {
	return &boardViewServiceImpl{
		boardRepo:   boardRepo,
		groupRepo:   groupRepo,
		taskRepo:    taskRepo,
		roleService: roleService,
		logger:      logger,
	}
}

// GetBoardView returns the materialized columns of a board
func (s *boardViewServiceImpl) GetBoardView(ctx context.Context, boardID, userID uuid.UUID) (*dto.BoardViewResponse, error) {
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

	groups, err := s.groupRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load groups", err.Error())
	}
	tasks, err := s.taskRepo.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load tasks", err.Error())
	}

	taskIDs := make([]uuid.UUID, 0, len(tasks))
	for _, task := range tasks {
		taskIDs = append(taskIDs, task.ID)
	}
	checklist, err := s.taskRepo.FindChecklistItemsByTaskIDs(ctx, taskIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load checklist items", err.Error())
	}

	return &dto.BoardViewResponse{
		BoardID:           board.ID,
		GroupOrderVersion: board.GroupOrderVersion,
		Columns:           BuildColumns(groups, tasks, checklist),
	}, nil
}

// BuildColumns folds a flat snapshot of groups, tasks and checklist items
// into the ordered column structure. Tasks referencing an unknown group are
// dropped rather than surfacing a broken column.
func BuildColumns(groups []*domain.Group, tasks []*domain.Task, checklist []*domain.ChecklistItem) []dto.Column {
	checklistByTask := make(map[uuid.UUID][]*domain.ChecklistItem)
	for _, item := range checklist {
		checklistByTask[item.TaskID] = append(checklistByTask[item.TaskID], item)
	}

	tasksByGroup := make(map[uuid.UUID][]*domain.Task)
	for _, task := range tasks {
		tasksByGroup[task.GroupID] = append(tasksByGroup[task.GroupID], task)
	}

	columns := make([]dto.Column, 0, len(groups))
	for _, group := range groups {
		groupTasks := tasksByGroup[group.ID]
		sort.SliceStable(groupTasks, func(i, j int) bool {
			return groupTasks[i].Position < groupTasks[j].Position
		})

		items := make([]dto.TaskResponse, 0, len(groupTasks))
		for _, task := range groupTasks {
			items = append(items, *toTaskResponse(task, checklistByTask[task.ID]))
		}
		columns = append(columns, dto.Column{
			ID:          group.ID,
			Name:        group.Name,
			Position:    group.Position,
			ListVersion: group.ListVersion,
			Items:       items,
		})
	}

	sort.SliceStable(columns, func(i, j int) bool {
		return columns[i].Position < columns[j].Position
	})
	return columns
}
