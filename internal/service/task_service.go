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

// TaskService defines the interface for task business logic
type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetTask(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskResponse, error)
	UpdateTask(ctx context.Context, taskID, userID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, taskID, userID uuid.UUID) error

	AddChecklistItem(ctx context.Context, taskID, userID uuid.UUID, req *dto.ChecklistItemRequest) (*dto.ChecklistItemResponse, error)
	ToggleChecklistItem(ctx context.Context, taskID, itemID, userID uuid.UUID) (*dto.ChecklistItemResponse, error)
	DeleteChecklistItem(ctx context.Context, taskID, itemID, userID uuid.UUID) error
}

// taskServiceImpl is the implementation of TaskService
type taskServiceImpl struct {
	taskRepo            repository.TaskRepository
	groupRepo           repository.GroupRepository
	commentRepo         repository.CommentRepository
	attachmentRepo      repository.AttachmentRepository
	roleService         RoleService
	activityService     ActivityService
	notificationService NotificationService
	notifier            BoardNotifier
	metrics             *metrics.Metrics
	logger              *zap.Logger
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	groupRepo repository.GroupRepository,
	commentRepo repository.CommentRepository,
	attachmentRepo repository.AttachmentRepository,
	roleService RoleService,
	activityService ActivityService,
	notificationService NotificationService,
	notifier BoardNotifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) TaskService {
	return &taskServiceImpl{
		taskRepo:            taskRepo,
		groupRepo:           groupRepo,
		commentRepo:         commentRepo,
		attachmentRepo:      attachmentRepo,
		roleService:         roleService,
		activityService:     activityService,
		notificationService: notificationService,
		notifier:            notifier,
		metrics:             m,
		logger:              logger,
	}
}

// CreateTask appends a task at the end of its group
func (s *taskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Group not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load group", err.Error())
	}
	if err := s.roleService.RequireBoardEdit(ctx, group.BoardID, userID); err != nil {
		return nil, err
	}

	priority := domain.TaskPriorityMedium
	if req.Priority != "" {
		parsed, ok := domain.ParseTaskPriority(req.Priority)
		if !ok {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid priority", req.Priority)
		}
		priority = parsed
	}

	count, err := s.taskRepo.CountByGroupID(ctx, req.GroupID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count tasks", err.Error())
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	assignees := req.Assignees
	if assignees == nil {
		assignees = []uuid.UUID{}
	}

	task := &domain.Task{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		GroupID:     req.GroupID,
		BoardID:     group.BoardID,
		Content:     req.Content,
		Description: req.Description,
		Priority:    priority,
		DueDate:     req.DueDate,
		Position:    int(count),
		Tags:        encodeJSON(tags),
		Assignees:   encodeJSON(assignees),
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create task", err.Error())
	}

	s.metrics.IncrementTaskCreated()
	taskID := task.ID
	s.activityService.Record(group.BoardID, userID, &taskID,
		fmt.Sprintf("added task %q to %q", task.Content, group.Name))
	for _, assignee := range assignees {
		if assignee != userID {
			s.notificationService.Notify(assignee,
				fmt.Sprintf("You were assigned to %q", task.Content),
				fmt.Sprintf("/boards/%s/tasks/%s", task.BoardID, task.ID))
		}
	}
	notifyBoard(s.notifier, task.BoardID, userID)

	return toTaskResponse(task, nil), nil
}

// GetTask returns a task with its checklist
func (s *taskServiceImpl) GetTask(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.roleService.ResolveBoardRole(ctx, task.BoardID, userID); err != nil {
		return nil, err
	}

	checklist, err := s.taskRepo.FindChecklistItems(ctx, taskID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load checklist", err.Error())
	}
	return toTaskResponse(task, checklist), nil
}

// UpdateTask updates a task's metadata. Position and group never change
// here; moves go through the reorder path.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, taskID, userID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.roleService.RequireBoardEdit(ctx, task.BoardID, userID); err != nil {
		return nil, err
	}

	previousAssignees := decodeAssignees(task.Assignees)

	if req.Content != nil {
		task.Content = *req.Content
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		priority, ok := domain.ParseTaskPriority(*req.Priority)
		if !ok {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid priority", *req.Priority)
		}
		task.Priority = priority
	}
	if req.ClearDue {
		task.DueDate = nil
	} else if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Tags != nil {
		task.Tags = encodeJSON(*req.Tags)
	}
	if req.Assignees != nil {
		task.Assignees = encodeJSON(*req.Assignees)
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update task", err.Error())
	}

	id := task.ID
	s.activityService.Record(task.BoardID, userID, &id,
		fmt.Sprintf("updated task %q", task.Content))
	if req.Assignees != nil {
		s.notifyNewAssignees(task, userID, previousAssignees, *req.Assignees)
	}
	notifyBoard(s.notifier, task.BoardID, userID)

	checklist, err := s.taskRepo.FindChecklistItems(ctx, taskID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load checklist", err.Error())
	}
	return toTaskResponse(task, checklist), nil
}

// notifyNewAssignees notifies users assigned by this update
func (s *taskServiceImpl) notifyNewAssignees(task *domain.Task, actorID uuid.UUID, previous, current []uuid.UUID) {
	known := make(map[uuid.UUID]struct{}, len(previous))
	for _, id := range previous {
		known[id] = struct{}{}
	}
	for _, assignee := range current {
		if _, ok := known[assignee]; ok || assignee == actorID {
			continue
		}
		s.notificationService.Notify(assignee,
			fmt.Sprintf("You were assigned to %q", task.Content),
			fmt.Sprintf("/boards/%s/tasks/%s", task.BoardID, task.ID))
	}
}

// DeleteTask removes a task with its checklist, comments and attachment
// metadata. Attachment objects are left to the orphan sweep.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID, userID uuid.UUID) error {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.roleService.RequireBoardEdit(ctx, task.BoardID, userID); err != nil {
		return err
	}

	attachments, err := s.attachmentRepo.FindByTaskID(ctx, taskID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load attachments", err.Error())
	}
	for _, attachment := range attachments {
		orphan := &domain.OrphanedObject{ID: uuid.New(), FileKey: attachment.FileKey}
		if err := s.attachmentRepo.RecordOrphan(ctx, orphan); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to record orphaned object", err.Error())
		}
		if err := s.attachmentRepo.Delete(ctx, attachment.ID); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to delete attachment", err.Error())
		}
	}

	if err := s.commentRepo.DeleteByTaskID(ctx, taskID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete comments", err.Error())
	}
	if err := s.taskRepo.DeleteCascade(ctx, taskID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete task", err.Error())
	}

	id := task.ID
	s.activityService.Record(task.BoardID, userID, &id,
		fmt.Sprintf("deleted task %q", task.Content))
	notifyBoard(s.notifier, task.BoardID, userID)
	return nil
}

// AddChecklistItem appends a checklist item to a task
func (s *taskServiceImpl) AddChecklistItem(ctx context.Context, taskID, userID uuid.UUID, req *dto.ChecklistItemRequest) (*dto.ChecklistItemResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.roleService.RequireBoardEdit(ctx, task.BoardID, userID); err != nil {
		return nil, err
	}

	existing, err := s.taskRepo.FindChecklistItems(ctx, taskID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load checklist", err.Error())
	}

	item := &domain.ChecklistItem{
		ID:       uuid.New(),
		TaskID:   taskID,
		Text:     req.Text,
		Position: len(existing),
	}
	if err := s.taskRepo.CreateChecklistItem(ctx, item); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add checklist item", err.Error())
	}
	notifyBoard(s.notifier, task.BoardID, userID)

	resp := toChecklistItemResponse(item)
	return &resp, nil
}

// ToggleChecklistItem flips a checklist item's completed flag
func (s *taskServiceImpl) ToggleChecklistItem(ctx context.Context, taskID, itemID, userID uuid.UUID) (*dto.ChecklistItemResponse, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.roleService.RequireBoardEdit(ctx, task.BoardID, userID); err != nil {
		return nil, err
	}

	items, err := s.taskRepo.FindChecklistItems(ctx, taskID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load checklist", err.Error())
	}
	for _, item := range items {
		if item.ID == itemID {
			item.Completed = !item.Completed
			if err := s.taskRepo.UpdateChecklistItem(ctx, item); err != nil {
				return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update checklist item", err.Error())
			}
			notifyBoard(s.notifier, task.BoardID, userID)
			resp := toChecklistItemResponse(item)
			return &resp, nil
		}
	}
	return nil, response.NewAppError(response.ErrCodeNotFound, "Checklist item not found", "")
}

// DeleteChecklistItem removes a checklist item
func (s *taskServiceImpl) DeleteChecklistItem(ctx context.Context, taskID, itemID, userID uuid.UUID) error {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.roleService.RequireBoardEdit(ctx, task.BoardID, userID); err != nil {
		return err
	}

	if err := s.taskRepo.DeleteChecklistItem(ctx, itemID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete checklist item", err.Error())
	}
	notifyBoard(s.notifier, task.BoardID, userID)
	return nil
}

// findTask loads a task, mapping not-found to an AppError
func (s *taskServiceImpl) findTask(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Task not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load task", err.Error())
	}
	return task, nil
}
