package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]*domain.Task, error)
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	CountByGroupID(ctx context.Context, groupID uuid.UUID) (int64, error)

	// DeleteCascade removes a task with its checklist items and closes the
	// hole in the group's list order.
	DeleteCascade(ctx context.Context, taskID uuid.UUID) error

	CreateChecklistItem(ctx context.Context, item *domain.ChecklistItem) error
	FindChecklistItems(ctx context.Context, taskID uuid.UUID) ([]*domain.ChecklistItem, error)
	FindChecklistItemsByTaskIDs(ctx context.Context, taskIDs []uuid.UUID) ([]*domain.ChecklistItem, error)
	UpdateChecklistItem(ctx context.Context, item *domain.ChecklistItem) error
	DeleteChecklistItem(ctx context.Context, itemID uuid.UUID) error
}

// taskRepositoryImpl is the GORM implementation of TaskRepository
type taskRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepositoryImpl{db: db}
}

// Create creates a new task
func (r *taskRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by its ID
func (r *taskRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByGroupID finds the tasks of a group in list order
func (r *taskRepositoryImpl) FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("position ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByBoardID finds all tasks on a board in group then list order
func (r *taskRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("group_id ASC, position ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves changes to a task
func (r *taskRepositoryImpl) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// CountByGroupID counts live tasks in a group
func (r *taskRepositoryImpl) CountByGroupID(ctx context.Context, groupID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("group_id = ?", groupID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteCascade deletes a task and its checklist items, then shifts later
// tasks up so positions stay dense
func (r *taskRepositoryImpl) DeleteCascade(ctx context.Context, taskID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task domain.Task
		if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", taskID).
			Delete(&domain.ChecklistItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&task).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.Task{}).
			Where("group_id = ? AND position > ?", task.GroupID, task.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Group{}).
			Where("id = ?", task.GroupID).
			UpdateColumn("list_version", gorm.Expr("list_version + 1")).Error
	})
}

// CreateChecklistItem creates a checklist item on a task
func (r *taskRepositoryImpl) CreateChecklistItem(ctx context.Context, item *domain.ChecklistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindChecklistItems finds a task's checklist items in order
func (r *taskRepositoryImpl) FindChecklistItems(ctx context.Context, taskID uuid.UUID) ([]*domain.ChecklistItem, error) {
	var items []*domain.ChecklistItem
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("position ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindChecklistItemsByTaskIDs finds checklist items for a set of tasks
func (r *taskRepositoryImpl) FindChecklistItemsByTaskIDs(ctx context.Context, taskIDs []uuid.UUID) ([]*domain.ChecklistItem, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}
	var items []*domain.ChecklistItem
	if err := r.db.WithContext(ctx).
		Where("task_id IN ?", taskIDs).
		Order("position ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateChecklistItem saves changes to a checklist item
func (r *taskRepositoryImpl) UpdateChecklistItem(ctx context.Context, item *domain.ChecklistItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteChecklistItem removes a checklist item
func (r *taskRepositoryImpl) DeleteChecklistItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ChecklistItem{}, "id = ?", itemID).Error
}
