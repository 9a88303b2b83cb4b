package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
)

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Group, error)
	Update(ctx context.Context, group *domain.Group) error

	// CountByBoardID returns the number of live groups on a board,
	// used to append new groups at the end of the column order.
	CountByBoardID(ctx context.Context, boardID uuid.UUID) (int64, error)

	// DeleteCascade removes a group together with all of its tasks in one
	// transaction and closes the hole in the board's column order.
	DeleteCascade(ctx context.Context, groupID uuid.UUID) error
}

// groupRepositoryImpl is the GORM implementation of GroupRepository
type groupRepositoryImpl struct {
	db *gorm.DB
}

// NewGroupRepository creates a new instance of GroupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepositoryImpl{db: db}
}

// Create creates a new group
func (r *groupRepositoryImpl) Create(ctx context.Context, group *domain.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

// FindByID finds a group by its ID
func (r *groupRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	var group domain.Group
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// FindByBoardID finds all groups of a board in column order
func (r *groupRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Group, error) {
	var groups []*domain.Group
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("position ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// Update saves changes to a group
func (r *groupRepositoryImpl) Update(ctx context.Context, group *domain.Group) error {
	return r.db.WithContext(ctx).Save(group).Error
}

// CountByBoardID counts live groups on a board
func (r *groupRepositoryImpl) CountByBoardID(ctx context.Context, boardID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Group{}).
		Where("board_id = ?", boardID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteCascade deletes a group, its tasks and checklist items, then shifts
// later columns left so positions stay dense
func (r *groupRepositoryImpl) DeleteCascade(ctx context.Context, groupID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group domain.Group
		if err := tx.First(&group, "id = ?", groupID).Error; err != nil {
			return err
		}

		var taskIDs []uuid.UUID
		if err := tx.Model(&domain.Task{}).
			Where("group_id = ?", groupID).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).
				Delete(&domain.ChecklistItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("group_id = ?", groupID).
				Delete(&domain.Task{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&group).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.Group{}).
			Where("board_id = ? AND position > ?", group.BoardID, group.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Board{}).
			Where("id = ?", group.BoardID).
			UpdateColumn("group_order_version", gorm.Expr("group_order_version + 1")).Error
	})
}
