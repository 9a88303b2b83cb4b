package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
)

// ErrVersionConflict is returned when an order mutation carries a stale
// version token. Callers map it to a 409 so the client can refetch.
var ErrVersionConflict = errors.New("order version conflict")

// ReorderRepository applies drag results atomically. Every mutation runs in
// a single transaction so the board never shows a half-applied order.
type ReorderRepository interface {
	// ApplyColumnOrder rewrites the positions of a board's groups and bumps
	// the board's group order version. positions maps group ID to its new
	// index. If expectedVersion is non-nil and does not match the stored
	// version, nothing is written and ErrVersionConflict is returned.
	ApplyColumnOrder(ctx context.Context, boardID uuid.UUID, positions map[uuid.UUID]int, expectedVersion *int64) error

	// ApplyTaskOrder rewrites task positions, and for cross-group moves the
	// moved task's group, then bumps the list version of every touched
	// group. taskGroups maps a task to its destination group.
	// expectedVersions carries every touched group; a nil value skips the
	// version check for that group.
	ApplyTaskOrder(ctx context.Context, positions map[uuid.UUID]int, taskGroups map[uuid.UUID]uuid.UUID, expectedVersions map[uuid.UUID]*int64) error
}

// reorderRepositoryImpl is the GORM implementation of ReorderRepository
type reorderRepositoryImpl struct {
	db *gorm.DB
}

// NewReorderRepository creates a new instance of ReorderRepository
func NewReorderRepository(db *gorm.DB) ReorderRepository {
	return &reorderRepositoryImpl{db: db}
}

// ApplyColumnOrder rewrites group positions for one board atomically
func (r *reorderRepositoryImpl) ApplyColumnOrder(ctx context.Context, boardID uuid.UUID, positions map[uuid.UUID]int, expectedVersion *int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if expectedVersion != nil {
			var board domain.Board
			if err := tx.Select("group_order_version").
				First(&board, "id = ?", boardID).Error; err != nil {
				return err
			}
			if board.GroupOrderVersion != *expectedVersion {
				return ErrVersionConflict
			}
		}

		for groupID, position := range positions {
			if err := tx.Model(&domain.Group{}).
				Where("id = ? AND board_id = ?", groupID, boardID).
				UpdateColumn("position", position).Error; err != nil {
				return err
			}
		}

		return tx.Model(&domain.Board{}).
			Where("id = ?", boardID).
			UpdateColumn("group_order_version", gorm.Expr("group_order_version + 1")).Error
	})
}

// ApplyTaskOrder rewrites task positions and group assignments atomically
func (r *reorderRepositoryImpl) ApplyTaskOrder(ctx context.Context, positions map[uuid.UUID]int, taskGroups map[uuid.UUID]uuid.UUID, expectedVersions map[uuid.UUID]*int64) error {
	touchedGroups := make(map[uuid.UUID]struct{})
	for groupID := range expectedVersions {
		touchedGroups[groupID] = struct{}{}
	}
	for _, groupID := range taskGroups {
		touchedGroups[groupID] = struct{}{}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for groupID, expected := range expectedVersions {
			if expected == nil {
				continue
			}
			var group domain.Group
			if err := tx.Select("list_version").
				First(&group, "id = ?", groupID).Error; err != nil {
				return err
			}
			if group.ListVersion != *expected {
				return ErrVersionConflict
			}
		}

		for taskID, position := range positions {
			updates := map[string]interface{}{"position": position}
			if groupID, ok := taskGroups[taskID]; ok {
				updates["group_id"] = groupID
			}
			if err := tx.Model(&domain.Task{}).
				Where("id = ?", taskID).
				UpdateColumns(updates).Error; err != nil {
				return err
			}
		}

		for groupID := range touchedGroups {
			if err := tx.Model(&domain.Group{}).
				Where("id = ?", groupID).
				UpdateColumn("list_version", gorm.Expr("list_version + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
