package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
)

// ActivityRepository defines the interface for activity log data access
type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.ActivityEntry) error
	FindByBoardID(ctx context.Context, boardID uuid.UUID, page, pageSize int) ([]*domain.ActivityEntry, int64, error)
}

// activityRepositoryImpl is the GORM implementation of ActivityRepository
type activityRepositoryImpl struct {
	db *gorm.DB
}

// NewActivityRepository creates a new instance of ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

// Create appends an activity entry
func (r *activityRepositoryImpl) Create(ctx context.Context, entry *domain.ActivityEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByBoardID returns one page of a board's activity, newest first
func (r *activityRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID, page, pageSize int) ([]*domain.ActivityEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&domain.ActivityEntry{}).
		Where("board_id = ?", boardID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []*domain.ActivityEntry
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
