package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
)

// AttachmentRepository defines the interface for attachment data access
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.Attachment, error)
	Update(ctx context.Context, attachment *domain.Attachment) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindStaleTemp finds TEMP attachments older than the cutoff, for the
	// orphan sweep.
	FindStaleTemp(ctx context.Context, cutoff time.Time) ([]*domain.Attachment, error)

	RecordOrphan(ctx context.Context, orphan *domain.OrphanedObject) error
	FindOrphans(ctx context.Context, limit int) ([]*domain.OrphanedObject, error)
	DeleteOrphan(ctx context.Context, id uuid.UUID) error
}

// attachmentRepositoryImpl is the GORM implementation of AttachmentRepository
type attachmentRepositoryImpl struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new instance of AttachmentRepository
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepositoryImpl{db: db}
}

// Create creates a new attachment record
func (r *attachmentRepositoryImpl) Create(ctx context.Context, attachment *domain.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

// FindByID finds an attachment by its ID
func (r *attachmentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	var attachment domain.Attachment
	if err := r.db.WithContext(ctx).First(&attachment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// FindByTaskID finds a task's confirmed attachments
func (r *attachmentRepositoryImpl) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.Attachment, error) {
	var attachments []*domain.Attachment
	if err := r.db.WithContext(ctx).
		Where("task_id = ? AND status = ?", taskID, domain.AttachmentStatusConfirmed).
		Order("created_at ASC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// Update saves changes to an attachment
func (r *attachmentRepositoryImpl) Update(ctx context.Context, attachment *domain.Attachment) error {
	return r.db.WithContext(ctx).Save(attachment).Error
}

// Delete removes an attachment record
func (r *attachmentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Attachment{}, "id = ?", id).Error
}

// FindStaleTemp finds TEMP attachments created before the cutoff
func (r *attachmentRepositoryImpl) FindStaleTemp(ctx context.Context, cutoff time.Time) ([]*domain.Attachment, error) {
	var attachments []*domain.Attachment
	if err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", domain.AttachmentStatusTemp, cutoff).
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// RecordOrphan records a storage object left behind by a metadata-first delete
func (r *attachmentRepositoryImpl) RecordOrphan(ctx context.Context, orphan *domain.OrphanedObject) error {
	return r.db.WithContext(ctx).Create(orphan).Error
}

// FindOrphans lists recorded orphaned objects for the sweep
func (r *attachmentRepositoryImpl) FindOrphans(ctx context.Context, limit int) ([]*domain.OrphanedObject, error) {
	var orphans []*domain.OrphanedObject
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Limit(limit).
		Find(&orphans).Error; err != nil {
		return nil, err
	}
	return orphans, nil
}

// DeleteOrphan removes an orphan record after its object is gone
func (r *attachmentRepositoryImpl) DeleteOrphan(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.OrphanedObject{}, "id = ?", id).Error
}
