package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"workpanel-api/internal/domain"
)

// WorkpanelRepository defines the interface for workpanel data access
type WorkpanelRepository interface {
	Create(ctx context.Context, workpanel *domain.Workpanel) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Workpanel, error)
	Update(ctx context.Context, workpanel *domain.Workpanel) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, member *domain.WorkpanelMember) error
	FindMember(ctx context.Context, workpanelID, userID uuid.UUID) (*domain.WorkpanelMember, error)
	FindMembers(ctx context.Context, workpanelID uuid.UUID) ([]*domain.WorkpanelMember, error)
	UpdateMemberRole(ctx context.Context, workpanelID, userID uuid.UUID, role domain.WorkpanelRole) error
	RemoveMember(ctx context.Context, workpanelID, userID uuid.UUID) error

	UpsertAccess(ctx context.Context, workpanelID, userID uuid.UUID) error
	RevokeAccess(ctx context.Context, workpanelID, userID uuid.UUID) error
	HasAccess(ctx context.Context, workpanelID, userID uuid.UUID) (bool, error)
	FindAccessibleByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Workpanel, error)
}

// workpanelRepositoryImpl is the GORM implementation of WorkpanelRepository
type workpanelRepositoryImpl struct {
	db *gorm.DB
}

// NewWorkpanelRepository creates a new instance of WorkpanelRepository
func NewWorkpanelRepository(db *gorm.DB) WorkpanelRepository {
	return &workpanelRepositoryImpl{db: db}
}

// Create creates a new workpanel
func (r *workpanelRepositoryImpl) Create(ctx context.Context, workpanel *domain.Workpanel) error {
	return r.db.WithContext(ctx).Create(workpanel).Error
}

// FindByID finds a workpanel by its ID
func (r *workpanelRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Workpanel, error) {
	var workpanel domain.Workpanel
	if err := r.db.WithContext(ctx).First(&workpanel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &workpanel, nil
}

// Update saves changes to a workpanel
func (r *workpanelRepositoryImpl) Update(ctx context.Context, workpanel *domain.Workpanel) error {
	return r.db.WithContext(ctx).Save(workpanel).Error
}

// Delete soft deletes a workpanel
func (r *workpanelRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Workpanel{}, "id = ?", id).Error
}

// AddMember creates a new workpanel membership
func (r *workpanelRepositoryImpl) AddMember(ctx context.Context, member *domain.WorkpanelMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// FindMember finds a member by workpanel and user
func (r *workpanelRepositoryImpl) FindMember(ctx context.Context, workpanelID, userID uuid.UUID) (*domain.WorkpanelMember, error) {
	var member domain.WorkpanelMember
	if err := r.db.WithContext(ctx).
		Where("workpanel_id = ? AND user_id = ?", workpanelID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindMembers finds all members of a workpanel
func (r *workpanelRepositoryImpl) FindMembers(ctx context.Context, workpanelID uuid.UUID) ([]*domain.WorkpanelMember, error) {
	var members []*domain.WorkpanelMember
	if err := r.db.WithContext(ctx).
		Where("workpanel_id = ?", workpanelID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateMemberRole updates a member's role
func (r *workpanelRepositoryImpl) UpdateMemberRole(ctx context.Context, workpanelID, userID uuid.UUID, role domain.WorkpanelRole) error {
	result := r.db.WithContext(ctx).
		Model(&domain.WorkpanelMember{}).
		Where("workpanel_id = ? AND user_id = ?", workpanelID, userID).
		Update("role_name", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RemoveMember removes a member from a workpanel
func (r *workpanelRepositoryImpl) RemoveMember(ctx context.Context, workpanelID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workpanel_id = ? AND user_id = ?", workpanelID, userID).
		Delete(&domain.WorkpanelMember{}).Error
}

// UpsertAccess records an accessible-workpanels index entry, idempotently
func (r *workpanelRepositoryImpl) UpsertAccess(ctx context.Context, workpanelID, userID uuid.UUID) error {
	access := domain.WorkpanelAccess{
		ID:          uuid.New(),
		WorkpanelID: workpanelID,
		UserID:      userID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "workpanel_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&access).Error
}

// RevokeAccess removes an accessible-workpanels index entry
func (r *workpanelRepositoryImpl) RevokeAccess(ctx context.Context, workpanelID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("workpanel_id = ? AND user_id = ?", workpanelID, userID).
		Delete(&domain.WorkpanelAccess{}).Error
}

// HasAccess reports whether the accessible-workpanels index contains the user
func (r *workpanelRepositoryImpl) HasAccess(ctx context.Context, workpanelID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.WorkpanelAccess{}).
		Where("workpanel_id = ? AND user_id = ?", workpanelID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAccessibleByUser lists workpanels present in the user's access index
func (r *workpanelRepositoryImpl) FindAccessibleByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Workpanel, error) {
	var workpanels []*domain.Workpanel
	if err := r.db.WithContext(ctx).
		Joins("JOIN workpanel_access ON workpanel_access.workpanel_id = workpanels.id").
		Where("workpanel_access.user_id = ?", userID).
		Order("workpanels.created_at ASC").
		Find(&workpanels).Error; err != nil {
		return nil, err
	}
	return workpanels, nil
}
