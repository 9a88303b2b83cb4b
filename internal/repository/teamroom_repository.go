package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
)

// TeamRoomRepository defines the interface for team room data access
type TeamRoomRepository interface {
	Create(ctx context.Context, teamRoom *domain.TeamRoom) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.TeamRoom, error)
	FindByWorkpanelID(ctx context.Context, workpanelID uuid.UUID) ([]*domain.TeamRoom, error)
	Update(ctx context.Context, teamRoom *domain.TeamRoom) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, member *domain.TeamRoomMember) error
	FindMember(ctx context.Context, teamRoomID, userID uuid.UUID) (*domain.TeamRoomMember, error)
	FindMembers(ctx context.Context, teamRoomID uuid.UUID) ([]*domain.TeamRoomMember, error)
	UpdateMemberRole(ctx context.Context, teamRoomID, userID uuid.UUID, role domain.TeamRoomRole) error
	RemoveMember(ctx context.Context, teamRoomID, userID uuid.UUID) error

	// CountUserMemberships counts the user's direct team room memberships
	// within a workpanel, optionally excluding one room. Used by the role
	// resolver's last-access-path check.
	CountUserMemberships(ctx context.Context, workpanelID, userID uuid.UUID, exclude *uuid.UUID) (int64, error)
}

// teamRoomRepositoryImpl is the GORM implementation of TeamRoomRepository
type teamRoomRepositoryImpl struct {
	db *gorm.DB
}

// NewTeamRoomRepository creates a new instance of TeamRoomRepository
func NewTeamRoomRepository(db *gorm.DB) TeamRoomRepository {
	return &teamRoomRepositoryImpl{db: db}
}

// Create creates a new team room
func (r *teamRoomRepositoryImpl) Create(ctx context.Context, teamRoom *domain.TeamRoom) error {
	return r.db.WithContext(ctx).Create(teamRoom).Error
}

// FindByID finds a team room by its ID
func (r *teamRoomRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.TeamRoom, error) {
	var teamRoom domain.TeamRoom
	if err := r.db.WithContext(ctx).First(&teamRoom, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &teamRoom, nil
}

// FindByWorkpanelID finds all team rooms of a workpanel
func (r *teamRoomRepositoryImpl) FindByWorkpanelID(ctx context.Context, workpanelID uuid.UUID) ([]*domain.TeamRoom, error) {
	var teamRooms []*domain.TeamRoom
	if err := r.db.WithContext(ctx).
		Where("workpanel_id = ?", workpanelID).
		Order("created_at ASC").
		Find(&teamRooms).Error; err != nil {
		return nil, err
	}
	return teamRooms, nil
}

// Update saves changes to a team room
func (r *teamRoomRepositoryImpl) Update(ctx context.Context, teamRoom *domain.TeamRoom) error {
	return r.db.WithContext(ctx).Save(teamRoom).Error
}

// Delete soft deletes a team room
func (r *teamRoomRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.TeamRoom{}, "id = ?", id).Error
}

// AddMember creates a new team room membership
func (r *teamRoomRepositoryImpl) AddMember(ctx context.Context, member *domain.TeamRoomMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// FindMember finds a direct member by team room and user
func (r *teamRoomRepositoryImpl) FindMember(ctx context.Context, teamRoomID, userID uuid.UUID) (*domain.TeamRoomMember, error) {
	var member domain.TeamRoomMember
	if err := r.db.WithContext(ctx).
		Where("team_room_id = ? AND user_id = ?", teamRoomID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindMembers finds all direct members of a team room
func (r *teamRoomRepositoryImpl) FindMembers(ctx context.Context, teamRoomID uuid.UUID) ([]*domain.TeamRoomMember, error) {
	var members []*domain.TeamRoomMember
	if err := r.db.WithContext(ctx).
		Where("team_room_id = ?", teamRoomID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateMemberRole updates a direct member's role
func (r *teamRoomRepositoryImpl) UpdateMemberRole(ctx context.Context, teamRoomID, userID uuid.UUID, role domain.TeamRoomRole) error {
	result := r.db.WithContext(ctx).
		Model(&domain.TeamRoomMember{}).
		Where("team_room_id = ? AND user_id = ?", teamRoomID, userID).
		Update("role_name", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RemoveMember removes a direct member from a team room
func (r *teamRoomRepositoryImpl) RemoveMember(ctx context.Context, teamRoomID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("team_room_id = ? AND user_id = ?", teamRoomID, userID).
		Delete(&domain.TeamRoomMember{}).Error
}

// CountUserMemberships counts direct team room memberships within a workpanel
func (r *teamRoomRepositoryImpl) CountUserMemberships(ctx context.Context, workpanelID, userID uuid.UUID, exclude *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.TeamRoomMember{}).
		Joins("JOIN team_rooms ON team_rooms.id = team_room_members.team_room_id").
		Where("team_rooms.workpanel_id = ? AND team_room_members.user_id = ?", workpanelID, userID)
	if exclude != nil {
		query = query.Where("team_room_members.team_room_id <> ?", *exclude)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
