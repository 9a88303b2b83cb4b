package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
)

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByWorkpanelID(ctx context.Context, workpanelID uuid.UUID) ([]*domain.Board, error)
	FindByTeamRoomID(ctx context.Context, teamRoomID uuid.UUID) ([]*domain.Board, error)
	Update(ctx context.Context, board *domain.Board) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, member *domain.BoardMember) error
	FindMember(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardMember, error)
	FindMembers(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardMember, error)
	UpdateMemberRole(ctx context.Context, boardID, userID uuid.UUID, role domain.BoardRole) error
	RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error

	// CountUserMemberships counts the user's direct board memberships within
	// a workpanel, optionally excluding one board. Used by the role
	// resolver's last-access-path check.
	CountUserMemberships(ctx context.Context, workpanelID, userID uuid.UUID, exclude *uuid.UUID) (int64, error)
}

// boardRepositoryImpl is the GORM implementation of BoardRepository
type boardRepositoryImpl struct {
	db *gorm.DB
}

// NewBoardRepository creates a new instance of BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepositoryImpl{db: db}
}

// Create creates a new board
func (r *boardRepositoryImpl) Create(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// FindByID finds a board by its ID
func (r *boardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	var board domain.Board
	if err := r.db.WithContext(ctx).First(&board, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByWorkpanelID finds all boards of a workpanel
func (r *boardRepositoryImpl) FindByWorkpanelID(ctx context.Context, workpanelID uuid.UUID) ([]*domain.Board, error) {
	var boards []*domain.Board
	if err := r.db.WithContext(ctx).
		Where("workpanel_id = ?", workpanelID).
		Order("created_at ASC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// FindByTeamRoomID finds all boards of a team room
func (r *boardRepositoryImpl) FindByTeamRoomID(ctx context.Context, teamRoomID uuid.UUID) ([]*domain.Board, error) {
	var boards []*domain.Board
	if err := r.db.WithContext(ctx).
		Where("team_room_id = ?", teamRoomID).
		Order("created_at ASC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// Update saves changes to a board
func (r *boardRepositoryImpl) Update(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

// Delete soft deletes a board
func (r *boardRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Board{}, "id = ?", id).Error
}

// AddMember creates a new board membership
func (r *boardRepositoryImpl) AddMember(ctx context.Context, member *domain.BoardMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// FindMember finds a direct member by board and user
func (r *boardRepositoryImpl) FindMember(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardMember, error) {
	var member domain.BoardMember
	if err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindMembers finds all direct members of a board
func (r *boardRepositoryImpl) FindMembers(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardMember, error) {
	var members []*domain.BoardMember
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateMemberRole updates a direct member's role
func (r *boardRepositoryImpl) UpdateMemberRole(ctx context.Context, boardID, userID uuid.UUID, role domain.BoardRole) error {
	result := r.db.WithContext(ctx).
		Model(&domain.BoardMember{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Update("role_name", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RemoveMember removes a direct member from a board
func (r *boardRepositoryImpl) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&domain.BoardMember{}).Error
}

// CountUserMemberships counts direct board memberships within a workpanel
func (r *boardRepositoryImpl) CountUserMemberships(ctx context.Context, workpanelID, userID uuid.UUID, exclude *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.BoardMember{}).
		Joins("JOIN boards ON boards.id = board_members.board_id").
		Where("boards.workpanel_id = ? AND board_members.user_id = ?", workpanelID, userID)
	if exclude != nil {
		query = query.Where("board_members.board_id <> ?", *exclude)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
