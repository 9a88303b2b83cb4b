package dto

import (
	"time"

	"github.com/google/uuid"

	"workpanel-api/internal/domain"
)

// CreateBoardRequest represents the request to create a board
type CreateBoardRequest struct {
	WorkpanelID uuid.UUID  `json:"workpanelId" binding:"required"`
	TeamRoomID  *uuid.UUID `json:"teamRoomId,omitempty"` // nil places the board in "Uncategorized"
	Name        string     `json:"name" binding:"required,max=255"`
	Description string     `json:"description"`
	IsPrivate   bool       `json:"isPrivate"`
}

// UpdateBoardRequest represents the request to update a board
type UpdateBoardRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	IsPrivate   *bool      `json:"isPrivate,omitempty"`
	TeamRoomID  *uuid.UUID `json:"teamRoomId,omitempty"`
}

// BoardResponse represents the board response
type BoardResponse struct {
	ID                uuid.UUID  `json:"id"`
	WorkpanelID       uuid.UUID  `json:"workpanelId"`
	TeamRoomID        *uuid.UUID `json:"teamRoomId,omitempty"`
	OwnerID           uuid.UUID  `json:"ownerId"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	IsPrivate         bool       `json:"isPrivate"`
	GroupOrderVersion int64      `json:"groupOrderVersion"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// ToBoardResponse converts a domain board to its response
func ToBoardResponse(b *domain.Board) *BoardResponse {
	return &BoardResponse{
		ID:                b.ID,
		WorkpanelID:       b.WorkpanelID,
		TeamRoomID:        b.TeamRoomID,
		OwnerID:           b.OwnerID,
		Name:              b.Name,
		Description:       b.Description,
		IsPrivate:         b.IsPrivate,
		GroupOrderVersion: b.GroupOrderVersion,
		CreatedAt:         b.CreatedAt,
	}
}
