package dto

import (
	"time"

	"github.com/google/uuid"

	"workpanel-api/internal/domain"
)

// CreateTeamRoomRequest represents the request to create a team room
type CreateTeamRoomRequest struct {
	WorkpanelID uuid.UUID `json:"workpanelId" binding:"required"`
	Name        string    `json:"name" binding:"required,max=255"`
	Description string    `json:"description"`
}

// UpdateTeamRoomRequest represents the request to update a team room
type UpdateTeamRoomRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// TeamRoomResponse represents the team room response
type TeamRoomResponse struct {
	ID          uuid.UUID `json:"id"`
	WorkpanelID uuid.UUID `json:"workpanelId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToTeamRoomResponse converts a domain team room to its response
func ToTeamRoomResponse(t *domain.TeamRoom) *TeamRoomResponse {
	return &TeamRoomResponse{
		ID:          t.ID,
		WorkpanelID: t.WorkpanelID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}
