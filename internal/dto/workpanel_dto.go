package dto

import (
	"time"

	"github.com/google/uuid"

	"workpanel-api/internal/domain"
)

// CreateWorkpanelRequest represents the request to create a workpanel
type CreateWorkpanelRequest struct {
	Name        string `json:"name" binding:"required,max=255" example:"Acme Inc"`
	Description string `json:"description" example:"Company workspace"`
}

// UpdateWorkpanelRequest represents the request to update a workpanel
type UpdateWorkpanelRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// WorkpanelResponse represents the workpanel response
type WorkpanelResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToWorkpanelResponse converts a domain workpanel to its response
func ToWorkpanelResponse(w *domain.Workpanel) *WorkpanelResponse {
	return &WorkpanelResponse{
		ID:          w.ID,
		OwnerID:     w.OwnerID,
		Name:        w.Name,
		Description: w.Description,
		CreatedAt:   w.CreatedAt,
	}
}

// AccessibleWorkpanelResponse is one entry of a user's accessible-workpanels
// index, with the user's effective role in that workpanel.
type AccessibleWorkpanelResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	EffectiveRole string    `json:"effectiveRole"`
	IsOwner       bool      `json:"isOwner"`
}
