package dto

import (
	"github.com/google/uuid"

	"workpanel-api/internal/domain"
)

// CreateGroupRequest represents the request to create a group (column)
type CreateGroupRequest struct {
	BoardID uuid.UUID `json:"boardId" binding:"required"`
	Name    string    `json:"name" binding:"required,max=255"`
}

// RenameGroupRequest represents the request to rename a group
type RenameGroupRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// GroupResponse represents the group response
type GroupResponse struct {
	ID          uuid.UUID `json:"id"`
	BoardID     uuid.UUID `json:"boardId"`
	Name        string    `json:"name"`
	Position    int       `json:"position"`
	ListVersion int64     `json:"listVersion"`
}

// ToGroupResponse converts a domain group to its response
func ToGroupResponse(g *domain.Group) *GroupResponse {
	return &GroupResponse{
		ID:          g.ID,
		BoardID:     g.BoardID,
		Name:        g.Name,
		Position:    g.Position,
		ListVersion: g.ListVersion,
	}
}
