package dto

import (
	"time"

	"github.com/google/uuid"

	"workpanel-api/internal/domain"
)

// ActivityEntryResponse represents one activity log line
type ActivityEntryResponse struct {
	ID        uuid.UUID  `json:"id"`
	BoardID   uuid.UUID  `json:"boardId"`
	ActorID   uuid.UUID  `json:"actorId"`
	TaskID    *uuid.UUID `json:"taskId,omitempty"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ToActivityEntryResponse converts a domain activity entry to its response
func ToActivityEntryResponse(e *domain.ActivityEntry) *ActivityEntryResponse {
	return &ActivityEntryResponse{
		ID:        e.ID,
		BoardID:   e.BoardID,
		ActorID:   e.ActorID,
		TaskID:    e.TaskID,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
}

// PaginatedActivityResponse represents a page of activity entries
type PaginatedActivityResponse struct {
	Entries []ActivityEntryResponse `json:"entries"`
	Total   int64                   `json:"total"`
	Page    int                     `json:"page"`
	HasMore bool                    `json:"hasMore"`
}
