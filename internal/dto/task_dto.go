package dto

import (
	"time"

	"github.com/google/uuid"

	"workpanel-api/internal/domain"
)

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	GroupID     uuid.UUID   `json:"groupId" binding:"required"`
	Content     string      `json:"content" binding:"required,max=500"`
	Description string      `json:"description"`
	Priority    string      `json:"priority,omitempty"` // low|medium|high|urgent, defaults to medium
	DueDate     *time.Time  `json:"dueDate,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Assignees   []uuid.UUID `json:"assignees,omitempty"`
}

// UpdateTaskRequest represents the request to update task metadata
type UpdateTaskRequest struct {
	Content     *string      `json:"content,omitempty"`
	Description *string      `json:"description,omitempty"`
	Priority    *string      `json:"priority,omitempty"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	ClearDue    bool         `json:"clearDueDate,omitempty"`
	Tags        *[]string    `json:"tags,omitempty"`
	Assignees   *[]uuid.UUID `json:"assignees,omitempty"`
}

// ChecklistItemRequest represents the request to add a checklist item
type ChecklistItemRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

// ChecklistItemResponse represents a checklist item
type ChecklistItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Position  int       `json:"position"`
}

// TaskResponse represents the task response
type TaskResponse struct {
	ID          uuid.UUID               `json:"id"`
	GroupID     uuid.UUID               `json:"groupId"`
	BoardID     uuid.UUID               `json:"boardId"`
	Content     string                  `json:"content"`
	Description string                  `json:"description"`
	Priority    domain.TaskPriority     `json:"priority"`
	DueDate     *time.Time              `json:"dueDate,omitempty"`
	Position    int                     `json:"position"`
	Tags        []string                `json:"tags"`
	Assignees   []uuid.UUID             `json:"assignees"`
	Checklist   []ChecklistItemResponse `json:"checklist,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
}

// SuggestTagsRequest represents the request for AI tag suggestions
type SuggestTagsRequest struct {
	Title       string `json:"title" binding:"required,max=500"`
	Description string `json:"description"`
}

// SuggestTagsResponse represents the AI tag suggestion response
type SuggestTagsResponse struct {
	SuggestedTags []string `json:"suggestedTags"`
}
