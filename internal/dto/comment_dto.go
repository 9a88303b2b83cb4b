package dto

import (
	"time"

	"github.com/google/uuid"

	"workpanel-api/internal/domain"
)

// CreateCommentRequest represents the request to add a comment to a task
type CreateCommentRequest struct {
	Content        string `json:"content" binding:"required"`
	AuthorName     string `json:"authorName"`
	AuthorPhotoURL string `json:"authorPhotoUrl"`
}

// CommentResponse represents the comment response
type CommentResponse struct {
	ID             uuid.UUID `json:"id"`
	TaskID         uuid.UUID `json:"taskId"`
	AuthorID       uuid.UUID `json:"authorId"`
	AuthorName     string    `json:"authorName"`
	AuthorPhotoURL string    `json:"authorPhotoUrl"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToCommentResponse converts a domain comment to its response
func ToCommentResponse(c *domain.Comment) *CommentResponse {
	return &CommentResponse{
		ID:             c.ID,
		TaskID:         c.TaskID,
		AuthorID:       c.AuthorID,
		AuthorName:     c.AuthorName,
		AuthorPhotoURL: c.AuthorPhotoURL,
		Content:        c.Content,
		CreatedAt:      c.CreatedAt,
	}
}
