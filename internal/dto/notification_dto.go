package dto

import (
	"time"

	"github.com/google/uuid"

	"workpanel-api/internal/domain"
)

// NotificationResponse represents one inbox entry
type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToNotificationResponse converts a domain notification to its response
func ToNotificationResponse(n *domain.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// UnreadCountResponse represents the unread notification count
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
