package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification represents a per-user inbox entry
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_id" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Link      string    `gorm:"type:text" json:"link"`
	IsRead    bool      `gorm:"default:false;index:idx_notifications_is_read" json:"is_read"`
	CreatedAt time.Time `gorm:"not null;index:idx_notifications_created_at" json:"created_at"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
