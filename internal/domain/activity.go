package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityEntry is an append-only human-readable log line for a board.
// Entries are never edited or deleted except cascading with their board.
type ActivityEntry struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BoardID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_activity_entries_board_id" json:"board_id"`
	ActorID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_activity_entries_actor_id" json:"actor_id"`
	TaskID    *uuid.UUID `gorm:"type:uuid;index:idx_activity_entries_task_id" json:"task_id,omitempty"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time  `gorm:"not null;index:idx_activity_entries_created_at" json:"created_at"`
	Board     Board      `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"board,omitempty"`
}

// TableName specifies the table name for ActivityEntry
func (ActivityEntry) TableName() string {
	return "activity_entries"
}
