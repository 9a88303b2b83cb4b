package domain

import "github.com/google/uuid"

// Comment represents a comment on a task. Author display fields are
// denormalized at write time so comment lists render without a user lookup.
type Comment struct {
	BaseModel
	TaskID         uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_task_id" json:"task_id"`
	AuthorID       uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_author_id" json:"author_id"`
	AuthorName     string    `gorm:"type:varchar(255)" json:"author_name"`
	AuthorPhotoURL string    `gorm:"type:text" json:"author_photo_url"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	Task           Task      `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"task,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
