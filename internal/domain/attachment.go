package domain

import "github.com/google/uuid"

// AttachmentStatus represents the status of an attachment
type AttachmentStatus string

const (
	AttachmentStatusTemp      AttachmentStatus = "TEMP"      // uploaded, not yet confirmed against a task
	AttachmentStatusConfirmed AttachmentStatus = "CONFIRMED" // referenced by its task
	AttachmentStatusOrphaned  AttachmentStatus = "ORPHANED"  // metadata deleted path failed halfway; swept by cleanup job
)

// Attachment represents a file attached to a task.
// FileKey stores only the object storage key, never a full URL.
type Attachment struct {
	BaseModel
	TaskID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_attachments_task_id" json:"task_id"`
	Status      AttachmentStatus `gorm:"type:varchar(20);not null;default:'TEMP';index:idx_attachments_status" json:"status"`
	FileName    string           `gorm:"type:varchar(255);not null" json:"file_name"`
	FileKey     string           `gorm:"type:text;not null" json:"file_key"`
	FileSize    int64            `gorm:"not null" json:"file_size"`
	ContentType string           `gorm:"type:varchar(100);not null" json:"content_type"`
	UploadedBy  uuid.UUID        `gorm:"type:uuid;not null;index:idx_attachments_uploaded_by" json:"uploaded_by"`
}

// OrphanedObject records a storage key whose metadata row is already gone but
// whose object delete failed. The cleanup job retries these in the background.
type OrphanedObject struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FileKey   string    `gorm:"type:text;not null" json:"file_key"`
	CreatedAt int64     `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Attachment
func (Attachment) TableName() string {
	return "attachments"
}

// TableName specifies the table name for OrphanedObject
func (OrphanedObject) TableName() string {
	return "orphaned_objects"
}
