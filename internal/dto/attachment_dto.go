package dto

import (
	"time"

	"github.com/google/uuid"

	"workpanel-api/internal/domain"
)

// PresignedUploadRequest represents the request for a presigned upload URL
type PresignedUploadRequest struct {
	TaskID      uuid.UUID `json:"taskId" binding:"required"`
	FileName    string    `json:"fileName" binding:"required,max=255"`
	ContentType string    `json:"contentType" binding:"required"`
	FileSize    int64     `json:"fileSize" binding:"required,min=1"`
}

// PresignedUploadResponse carries the upload URL and the attachment record
// created in TEMP status. The client PUTs the file, then confirms.
type PresignedUploadResponse struct {
	AttachmentID uuid.UUID `json:"attachmentId"`
	UploadURL    string    `json:"uploadUrl"`
	FileKey      string    `json:"fileKey"`
}

// AttachmentResponse represents the attachment response
type AttachmentResponse struct {
	ID          uuid.UUID `json:"id"`
	TaskID      uuid.UUID `json:"taskId"`
	FileName    string    `json:"fileName"`
	FileSize    int64     `json:"fileSize"`
	ContentType string    `json:"contentType"`
	UploadedBy  uuid.UUID `json:"uploadedBy"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToAttachmentResponse converts a domain attachment to its response
func ToAttachmentResponse(a *domain.Attachment, downloadURL string) *AttachmentResponse {
	return &AttachmentResponse{
		ID:          a.ID,
		TaskID:      a.TaskID,
		FileName:    a.FileName,
		FileSize:    a.FileSize,
		ContentType: a.ContentType,
		UploadedBy:  a.UploadedBy,
		DownloadURL: downloadURL,
		CreatedAt:   a.CreatedAt,
	}
}
