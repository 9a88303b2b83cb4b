package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// MockS3Client is a test double for S3ClientInterface. Behavior is injected
// through function fields; unset fields fall back to canned values.
type MockS3Client struct {
	GeneratePresignedPutURLFunc func(ctx context.Context, boardID uuid.UUID, fileName, contentType string) (string, string, error)
	DeleteFileFunc              func(ctx context.Context, key string) error
	GetFileURLFunc              func(key string) string

	DeletedKeys []string
}

// GeneratePresignedPutURL returns a fake upload URL and key
func (m *MockS3Client) GeneratePresignedPutURL(ctx context.Context, boardID uuid.UUID, fileName, contentType string) (string, string, error) {
	if m.GeneratePresignedPutURLFunc != nil {
		return m.GeneratePresignedPutURLFunc(ctx, boardID, fileName, contentType)
	}
	key := fmt.Sprintf("workpanel/attachments/%s/%s", boardID, fileName)
	return "https://mock-s3.example.com/upload/" + key, key, nil
}

// DeleteFile records the deleted key
func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}
	m.DeletedKeys = append(m.DeletedKeys, key)
	return nil
}

// GetFileURL returns a fake download URL
func (m *MockS3Client) GetFileURL(key string) string {
	if m.GetFileURLFunc != nil {
		return m.GetFileURLFunc(key)
	}
	return "https://mock-s3.example.com/" + key
}
