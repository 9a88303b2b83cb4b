package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"workpanel-api/internal/domain"
)

// MockAttachmentRepository is a mock implementation of AttachmentRepository
type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.Attachment, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) Update(ctx context.Context, attachment *domain.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAttachmentRepository) FindStaleTemp(ctx context.Context, cutoff time.Time) ([]*domain.Attachment, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) RecordOrphan(ctx context.Context, orphan *domain.OrphanedObject) error {
	args := m.Called(ctx, orphan)
	return args.Error(0)
}

func (m *MockAttachmentRepository) FindOrphans(ctx context.Context, limit int) ([]*domain.OrphanedObject, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OrphanedObject), args.Error(1)
}

func (m *MockAttachmentRepository) DeleteOrphan(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockS3Client is a mock implementation of S3ClientInterface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) GeneratePresignedPutURL(ctx context.Context, boardID uuid.UUID, fileName, contentType string) (string, string, error) {
	args := m.Called(ctx, boardID, fileName, contentType)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockS3Client) GetFileURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func tempAttachment(fileKey string) *domain.Attachment {
	return &domain.Attachment{
		BaseModel: domain.BaseModel{
			ID: uuid.New(),
		},
		TaskID:      uuid.New(),
		Status:      domain.AttachmentStatusTemp,
		FileName:    "draft.png",
		FileKey:     fileKey,
		FileSize:    1024,
		ContentType: "image/png",
		UploadedBy:  uuid.New(),
	}
}

func TestCleanupJob_Run_StaleTempsDeleted(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	mockS3 := new(MockS3Client)
	job := NewCleanupJob(mockRepo, mockS3, zap.NewNop())

	a1 := tempAttachment("workpanel/attachments/b1/2026/08/file1.png")
	a2 := tempAttachment("workpanel/attachments/b1/2026/08/file2.pdf")

	mockRepo.On("FindOrphans", mock.Anything, orphanBatchSize).Return([]*domain.OrphanedObject{}, nil)
	mockRepo.On("FindStaleTemp", mock.Anything, mock.Anything).Return([]*domain.Attachment{a1, a2}, nil)
	mockRepo.On("Delete", mock.Anything, a1.ID).Return(nil)
	mockRepo.On("Delete", mock.Anything, a2.ID).Return(nil)
	mockS3.On("DeleteFile", mock.Anything, a1.FileKey).Return(nil)
	mockS3.On("DeleteFile", mock.Anything, a2.FileKey).Return(nil)

	job.Run()

	mockRepo.AssertExpectations(t)
	mockS3.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "RecordOrphan")
}

func TestCleanupJob_Run_NothingToClean(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	mockS3 := new(MockS3Client)
	job := NewCleanupJob(mockRepo, mockS3, zap.NewNop())

	mockRepo.On("FindOrphans", mock.Anything, orphanBatchSize).Return([]*domain.OrphanedObject{}, nil)
	mockRepo.On("FindStaleTemp", mock.Anything, mock.Anything).Return([]*domain.Attachment{}, nil)

	job.Run()

	mockRepo.AssertExpectations(t)
	mockS3.AssertNotCalled(t, "DeleteFile")
	mockRepo.AssertNotCalled(t, "Delete")
}

func TestCleanupJob_Run_ObjectDeleteFailureParksKey(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	mockS3 := new(MockS3Client)
	job := NewCleanupJob(mockRepo, mockS3, zap.NewNop())

	a1 := tempAttachment("workpanel/attachments/b1/2026/08/broken.png")
	a2 := tempAttachment("workpanel/attachments/b1/2026/08/fine.pdf")

	mockRepo.On("FindOrphans", mock.Anything, orphanBatchSize).Return([]*domain.OrphanedObject{}, nil)
	mockRepo.On("FindStaleTemp", mock.Anything, mock.Anything).Return([]*domain.Attachment{a1, a2}, nil)
	mockRepo.On("Delete", mock.Anything, a1.ID).Return(nil)
	mockRepo.On("Delete", mock.Anything, a2.ID).Return(nil)
	mockS3.On("DeleteFile", mock.Anything, a1.FileKey).Return(errors.New("storage error"))
	mockS3.On("DeleteFile", mock.Anything, a2.FileKey).Return(nil)
	mockRepo.On("RecordOrphan", mock.Anything, mock.MatchedBy(func(o *domain.OrphanedObject) bool {
		return o.FileKey == a1.FileKey
	})).Return(nil)

	job.Run()

	mockRepo.AssertExpectations(t)
	mockS3.AssertExpectations(t)
}

func TestCleanupJob_Run_OrphanRetrySucceeds(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	mockS3 := new(MockS3Client)
	job := NewCleanupJob(mockRepo, mockS3, zap.NewNop())

	orphan := &domain.OrphanedObject{
		ID:      uuid.New(),
		FileKey: "workpanel/attachments/b9/2026/07/stuck.bin",
	}

	mockRepo.On("FindOrphans", mock.Anything, orphanBatchSize).Return([]*domain.OrphanedObject{orphan}, nil)
	mockS3.On("DeleteFile", mock.Anything, orphan.FileKey).Return(nil)
	mockRepo.On("DeleteOrphan", mock.Anything, orphan.ID).Return(nil)
	mockRepo.On("FindStaleTemp", mock.Anything, mock.Anything).Return([]*domain.Attachment{}, nil)

	job.Run()

	mockRepo.AssertExpectations(t)
	mockS3.AssertExpectations(t)
}

func TestCleanupJob_Run_OrphanRetryFailsAgain(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	mockS3 := new(MockS3Client)
	job := NewCleanupJob(mockRepo, mockS3, zap.NewNop())

	orphan := &domain.OrphanedObject{
		ID:      uuid.New(),
		FileKey: "workpanel/attachments/b9/2026/07/stuck.bin",
	}

	mockRepo.On("FindOrphans", mock.Anything, orphanBatchSize).Return([]*domain.OrphanedObject{orphan}, nil)
	mockS3.On("DeleteFile", mock.Anything, orphan.FileKey).Return(errors.New("still failing"))
	mockRepo.On("FindStaleTemp", mock.Anything, mock.Anything).Return([]*domain.Attachment{}, nil)

	job.Run()

	// The key stays parked for the next run
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "DeleteOrphan")
}

func TestCleanupJob_Run_RepositoryFindError(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	mockS3 := new(MockS3Client)
	job := NewCleanupJob(mockRepo, mockS3, zap.NewNop())

	mockRepo.On("FindOrphans", mock.Anything, orphanBatchSize).Return(nil, errors.New("database error"))
	mockRepo.On("FindStaleTemp", mock.Anything, mock.Anything).Return(nil, errors.New("database error"))

	job.Run()

	mockRepo.AssertExpectations(t)
	mockS3.AssertNotCalled(t, "DeleteFile")
}
