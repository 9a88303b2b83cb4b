package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workpanel-api/internal/client"
	"workpanel-api/internal/domain"
	"workpanel-api/internal/dto"
	"workpanel-api/internal/repository"
	"workpanel-api/internal/response"
)

// AttachmentService defines the interface for attachment business logic.
//
// Uploads are presigned and two-phase: a TEMP record is created with the
// upload URL, the client PUTs the file directly to storage, then confirms.
// Deletes are metadata-first: the record goes first, and if the object
// delete fails the key is parked for the cleanup job instead of leaving a
// record that points at nothing.
type AttachmentService interface {
	CreatePresignedUpload(ctx context.Context, userID uuid.UUID, req *dto.PresignedUploadRequest) (*dto.PresignedUploadResponse, error)
	ConfirmAttachment(ctx context.Context, attachmentID, userID uuid.UUID) (*dto.AttachmentResponse, error)
	ListAttachments(ctx context.Context, taskID, userID uuid.UUID) ([]*dto.AttachmentResponse, error)
	DeleteAttachment(ctx context.Context, attachmentID, userID uuid.UUID) error
}

// attachmentServiceImpl is the implementation of AttachmentService
type attachmentServiceImpl struct {
	attachmentRepo repository.AttachmentRepository
	taskRepo       repository.TaskRepository
	roleService    RoleService
	s3Client       client.S3ClientInterface
	notifier       BoardNotifier
	logger         *zap.Logger
}

// NewAttachmentService creates a new instance of AttachmentService
func NewAttachmentService(
	attachmentRepo repository.AttachmentRepository,
	taskRepo repository.TaskRepository,
	roleService RoleService,
	s3Client client.S3ClientInterface,
	notifier BoardNotifier,
	logger *zap.Logger,
) AttachmentService {
	return &attachmentServiceImpl{
		attachmentRepo: attachmentRepo,
		taskRepo:       taskRepo,
		roleService:    roleService,
		s3Client:       s3Client,
		notifier:       notifier,
		logger:         logger,
	}
}

// CreatePresignedUpload creates a TEMP attachment and its upload URL
func (s *attachmentServiceImpl) CreatePresignedUpload(ctx context.Context, userID uuid.UUID, req *dto.PresignedUploadRequest) (*dto.PresignedUploadResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Task not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load task", err.Error())
	}
	if err := s.roleService.RequireBoardEdit(ctx, task.BoardID, userID); err != nil {
		return nil, err
	}

	uploadURL, fileKey, err := s.s3Client.GeneratePresignedPutURL(ctx, task.BoardID, req.FileName, req.ContentType)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeUpstream, "Failed to generate upload URL", err.Error())
	}

	attachment := &domain.Attachment{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		TaskID:      req.TaskID,
		Status:      domain.AttachmentStatusTemp,
		FileName:    req.FileName,
		FileKey:     fileKey,
		FileSize:    req.FileSize,
		ContentType: req.ContentType,
		UploadedBy:  userID,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create attachment record", err.Error())
	}

	return &dto.PresignedUploadResponse{
		AttachmentID: attachment.ID,
		UploadURL:    uploadURL,
		FileKey:      fileKey,
	}, nil
}

// ConfirmAttachment promotes a TEMP attachment to CONFIRMED after the client
// finished uploading
func (s *attachmentServiceImpl) ConfirmAttachment(ctx context.Context, attachmentID, userID uuid.UUID) (*dto.AttachmentResponse, error) {
	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Attachment not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load attachment", err.Error())
	}
	if attachment.UploadedBy != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the uploader can confirm an attachment", "")
	}
	if attachment.Status != domain.AttachmentStatusTemp {
		return nil, response.NewAppError(response.ErrCodeValidation, "Attachment is not awaiting confirmation", "")
	}

	attachment.Status = domain.AttachmentStatusConfirmed
	if err := s.attachmentRepo.Update(ctx, attachment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to confirm attachment", err.Error())
	}
	if task, err := s.taskRepo.FindByID(ctx, attachment.TaskID); err == nil {
		notifyBoard(s.notifier, task.BoardID, userID)
	}
	return dto.ToAttachmentResponse(attachment, s.s3Client.GetFileURL(attachment.FileKey)), nil
}

// ListAttachments returns a task's confirmed attachments with download URLs
func (s *attachmentServiceImpl) ListAttachments(ctx context.Context, taskID, userID uuid.UUID) ([]*dto.AttachmentResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Task not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load task", err.Error())
	}
	if _, _, err := s.roleService.ResolveBoardRole(ctx, task.BoardID, userID); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.FindByTaskID(ctx, taskID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list attachments", err.Error())
	}

	responses := make([]*dto.AttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		responses = append(responses, dto.ToAttachmentResponse(attachment, s.s3Client.GetFileURL(attachment.FileKey)))
	}
	return responses, nil
}

// DeleteAttachment removes the metadata row, then the stored object. A
// failed object delete parks the key for the cleanup job.
func (s *attachmentServiceImpl) DeleteAttachment(ctx context.Context, attachmentID, userID uuid.UUID) error {
	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Attachment not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load attachment", err.Error())
	}

	task, err := s.taskRepo.FindByID(ctx, attachment.TaskID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load task", err.Error())
	}
	if attachment.UploadedBy != userID {
		if err := s.roleService.RequireBoardManage(ctx, task.BoardID, userID); err != nil {
			return err
		}
	}

	if err := s.attachmentRepo.Delete(ctx, attachmentID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete attachment record", err.Error())
	}

	if err := s.s3Client.DeleteFile(ctx, attachment.FileKey); err != nil {
		s.logger.Warn("object delete failed after metadata delete, parking key for sweep",
			zap.String("file_key", attachment.FileKey),
			zap.Error(err))
		orphan := &domain.OrphanedObject{ID: uuid.New(), FileKey: attachment.FileKey}
		if recordErr := s.attachmentRepo.RecordOrphan(ctx, orphan); recordErr != nil {
			s.logger.Error("failed to record orphaned object",
				zap.String("file_key", attachment.FileKey),
				zap.Error(recordErr))
		}
	}
	notifyBoard(s.notifier, task.BoardID, userID)
	return nil
}
