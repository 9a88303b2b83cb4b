package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
	"workpanel-api/internal/dto"
	"workpanel-api/internal/repository"
	"workpanel-api/internal/response"
)

// CommentService defines the interface for comment business logic
type CommentService interface {
	AddComment(ctx context.Context, taskID, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, taskID, userID uuid.UUID) ([]*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID, userID uuid.UUID) error
}

// commentServiceImpl is the implementation of CommentService
type commentServiceImpl struct {
	commentRepo     repository.CommentRepository
	taskRepo        repository.TaskRepository
	roleService     RoleService
	activityService ActivityService
	notifier        BoardNotifier
	logger          *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	taskRepo repository.TaskRepository,
	roleService RoleService,
	activityService ActivityService,
	notifier BoardNotifier,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		commentRepo:     commentRepo,
		taskRepo:        taskRepo,
		roleService:     roleService,
		activityService: activityService,
		notifier:        notifier,
		logger:          logger,
	}
}

// AddComment adds a comment to a task
func (s *commentServiceImpl) AddComment(ctx context.Context, taskID, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
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

	comment := &domain.Comment{
		BaseModel:      domain.BaseModel{ID: uuid.New()},
		TaskID:         taskID,
		AuthorID:       userID,
		AuthorName:     req.AuthorName,
		AuthorPhotoURL: req.AuthorPhotoURL,
		Content:        req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add comment", err.Error())
	}

	s.activityService.Record(task.BoardID, userID, &taskID,
		fmt.Sprintf("commented on %q", task.Content))
	notifyBoard(s.notifier, task.BoardID, userID)
	return dto.ToCommentResponse(comment), nil
}

// ListComments returns a task's comments oldest first
func (s *commentServiceImpl) ListComments(ctx context.Context, taskID, userID uuid.UUID) ([]*dto.CommentResponse, error) {
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

	comments, err := s.commentRepo.FindByTaskID(ctx, taskID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list comments", err.Error())
	}

	responses := make([]*dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, dto.ToCommentResponse(comment))
	}
	return responses, nil
}

// DeleteComment removes a comment. Only the author or a board manager may
// delete it.
func (s *commentServiceImpl) DeleteComment(ctx context.Context, commentID, userID uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load comment", err.Error())
	}

	task, err := s.taskRepo.FindByID(ctx, comment.TaskID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load task", err.Error())
	}
	if comment.AuthorID != userID {
		if err := s.roleService.RequireBoardManage(ctx, task.BoardID, userID); err != nil {
			return err
		}
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete comment", err.Error())
	}
	notifyBoard(s.notifier, task.BoardID, userID)
	return nil
}
