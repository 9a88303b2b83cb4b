package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
	"workpanel-api/internal/dto"
	"workpanel-api/internal/repository"
	"workpanel-api/internal/response"
)

const unreadCountTTL = 5 * time.Minute

// NotificationService delivers and reads per-user notifications. Notify is
// fire-and-forget, mirroring ActivityService.Record: delivery failures are
// logged, never surfaced to the producing operation.
//
// The unread count is cached in Redis and invalidated on every write that
// can change it.
type NotificationService interface {
	Notify(userID uuid.UUID, message, link string)
	GetNotifications(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*dto.NotificationResponse, int64, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

// notificationServiceImpl is the implementation of NotificationService
type notificationServiceImpl struct {
	notificationRepo repository.NotificationRepository
	redisClient      *redis.Client
	logger           *zap.Logger
}

// NewNotificationService creates a new instance of NotificationService.
// redisClient may be nil; the unread count then always hits the database.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	redisClient *redis.Client,
	logger *zap.Logger,
) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		redisClient:      redisClient,
		logger:           logger,
	}
}

func unreadCountKey(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:unread:%s", userID)
}

// invalidateUnreadCount drops the cached unread count for a user
func (s *notificationServiceImpl) invalidateUnreadCount(ctx context.Context, userID uuid.UUID) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, unreadCountKey(userID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate unread count cache",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

// Notify creates a notification for the user in the background
func (s *notificationServiceImpl) Notify(userID uuid.UUID, message, link string) {
	notification := &domain.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Message: message,
		Link:    link,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			s.logger.Warn("failed to deliver notification",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			return
		}
		s.invalidateUnreadCount(ctx, userID)
	}()
}

// GetNotifications returns one page of the user's notifications, newest first
func (s *notificationServiceImpl) GetNotifications(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*dto.NotificationResponse, int64, error) {
	notifications, total, err := s.notificationRepo.FindByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, response.NewAppError(response.ErrCodeInternal, "Failed to load notifications", err.Error())
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, dto.ToNotificationResponse(notification))
	}
	return responses, total, nil
}

// GetUnreadCount returns the user's unread count, served from Redis when warm
func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, unreadCountKey(userID)).Result()
		if err == nil {
			if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				return &dto.UnreadCountResponse{Count: count}, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("unread count cache read failed", zap.Error(err))
		}
	}

	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count unread notifications", err.Error())
	}

	if s.redisClient != nil {
		if err := s.redisClient.Set(ctx, unreadCountKey(userID), count, unreadCountTTL).Err(); err != nil {
			s.logger.Warn("unread count cache write failed", zap.Error(err))
		}
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

// MarkRead marks one notification as read
func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := s.notificationRepo.MarkRead(ctx, userID, notificationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Notification not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to mark notification read", err.Error())
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}

// MarkAllRead marks every unread notification of the user as read
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to mark notifications read", err.Error())
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}
