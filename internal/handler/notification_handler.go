package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workpanel-api/internal/response"
	"workpanel-api/internal/service"
)

// NotificationHandler handles notification inbox HTTP requests
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications godoc
// @Summary      List notifications
// @Description  Returns the caller's notifications newest first with pagination
// @Tags         notifications
// @Produce      json
// @Param        page query int false "Page number, 1-based" default(1)
// @Param        pageSize query int false "Entries per page, max 100" default(20)
// @Success      200 {object} response.SuccessResponse{data=[]dto.NotificationResponse}
// @Failure      401 {object} response.ErrorResponse
// @Router       /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "pageSize", 20)

	notifications, total, err := h.notificationService.GetNotifications(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         total,
		"page":          page,
		"pageSize":      pageSize,
	})
}

// GetUnreadCount godoc
// @Summary      Get the unread notification count
// @Tags         notifications
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.UnreadCountResponse}
// @Failure      401 {object} response.ErrorResponse
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, count)
}

// MarkRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Param        notificationId path string true "Notification ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      404 {object} response.ErrorResponse
// @Router       /notifications/{notificationId}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := pathUUID(c, "notificationId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), userID, notificationID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead godoc
// @Summary      Mark every notification as read
// @Tags         notifications
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      401 {object} response.ErrorResponse
// @Router       /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
