package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workpanel-api/internal/dto"
	"workpanel-api/internal/response"
	"workpanel-api/internal/service"
)

// AttachmentHandler handles task attachment HTTP requests
type AttachmentHandler struct {
	attachmentService service.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(attachmentService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// CreatePresignedUpload godoc
// @Summary      Start an attachment upload
// @Description  Returns a presigned PUT URL. The client uploads the bytes directly and then confirms.
// @Tags         attachments
// @Accept       json
// @Produce      json
// @Param        request body dto.PresignedUploadRequest true "File to upload"
// @Success      201 {object} response.SuccessResponse{data=dto.PresignedUploadResponse}
// @Failure      502 {object} response.ErrorResponse
// @Router       /attachments/presigned [post]
func (h *AttachmentHandler) CreatePresignedUpload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.PresignedUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	upload, err := h.attachmentService.CreatePresignedUpload(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, upload)
}

// ConfirmAttachment godoc
// @Summary      Confirm an attachment upload
// @Description  Marks the uploaded object as confirmed so it shows up on the task
// @Tags         attachments
// @Produce      json
// @Param        attachmentId path string true "Attachment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.AttachmentResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /attachments/{attachmentId}/confirm [post]
func (h *AttachmentHandler) ConfirmAttachment(c *gin.Context) {
	attachmentID, ok := pathUUID(c, "attachmentId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	attachment, err := h.attachmentService.ConfirmAttachment(c.Request.Context(), attachmentID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, attachment)
}

// ListAttachments godoc
// @Summary      List attachments of a task
// @Description  Returns confirmed attachments with download URLs
// @Tags         attachments
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.AttachmentResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /tasks/{taskId}/attachments [get]
func (h *AttachmentHandler) ListAttachments(c *gin.Context) {
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	attachments, err := h.attachmentService.ListAttachments(c.Request.Context(), taskID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, attachments)
}

// DeleteAttachment godoc
// @Summary      Delete an attachment
// @Description  Only the uploader or a board manager may delete an attachment
// @Tags         attachments
// @Produce      json
// @Param        attachmentId path string true "Attachment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      403 {object} response.ErrorResponse
// @Router       /attachments/{attachmentId} [delete]
func (h *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	attachmentID, ok := pathUUID(c, "attachmentId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.attachmentService.DeleteAttachment(c.Request.Context(), attachmentID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Attachment deleted"})
}
