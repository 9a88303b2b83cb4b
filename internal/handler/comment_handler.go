package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workpanel-api/internal/dto"
	"workpanel-api/internal/response"
	"workpanel-api/internal/service"
)

// CommentHandler handles task comment HTTP requests
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// AddComment godoc
// @Summary      Add a comment to a task
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Param        request body dto.CreateCommentRequest true "Comment to add"
// @Success      201 {object} response.SuccessResponse{data=dto.CommentResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /tasks/{taskId}/comments [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), taskID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, comment)
}

// ListComments godoc
// @Summary      List comments of a task
// @Description  Returns comments oldest first
// @Tags         comments
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CommentResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /tasks/{taskId}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), taskID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, comments)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Only the author or a board manager may delete a comment
// @Tags         comments
// @Produce      json
// @Param        commentId path string true "Comment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      403 {object} response.ErrorResponse
// @Router       /comments/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := pathUUID(c, "commentId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), commentID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Comment deleted"})
}
