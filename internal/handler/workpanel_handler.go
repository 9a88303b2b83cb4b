package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workpanel-api/internal/dto"
	"workpanel-api/internal/response"
	"workpanel-api/internal/service"
)

// WorkpanelHandler handles workpanel HTTP requests
type WorkpanelHandler struct {
	workpanelService service.WorkpanelService
}

// NewWorkpanelHandler creates a new WorkpanelHandler
func NewWorkpanelHandler(workpanelService service.WorkpanelService) *WorkpanelHandler {
	return &WorkpanelHandler{workpanelService: workpanelService}
}

// CreateWorkpanel godoc
// @Summary      Create a workpanel
// @Description  Creates a workpanel with the caller as its owner
// @Tags         workpanels
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateWorkpanelRequest true "Workpanel to create"
// @Success      201 {object} response.SuccessResponse{data=dto.WorkpanelResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Router       / [post]
func (h *WorkpanelHandler) CreateWorkpanel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateWorkpanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	workpanel, err := h.workpanelService.CreateWorkpanel(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, workpanel)
}

// ListAccessible godoc
// @Summary      List accessible workpanels
// @Description  Returns every workpanel the caller can reach with their effective role
// @Tags         workpanels
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.AccessibleWorkpanelResponse}
// @Failure      401 {object} response.ErrorResponse
// @Router       / [get]
func (h *WorkpanelHandler) ListAccessible(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workpanels, err := h.workpanelService.ListAccessible(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, workpanels)
}

// GetWorkpanel godoc
// @Summary      Get a workpanel
// @Tags         workpanels
// @Produce      json
// @Param        workpanelId path string true "Workpanel ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.WorkpanelResponse}
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /{workpanelId} [get]
func (h *WorkpanelHandler) GetWorkpanel(c *gin.Context) {
	workpanelID, ok := pathUUID(c, "workpanelId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workpanel, err := h.workpanelService.GetWorkpanel(c.Request.Context(), workpanelID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, workpanel)
}

// UpdateWorkpanel godoc
// @Summary      Update a workpanel
// @Description  Updates name or description, owner or admin only
// @Tags         workpanels
// @Accept       json
// @Produce      json
// @Param        workpanelId path string true "Workpanel ID (UUID)"
// @Param        request body dto.UpdateWorkpanelRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.WorkpanelResponse}
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /{workpanelId} [put]
func (h *WorkpanelHandler) UpdateWorkpanel(c *gin.Context) {
	workpanelID, ok := pathUUID(c, "workpanelId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkpanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	workpanel, err := h.workpanelService.UpdateWorkpanel(c.Request.Context(), workpanelID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, workpanel)
}

// DeleteWorkpanel godoc
// @Summary      Delete a workpanel
// @Description  Deletes a workpanel, owner only
// @Tags         workpanels
// @Produce      json
// @Param        workpanelId path string true "Workpanel ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /{workpanelId} [delete]
func (h *WorkpanelHandler) DeleteWorkpanel(c *gin.Context) {
	workpanelID, ok := pathUUID(c, "workpanelId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.workpanelService.DeleteWorkpanel(c.Request.Context(), workpanelID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Workpanel deleted"})
}
