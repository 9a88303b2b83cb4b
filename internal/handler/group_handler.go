package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workpanel-api/internal/dto"
	"workpanel-api/internal/response"
	"workpanel-api/internal/service"
)

// GroupHandler handles group (column) HTTP requests
type GroupHandler struct {
	groupService service.GroupService
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// CreateGroup godoc
// @Summary      Create a column
// @Description  Appends a new column at the end of the board
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateGroupRequest true "Column to create"
// @Success      201 {object} response.SuccessResponse{data=dto.GroupResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, group)
}

// RenameGroup godoc
// @Summary      Rename a column
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        groupId path string true "Group ID (UUID)"
// @Param        request body dto.RenameGroupRequest true "New name"
// @Success      200 {object} response.SuccessResponse{data=dto.GroupResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /groups/{groupId} [put]
func (h *GroupHandler) RenameGroup(c *gin.Context) {
	groupID, ok := pathUUID(c, "groupId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.RenameGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	group, err := h.groupService.RenameGroup(c.Request.Context(), groupID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, group)
}

// DeleteGroup godoc
// @Summary      Delete a column
// @Description  Removes the column with every task in it and closes the position gap
// @Tags         groups
// @Produce      json
// @Param        groupId path string true "Group ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      404 {object} response.ErrorResponse
// @Router       /groups/{groupId} [delete]
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	groupID, ok := pathUUID(c, "groupId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.groupService.DeleteGroup(c.Request.Context(), groupID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Group deleted"})
}
