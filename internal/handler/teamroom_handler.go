package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workpanel-api/internal/dto"
	"workpanel-api/internal/response"
	"workpanel-api/internal/service"
)

// TeamRoomHandler handles team room HTTP requests
type TeamRoomHandler struct {
	teamRoomService service.TeamRoomService
}

// NewTeamRoomHandler creates a new TeamRoomHandler
func NewTeamRoomHandler(teamRoomService service.TeamRoomService) *TeamRoomHandler {
	return &TeamRoomHandler{teamRoomService: teamRoomService}
}

// CreateTeamRoom godoc
// @Summary      Create a team room
// @Tags         team-rooms
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateTeamRoomRequest true "Team room to create"
// @Success      201 {object} response.SuccessResponse{data=dto.TeamRoomResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /rooms [post]
func (h *TeamRoomHandler) CreateTeamRoom(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTeamRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	teamRoom, err := h.teamRoomService.CreateTeamRoom(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, teamRoom)
}

// ListByWorkpanel godoc
// @Summary      List team rooms of a workpanel
// @Tags         team-rooms
// @Produce      json
// @Param        workpanelId path string true "Workpanel ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.TeamRoomResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /{workpanelId}/rooms [get]
func (h *TeamRoomHandler) ListByWorkpanel(c *gin.Context) {
	workpanelID, ok := pathUUID(c, "workpanelId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	teamRooms, err := h.teamRoomService.ListByWorkpanel(c.Request.Context(), workpanelID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, teamRooms)
}

// GetTeamRoom godoc
// @Summary      Get a team room
// @Tags         team-rooms
// @Produce      json
// @Param        roomId path string true "Team room ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.TeamRoomResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /rooms/{roomId} [get]
func (h *TeamRoomHandler) GetTeamRoom(c *gin.Context) {
	roomID, ok := pathUUID(c, "roomId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	teamRoom, err := h.teamRoomService.GetTeamRoom(c.Request.Context(), roomID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, teamRoom)
}

// UpdateTeamRoom godoc
// @Summary      Update a team room
// @Description  Updates name or description, manager only
// @Tags         team-rooms
// @Accept       json
// @Produce      json
// @Param        roomId path string true "Team room ID (UUID)"
// @Param        request body dto.UpdateTeamRoomRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.TeamRoomResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /rooms/{roomId} [put]
func (h *TeamRoomHandler) UpdateTeamRoom(c *gin.Context) {
	roomID, ok := pathUUID(c, "roomId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTeamRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	teamRoom, err := h.teamRoomService.UpdateTeamRoom(c.Request.Context(), roomID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, teamRoom)
}

// DeleteTeamRoom godoc
// @Summary      Delete a team room
// @Description  Deletes a team room and moves its boards to Uncategorized
// @Tags         team-rooms
// @Produce      json
// @Param        roomId path string true "Team room ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      403 {object} response.ErrorResponse
// @Router       /rooms/{roomId} [delete]
func (h *TeamRoomHandler) DeleteTeamRoom(c *gin.Context) {
	roomID, ok := pathUUID(c, "roomId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.teamRoomService.DeleteTeamRoom(c.Request.Context(), roomID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Team room deleted"})
}
