package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workpanel-api/internal/response"
	"workpanel-api/internal/service"
)

// ActivityHandler handles board activity feed HTTP requests
type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// GetBoardActivity godoc
// @Summary      Get the activity feed of a board
// @Description  Returns activity entries newest first with pagination
// @Tags         activity
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        page query int false "Page number, 1-based" default(1)
// @Param        pageSize query int false "Entries per page, max 100" default(20)
// @Success      200 {object} response.SuccessResponse{data=dto.PaginatedActivityResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /boards/{boardId}/activity [get]
func (h *ActivityHandler) GetBoardActivity(c *gin.Context) {
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "pageSize", 20)

	feed, err := h.activityService.GetBoardActivity(c.Request.Context(), boardID, userID, page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, feed)
}
