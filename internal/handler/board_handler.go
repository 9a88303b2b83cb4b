package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workpanel-api/internal/dto"
	"workpanel-api/internal/response"
	"workpanel-api/internal/service"
)

// BoardHandler handles board HTTP requests, including the materialized view
// and drag moves
type BoardHandler struct {
	boardService     service.BoardService
	boardViewService service.BoardViewService
	reorderService   service.ReorderService
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(
	boardService service.BoardService,
	boardViewService service.BoardViewService,
	reorderService service.ReorderService,
) *BoardHandler {
	return &BoardHandler{
		boardService:     boardService,
		boardViewService: boardViewService,
		reorderService:   reorderService,
	}
}

// CreateBoard godoc
// @Summary      Create a board
// @Description  Creates a board with default To Do / Doing / Done columns
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBoardRequest true "Board to create"
// @Success      201 {object} response.SuccessResponse{data=dto.BoardResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /boards [post]
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, board)
}

// ListByWorkpanel godoc
// @Summary      List boards of a workpanel
// @Description  Private boards are hidden unless the caller has a role on them
// @Tags         boards
// @Produce      json
// @Param        workpanelId path string true "Workpanel ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.BoardResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /{workpanelId}/boards [get]
func (h *BoardHandler) ListByWorkpanel(c *gin.Context) {
	workpanelID, ok := pathUUID(c, "workpanelId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boards, err := h.boardService.ListByWorkpanel(c.Request.Context(), workpanelID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, boards)
}

// ListByTeamRoom godoc
// @Summary      List boards of a team room
// @Tags         boards
// @Produce      json
// @Param        roomId path string true "Team room ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.BoardResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /rooms/{roomId}/boards [get]
func (h *BoardHandler) ListByTeamRoom(c *gin.Context) {
	roomID, ok := pathUUID(c, "roomId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boards, err := h.boardService.ListByTeamRoom(c.Request.Context(), roomID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, boards)
}

// GetBoard godoc
// @Summary      Get a board
// @Tags         boards
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /boards/{boardId} [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	board, err := h.boardService.GetBoard(c.Request.Context(), boardID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, board)
}

// GetBoardView godoc
// @Summary      Get the materialized board view
// @Description  Returns the full ordered column structure rebuilt from the latest snapshot
// @Tags         boards
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardViewResponse}
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /boards/{boardId}/view [get]
func (h *BoardHandler) GetBoardView(c *gin.Context) {
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := h.boardViewService.GetBoardView(c.Request.Context(), boardID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, view)
}

// Move godoc
// @Summary      Apply a drag gesture
// @Description  Moves a column or a task and renumbers positions densely. A stale version token returns 409.
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.MoveRequest true "Drag result"
// @Success      200 {object} response.SuccessResponse{data=dto.MoveResponse}
// @Failure      403 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Router       /boards/{boardId}/move [post]
func (h *BoardHandler) Move(c *gin.Context) {
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.reorderService.Move(c.Request.Context(), boardID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// UpdateBoard godoc
// @Summary      Update a board
// @Description  Updates board metadata, manager only
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.UpdateBoardRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.BoardResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /boards/{boardId} [put]
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	board, err := h.boardService.UpdateBoard(c.Request.Context(), boardID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, board)
}

// DeleteBoard godoc
// @Summary      Delete a board
// @Tags         boards
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      403 {object} response.ErrorResponse
// @Router       /boards/{boardId} [delete]
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(c.Request.Context(), boardID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Board deleted"})
}
