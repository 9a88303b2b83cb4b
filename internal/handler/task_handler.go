package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workpanel-api/internal/dto"
	"workpanel-api/internal/response"
	"workpanel-api/internal/service"
)

// TaskHandler handles task HTTP requests, including checklists and tag
// suggestions
type TaskHandler struct {
	taskService    service.TaskService
	suggestService service.SuggestService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, suggestService service.SuggestService) *TaskHandler {
	return &TaskHandler{taskService: taskService, suggestService: suggestService}
}

// CreateTask godoc
// @Summary      Create a task
// @Description  Appends a task at the end of its column
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateTaskRequest true "Task to create"
// @Success      201 {object} response.SuccessResponse{data=dto.TaskResponse}
// @Failure      403 {object} response.ErrorResponse
// @Router       /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, task)
}

// GetTask godoc
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /tasks/{taskId} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, task)
}

// UpdateTask godoc
// @Summary      Update a task
// @Description  Updates task metadata. Moves go through the board move endpoint.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Param        request body dto.UpdateTaskRequest true "Fields to update"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /tasks/{taskId} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, task)
}

// DeleteTask godoc
// @Summary      Delete a task
// @Description  Removes the task with its checklist, comments and attachments
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      404 {object} response.ErrorResponse
// @Router       /tasks/{taskId} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Task deleted"})
}

// AddChecklistItem godoc
// @Summary      Add a checklist item
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Param        request body dto.ChecklistItemRequest true "Item to add"
// @Success      201 {object} response.SuccessResponse{data=dto.ChecklistItemResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /tasks/{taskId}/checklist [post]
func (h *TaskHandler) AddChecklistItem(c *gin.Context) {
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.ChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	item, err := h.taskService.AddChecklistItem(c.Request.Context(), taskID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, item)
}

// ToggleChecklistItem godoc
// @Summary      Toggle a checklist item
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Param        itemId path string true "Checklist item ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ChecklistItemResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /tasks/{taskId}/checklist/{itemId}/toggle [post]
func (h *TaskHandler) ToggleChecklistItem(c *gin.Context) {
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "itemId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	item, err := h.taskService.ToggleChecklistItem(c.Request.Context(), taskID, itemID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, item)
}

// DeleteChecklistItem godoc
// @Summary      Delete a checklist item
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Param        itemId path string true "Checklist item ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      404 {object} response.ErrorResponse
// @Router       /tasks/{taskId}/checklist/{itemId} [delete]
func (h *TaskHandler) DeleteChecklistItem(c *gin.Context) {
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "itemId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteChecklistItem(c.Request.Context(), taskID, itemID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Checklist item deleted"})
}

// SuggestTags godoc
// @Summary      Suggest tags for a draft task
// @Description  Asks the suggestion service for tags matching a title and description
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Param        request body dto.SuggestTagsRequest true "Draft task text"
// @Success      200 {object} response.SuccessResponse{data=dto.SuggestTagsResponse}
// @Failure      502 {object} response.ErrorResponse
// @Router       /boards/{boardId}/suggest-tags [post]
func (h *TaskHandler) SuggestTags(c *gin.Context) {
	boardID, ok := pathUUID(c, "boardId")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.SuggestTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	suggestions, err := h.suggestService.SuggestTags(c.Request.Context(), boardID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, suggestions)
}
