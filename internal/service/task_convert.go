package service

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"workpanel-api/internal/domain"
	"workpanel-api/internal/dto"
)

// decodeTags decodes the JSONB tags column, tolerating null
func decodeTags(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

// decodeAssignees decodes the JSONB assignees column, tolerating null
func decodeAssignees(raw datatypes.JSON) []uuid.UUID {
	if len(raw) == 0 {
		return []uuid.UUID{}
	}
	var assignees []uuid.UUID
	if err := json.Unmarshal(raw, &assignees); err != nil || assignees == nil {
		return []uuid.UUID{}
	}
	return assignees
}

// encodeJSON marshals a slice into a JSONB column value
func encodeJSON(v interface{}) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return raw
}

// toChecklistItemResponse converts a domain checklist item to its response
func toChecklistItemResponse(item *domain.ChecklistItem) dto.ChecklistItemResponse {
	return dto.ChecklistItemResponse{
		ID:        item.ID,
		Text:      item.Text,
		Completed: item.Completed,
		Position:  item.Position,
	}
}

// toTaskResponse converts a domain task to its response. checklist may be nil
// when the caller did not load checklist items.
func toTaskResponse(task *domain.Task, checklist []*domain.ChecklistItem) *dto.TaskResponse {
	resp := &dto.TaskResponse{
		ID:          task.ID,
		GroupID:     task.GroupID,
		BoardID:     task.BoardID,
		Content:     task.Content,
		Description: task.Description,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		Position:    task.Position,
		Tags:        decodeTags(task.Tags),
		Assignees:   decodeAssignees(task.Assignees),
		CreatedAt:   task.CreatedAt,
	}
	for _, item := range checklist {
		resp.Checklist = append(resp.Checklist, toChecklistItemResponse(item))
	}
	return resp
}
