package dto

import "github.com/google/uuid"

// Column is one materialized column of a board view: the group plus its
// tasks sorted ascending by position.
type Column struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Position    int            `json:"position"`
	ListVersion int64          `json:"listVersion"`
	Items       []TaskResponse `json:"items"`
}

// BoardViewResponse is the full materialized column structure for a board,
// rebuilt from the latest snapshot of groups and tasks on every read.
type BoardViewResponse struct {
	BoardID           uuid.UUID `json:"boardId"`
	GroupOrderVersion int64     `json:"groupOrderVersion"`
	Columns           []Column  `json:"columns"` // sorted ascending by position
}
