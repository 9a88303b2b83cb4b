package dto

import "github.com/google/uuid"

// DragKind discriminates what a drag gesture moved
type DragKind string

const (
	DragKindColumn DragKind = "COLUMN"
	DragKindTask   DragKind = "TASK"
)

// MoveDestination is the drop target of a drag gesture. A request without a
// destination is a cancelled drag: no state change, no write.
type MoveDestination struct {
	GroupID uuid.UUID `json:"groupId"` // ignored for COLUMN moves
	Index   int       `json:"index" binding:"min=0"`
}

// MoveRequest mirrors a client drag result.
//
// Version fields carry the optimistic-concurrency tokens the client computed
// its drag against: OrderVersion (board column order) for COLUMN moves,
// SourceListVersion/DestListVersion (group task lists) for TASK moves. A nil
// version skips the check.
type MoveRequest struct {
	Kind          DragKind         `json:"kind" binding:"required"`
	SourceGroupID uuid.UUID        `json:"sourceGroupId"` // ignored for COLUMN moves
	SourceIndex   int              `json:"sourceIndex" binding:"min=0"`
	Destination   *MoveDestination `json:"destination,omitempty"`

	OrderVersion      *int64 `json:"orderVersion,omitempty"`
	SourceListVersion *int64 `json:"sourceListVersion,omitempty"`
	DestListVersion   *int64 `json:"destListVersion,omitempty"`
}

// MoveResponse reports the committed reorder outcome
type MoveResponse struct {
	Committed bool `json:"committed"`

	// Changed carries every entity whose position was rewritten by the
	// gesture, so the client can patch its optimistic view if needed.
	ChangedGroups []GroupResponse `json:"changedGroups,omitempty"`
	ChangedTasks  []TaskResponse  `json:"changedTasks,omitempty"`
}
