package domain

import "github.com/google/uuid"

// Group represents a column on a board. Position is the dense zero-based
// order of the group among the board's groups.
//
// ListVersion is a monotonic counter bumped on every committed reorder that
// touches this group's task list (or the board's column order). Reorder
// requests carry the version they were computed against; a stale version
// aborts the whole batch with a conflict instead of last-write-wins.
type Group struct {
	BaseModel
	BoardID     uuid.UUID `gorm:"type:uuid;not null;index:idx_groups_board_id" json:"board_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Position    int       `gorm:"type:int;not null;default:0;index:idx_groups_position" json:"position"`
	ListVersion int64     `gorm:"type:bigint;not null;default:0" json:"list_version"`

	Board Board  `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"board,omitempty"`
	Tasks []Task `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

// TableName specifies the table name for Group
func (Group) TableName() string {
	return "groups"
}
