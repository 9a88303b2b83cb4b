package domain

import (
	"time"

	"github.com/google/uuid"
)

// Board represents a kanban surface containing ordered groups of tasks.
// TeamRoomID is nullable: boards without a team room are "Uncategorized".
type Board struct {
	BaseModel
	WorkpanelID uuid.UUID  `gorm:"type:uuid;not null;index:idx_boards_workpanel_id" json:"workpanel_id"`
	TeamRoomID  *uuid.UUID `gorm:"type:uuid;index:idx_boards_team_room_id" json:"team_room_id,omitempty"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_boards_owner_id" json:"owner_id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	IsPrivate   bool       `gorm:"default:false" json:"is_private"`

	// GroupOrderVersion is bumped on every committed column reorder. It is
	// the optimistic-concurrency token for the board's column order, the
	// same way Group.ListVersion covers a single group's task list.
	GroupOrderVersion int64 `gorm:"type:bigint;not null;default:0" json:"group_order_version"`

	Members  []BoardMember   `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Groups   []Group         `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"groups,omitempty"`
	Activity []ActivityEntry `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"activity,omitempty"`
}

// BoardRole represents the role of a board member
type BoardRole string

const (
	BoardRoleManager BoardRole = "MANAGER"
	BoardRoleEditor  BoardRole = "EDITOR"
	BoardRoleViewer  BoardRole = "VIEWER"
	BoardRoleGuest   BoardRole = "GUEST"
)

// ParseBoardRole validates a raw role string against the closed set
func ParseBoardRole(raw string) (BoardRole, bool) {
	switch BoardRole(raw) {
	case BoardRoleManager, BoardRoleEditor, BoardRoleViewer, BoardRoleGuest:
		return BoardRole(raw), true
	}
	return "", false
}

// CanEdit reports whether the role allows mutating groups and tasks
func (r BoardRole) CanEdit() bool {
	return r == BoardRoleManager || r == BoardRoleEditor
}

// CanManage reports whether the role allows membership and board management
func (r BoardRole) CanManage() bool {
	return r == BoardRoleManager
}

// BoardMember represents a direct member of a board
type BoardMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index:idx_board_members_board_id;uniqueIndex:uq_board_members_board_user" json:"board_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_board_members_user_id;uniqueIndex:uq_board_members_board_user" json:"user_id"`
	RoleName BoardRole `gorm:"type:varchar(20);not null;default:'EDITOR'" json:"role_name"`
	JoinedAt time.Time `gorm:"type:timestamp;not null;default:now()" json:"joined_at"`
	Board    Board     `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"board,omitempty"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}

// TableName specifies the table name for BoardMember
func (BoardMember) TableName() string {
	return "board_members"
}
