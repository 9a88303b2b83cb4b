package domain

import (
	"time"

	"github.com/google/uuid"
)

// TeamRoom represents a mid-level grouping of boards within a workpanel
type TeamRoom struct {
	BaseModel
	WorkpanelID uuid.UUID `gorm:"type:uuid;not null;index:idx_team_rooms_workpanel_id" json:"workpanel_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`

	Members []TeamRoomMember `gorm:"foreignKey:TeamRoomID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Boards  []Board          `gorm:"foreignKey:TeamRoomID" json:"boards,omitempty"`
}

// TeamRoomRole represents the role of a team room member
type TeamRoomRole string

const (
	TeamRoomRoleManager TeamRoomRole = "MANAGER"
	TeamRoomRoleEditor  TeamRoomRole = "EDITOR"
	TeamRoomRoleViewer  TeamRoomRole = "VIEWER"
)

// ParseTeamRoomRole validates a raw role string against the closed set
func ParseTeamRoomRole(raw string) (TeamRoomRole, bool) {
	switch TeamRoomRole(raw) {
	case TeamRoomRoleManager, TeamRoomRoleEditor, TeamRoomRoleViewer:
		return TeamRoomRole(raw), true
	}
	return "", false
}

// TeamRoomMember represents a direct member of a team room.
// Users without a direct entry may still have inherited access via their
// workpanel role.
type TeamRoomMember struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TeamRoomID uuid.UUID    `gorm:"type:uuid;not null;index:idx_team_room_members_team_room_id;uniqueIndex:uq_team_room_members_room_user" json:"team_room_id"`
	UserID     uuid.UUID    `gorm:"type:uuid;not null;index:idx_team_room_members_user_id;uniqueIndex:uq_team_room_members_room_user" json:"user_id"`
	RoleName   TeamRoomRole `gorm:"type:varchar(20);not null;default:'EDITOR'" json:"role_name"`
	JoinedAt   time.Time    `gorm:"type:timestamp;not null;default:now()" json:"joined_at"`
	TeamRoom   TeamRoom     `gorm:"foreignKey:TeamRoomID;constraint:OnDelete:CASCADE" json:"team_room,omitempty"`
}

// TableName specifies the table name for TeamRoom
func (TeamRoom) TableName() string {
	return "team_rooms"
}

// TableName specifies the table name for TeamRoomMember
func (TeamRoomMember) TableName() string {
	return "team_room_members"
}
