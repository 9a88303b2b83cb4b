package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workpanel represents a top-level workspace grouping team rooms and boards
type Workpanel struct {
	BaseModel
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_workpanels_owner_id" json:"owner_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`

	Members   []WorkpanelMember `gorm:"foreignKey:WorkpanelID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	TeamRooms []TeamRoom        `gorm:"foreignKey:WorkpanelID;constraint:OnDelete:CASCADE" json:"team_rooms,omitempty"`
	Boards    []Board           `gorm:"foreignKey:WorkpanelID;constraint:OnDelete:CASCADE" json:"boards,omitempty"`
}

// WorkpanelRole represents the role of a workpanel member
type WorkpanelRole string

const (
	WorkpanelRoleOwner  WorkpanelRole = "OWNER"
	WorkpanelRoleAdmin  WorkpanelRole = "ADMIN"
	WorkpanelRoleMember WorkpanelRole = "MEMBER"
	WorkpanelRoleViewer WorkpanelRole = "VIEWER"
)

// ParseWorkpanelRole validates a raw role string against the closed set.
// Unknown values are never persisted.
func ParseWorkpanelRole(raw string) (WorkpanelRole, bool) {
	switch WorkpanelRole(raw) {
	case WorkpanelRoleOwner, WorkpanelRoleAdmin, WorkpanelRoleMember, WorkpanelRoleViewer:
		return WorkpanelRole(raw), true
	}
	return "", false
}

// WorkpanelMember represents a member of a workpanel
type WorkpanelMember struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	WorkpanelID uuid.UUID     `gorm:"type:uuid;not null;index:idx_workpanel_members_workpanel_id;uniqueIndex:uq_workpanel_members_workpanel_user" json:"workpanel_id"`
	UserID      uuid.UUID     `gorm:"type:uuid;not null;index:idx_workpanel_members_user_id;uniqueIndex:uq_workpanel_members_workpanel_user" json:"user_id"`
	RoleName    WorkpanelRole `gorm:"type:varchar(20);not null;default:'MEMBER'" json:"role_name"`
	JoinedAt    time.Time     `gorm:"type:timestamp;not null;default:now()" json:"joined_at"`
	Workpanel   Workpanel     `gorm:"foreignKey:WorkpanelID;constraint:OnDelete:CASCADE" json:"workpanel,omitempty"`
}

// WorkpanelAccess is the cross-referenced "accessible workpanels" index entry.
// A row exists while the user has at least one access path into the workpanel
// (direct membership, a team room, or a board). The role resolver revokes it
// only when the last path disappears.
type WorkpanelAccess struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	WorkpanelID uuid.UUID `gorm:"type:uuid;not null;index:idx_workpanel_access_workpanel_id;uniqueIndex:uq_workpanel_access_workpanel_user" json:"workpanel_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_workpanel_access_user_id;uniqueIndex:uq_workpanel_access_workpanel_user" json:"user_id"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for Workpanel
func (Workpanel) TableName() string {
	return "workpanels"
}

// TableName specifies the table name for WorkpanelMember
func (WorkpanelMember) TableName() string {
	return "workpanel_members"
}

// TableName specifies the table name for WorkpanelAccess
func (WorkpanelAccess) TableName() string {
	return "workpanel_access"
}
