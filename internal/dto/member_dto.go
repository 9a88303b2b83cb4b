package dto

import (
	"time"

	"github.com/google/uuid"
)

// InviteMemberRequest represents the request to add a member to a workpanel,
// team room, or board. Role is validated against the closed set of the scope.
type InviteMemberRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
	Role   string    `json:"role" binding:"required"`
}

// UpdateMemberRoleRequest represents the request to change a member's role
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// MemberResponse represents a resolved member of a scope. Inherited reports
// whether the role came from a parent scope rather than a direct entry.
type MemberResponse struct {
	UserID    uuid.UUID `json:"userId"`
	Role      string    `json:"role"`
	Inherited bool      `json:"inherited"`
	JoinedAt  time.Time `json:"joinedAt,omitempty"`
}
