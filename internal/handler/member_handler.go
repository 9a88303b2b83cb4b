package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"workpanel-api/internal/dto"
	"workpanel-api/internal/response"
	"workpanel-api/internal/service"
)

// MemberHandler handles membership HTTP requests at all three scopes
type MemberHandler struct {
	memberService service.MemberService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// scopeMemberOps binds one scope's membership operations so the gin handlers
// stay uniform across workpanels, rooms and boards
type scopeMemberOps struct {
	param  string
	list   func(c *gin.Context, scopeID, userID uuid.UUID) (interface{}, error)
	invite func(c *gin.Context, scopeID, userID uuid.UUID, req *dto.InviteMemberRequest) (interface{}, error)
	update func(c *gin.Context, scopeID, targetID, userID uuid.UUID, req *dto.UpdateMemberRoleRequest) error
	remove func(c *gin.Context, scopeID, targetID, userID uuid.UUID) error
}

func (h *MemberHandler) workpanelOps() scopeMemberOps {
	return scopeMemberOps{
		param: "workpanelId",
		list: func(c *gin.Context, scopeID, userID uuid.UUID) (interface{}, error) {
			return h.memberService.ListWorkpanelMembers(c.Request.Context(), scopeID, userID)
		},
		invite: func(c *gin.Context, scopeID, userID uuid.UUID, req *dto.InviteMemberRequest) (interface{}, error) {
			return h.memberService.InviteWorkpanelMember(c.Request.Context(), scopeID, userID, req)
		},
		update: func(c *gin.Context, scopeID, targetID, userID uuid.UUID, req *dto.UpdateMemberRoleRequest) error {
			return h.memberService.UpdateWorkpanelMemberRole(c.Request.Context(), scopeID, targetID, userID, req)
		},
		remove: func(c *gin.Context, scopeID, targetID, userID uuid.UUID) error {
			return h.memberService.RemoveWorkpanelMember(c.Request.Context(), scopeID, targetID, userID)
		},
	}
}

func (h *MemberHandler) teamRoomOps() scopeMemberOps {
	return scopeMemberOps{
		param: "roomId",
		list: func(c *gin.Context, scopeID, userID uuid.UUID) (interface{}, error) {
			return h.memberService.ListTeamRoomMembers(c.Request.Context(), scopeID, userID)
		},
		invite: func(c *gin.Context, scopeID, userID uuid.UUID, req *dto.InviteMemberRequest) (interface{}, error) {
			return h.memberService.InviteTeamRoomMember(c.Request.Context(), scopeID, userID, req)
		},
		update: func(c *gin.Context, scopeID, targetID, userID uuid.UUID, req *dto.UpdateMemberRoleRequest) error {
			return h.memberService.UpdateTeamRoomMemberRole(c.Request.Context(), scopeID, targetID, userID, req)
		},
		remove: func(c *gin.Context, scopeID, targetID, userID uuid.UUID) error {
			return h.memberService.RemoveTeamRoomMember(c.Request.Context(), scopeID, targetID, userID)
		},
	}
}

func (h *MemberHandler) boardOps() scopeMemberOps {
	return scopeMemberOps{
		param: "boardId",
		list: func(c *gin.Context, scopeID, userID uuid.UUID) (interface{}, error) {
			return h.memberService.ListBoardMembers(c.Request.Context(), scopeID, userID)
		},
		invite: func(c *gin.Context, scopeID, userID uuid.UUID, req *dto.InviteMemberRequest) (interface{}, error) {
			return h.memberService.InviteBoardMember(c.Request.Context(), scopeID, userID, req)
		},
		update: func(c *gin.Context, scopeID, targetID, userID uuid.UUID, req *dto.UpdateMemberRoleRequest) error {
			return h.memberService.UpdateBoardMemberRole(c.Request.Context(), scopeID, targetID, userID, req)
		},
		remove: func(c *gin.Context, scopeID, targetID, userID uuid.UUID) error {
			return h.memberService.RemoveBoardMember(c.Request.Context(), scopeID, targetID, userID)
		},
	}
}

func (h *MemberHandler) list(ops scopeMemberOps) gin.HandlerFunc {
	return func(c *gin.Context) {
		scopeID, ok := pathUUID(c, ops.param)
		if !ok {
			return
		}
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		members, err := ops.list(c, scopeID, userID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.SendSuccess(c, http.StatusOK, members)
	}
}

func (h *MemberHandler) invite(ops scopeMemberOps) gin.HandlerFunc {
	return func(c *gin.Context) {
		scopeID, ok := pathUUID(c, ops.param)
		if !ok {
			return
		}
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req dto.InviteMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
			return
		}
		member, err := ops.invite(c, scopeID, userID, &req)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.SendSuccess(c, http.StatusCreated, member)
	}
}

func (h *MemberHandler) updateRole(ops scopeMemberOps) gin.HandlerFunc {
	return func(c *gin.Context) {
		scopeID, ok := pathUUID(c, ops.param)
		if !ok {
			return
		}
		targetID, ok := pathUUID(c, "userId")
		if !ok {
			return
		}
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req dto.UpdateMemberRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
			return
		}
		if err := ops.update(c, scopeID, targetID, userID, &req); err != nil {
			handleServiceError(c, err)
			return
		}
		response.SendSuccess(c, http.StatusOK, gin.H{"message": "Member role updated"})
	}
}

func (h *MemberHandler) remove(ops scopeMemberOps) gin.HandlerFunc {
	return func(c *gin.Context) {
		scopeID, ok := pathUUID(c, ops.param)
		if !ok {
			return
		}
		targetID, ok := pathUUID(c, "userId")
		if !ok {
			return
		}
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		if err := ops.remove(c, scopeID, targetID, userID); err != nil {
			handleServiceError(c, err)
			return
		}
		response.SendSuccess(c, http.StatusOK, gin.H{"message": "Member removed"})
	}
}

// ListWorkpanelMembers lists the direct members of a workpanel
func (h *MemberHandler) ListWorkpanelMembers(c *gin.Context) { h.list(h.workpanelOps())(c) }

// InviteWorkpanelMember adds a member to a workpanel
func (h *MemberHandler) InviteWorkpanelMember(c *gin.Context) { h.invite(h.workpanelOps())(c) }

// UpdateWorkpanelMemberRole changes a workpanel member's role
func (h *MemberHandler) UpdateWorkpanelMemberRole(c *gin.Context) {
	h.updateRole(h.workpanelOps())(c)
}

// RemoveWorkpanelMember removes a member from a workpanel
func (h *MemberHandler) RemoveWorkpanelMember(c *gin.Context) { h.remove(h.workpanelOps())(c) }

// ListTeamRoomMembers lists the direct members of a team room
func (h *MemberHandler) ListTeamRoomMembers(c *gin.Context) { h.list(h.teamRoomOps())(c) }

// InviteTeamRoomMember adds a direct member to a team room
func (h *MemberHandler) InviteTeamRoomMember(c *gin.Context) { h.invite(h.teamRoomOps())(c) }

// UpdateTeamRoomMemberRole changes a team room member's role
func (h *MemberHandler) UpdateTeamRoomMemberRole(c *gin.Context) {
	h.updateRole(h.teamRoomOps())(c)
}

// RemoveTeamRoomMember removes a direct member from a team room
func (h *MemberHandler) RemoveTeamRoomMember(c *gin.Context) { h.remove(h.teamRoomOps())(c) }

// ListBoardMembers lists the direct members of a board
func (h *MemberHandler) ListBoardMembers(c *gin.Context) { h.list(h.boardOps())(c) }

// InviteBoardMember adds a direct member to a board
func (h *MemberHandler) InviteBoardMember(c *gin.Context) { h.invite(h.boardOps())(c) }

// UpdateBoardMemberRole changes a board member's role
func (h *MemberHandler) UpdateBoardMemberRole(c *gin.Context) { h.updateRole(h.boardOps())(c) }

// RemoveBoardMember removes a direct member from a board
func (h *MemberHandler) RemoveBoardMember(c *gin.Context) { h.remove(h.boardOps())(c) }
