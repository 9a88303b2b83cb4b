package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workpanel-api/internal/client"
	"workpanel-api/internal/domain"
	"workpanel-api/internal/dto"
	"workpanel-api/internal/repository"
	"workpanel-api/internal/response"
)

// MemberService manages memberships at all three scopes. Every mutation
// enforces the self-action guard: callers never change or remove their own
// membership through these operations.
type MemberService interface {
	ListWorkpanelMembers(ctx context.Context, workpanelID, userID uuid.UUID) ([]*dto.MemberResponse, error)
	InviteWorkpanelMember(ctx context.Context, workpanelID, userID uuid.UUID, req *dto.InviteMemberRequest) (*dto.MemberResponse, error)
	UpdateWorkpanelMemberRole(ctx context.Context, workpanelID, targetID, userID uuid.UUID, req *dto.UpdateMemberRoleRequest) error
	RemoveWorkpanelMember(ctx context.Context, workpanelID, targetID, userID uuid.UUID) error

	ListTeamRoomMembers(ctx context.Context, teamRoomID, userID uuid.UUID) ([]*dto.MemberResponse, error)
	InviteTeamRoomMember(ctx context.Context, teamRoomID, userID uuid.UUID, req *dto.InviteMemberRequest) (*dto.MemberResponse, error)
	UpdateTeamRoomMemberRole(ctx context.Context, teamRoomID, targetID, userID uuid.UUID, req *dto.UpdateMemberRoleRequest) error
	RemoveTeamRoomMember(ctx context.Context, teamRoomID, targetID, userID uuid.UUID) error

	ListBoardMembers(ctx context.Context, boardID, userID uuid.UUID) ([]*dto.MemberResponse, error)
	InviteBoardMember(ctx context.Context, boardID, userID uuid.UUID, req *dto.InviteMemberRequest) (*dto.MemberResponse, error)
	UpdateBoardMemberRole(ctx context.Context, boardID, targetID, userID uuid.UUID, req *dto.UpdateMemberRoleRequest) error
	RemoveBoardMember(ctx context.Context, boardID, targetID, userID uuid.UUID) error
}

// memberServiceImpl is the implementation of MemberService
type memberServiceImpl struct {
	workpanelRepo       repository.WorkpanelRepository
	teamRoomRepo        repository.TeamRoomRepository
	boardRepo           repository.BoardRepository
	roleService         RoleService
	notificationService NotificationService
	userClient          client.UserClient
	logger              *zap.Logger
}

// NewMemberService creates a new instance of MemberService
func NewMemberService(
	workpanelRepo repository.WorkpanelRepository,
	teamRoomRepo repository.TeamRoomRepository,
	boardRepo repository.BoardRepository,
	roleService RoleService,
	notificationService NotificationService,
	userClient client.UserClient,
	logger *zap.Logger,
) MemberService {
	return &memberServiceImpl{
		workpanelRepo:       workpanelRepo,
		teamRoomRepo:        teamRoomRepo,
		boardRepo:           boardRepo,
		roleService:         roleService,
		notificationService: notificationService,
		userClient:          userClient,
		logger:              logger,
	}
}

// errSelfAction is the guard error for operations targeting the caller
func errSelfAction() error {
	return response.NewAppError(response.ErrCodeSelfAction, "Cannot change or remove your own membership", "")
}

// verifyUserExists checks the invited account against the user directory
func (s *memberServiceImpl) verifyUserExists(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.userClient.UserExists(ctx, userID)
	if err != nil {
		return response.NewAppError(response.ErrCodeUpstream, "Failed to verify user account", err.Error())
	}
	if !exists {
		return response.NewAppError(response.ErrCodeNotFound, "User not found", "")
	}
	return nil
}

// --- workpanel scope ---

// ListWorkpanelMembers lists the direct members of a workpanel
func (s *memberServiceImpl) ListWorkpanelMembers(ctx context.Context, workpanelID, userID uuid.UUID) ([]*dto.MemberResponse, error) {
	if _, err := s.roleService.ResolveWorkpanelRole(ctx, workpanelID, userID); err != nil {
		return nil, err
	}

	members, err := s.workpanelRepo.FindMembers(ctx, workpanelID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list members", err.Error())
	}

	responses := make([]*dto.MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, &dto.MemberResponse{
			UserID:   member.UserID,
			Role:     string(member.RoleName),
			JoinedAt: member.JoinedAt,
		})
	}
	return responses, nil
}

// InviteWorkpanelMember adds a member to a workpanel, owner or admin only
func (s *memberServiceImpl) InviteWorkpanelMember(ctx context.Context, workpanelID, userID uuid.UUID, req *dto.InviteMemberRequest) (*dto.MemberResponse, error) {
	if err := s.requireWorkpanelAdmin(ctx, workpanelID, userID); err != nil {
		return nil, err
	}

	role, ok := domain.ParseWorkpanelRole(req.Role)
	if !ok {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid workpanel role", req.Role)
	}
	if role == domain.WorkpanelRoleOwner {
		return nil, response.NewAppError(response.ErrCodeValidation, "Cannot invite as owner", "")
	}
	if err := s.verifyUserExists(ctx, req.UserID); err != nil {
		return nil, err
	}

	if _, err := s.workpanelRepo.FindMember(ctx, workpanelID, req.UserID); err == nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyMember, "User is already a member", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check membership", err.Error())
	}

	member := &domain.WorkpanelMember{
		ID:          uuid.New(),
		WorkpanelID: workpanelID,
		UserID:      req.UserID,
		RoleName:    role,
	}
	if err := s.workpanelRepo.AddMember(ctx, member); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add member", err.Error())
	}
	if err := s.roleService.GrantAccessPath(ctx, workpanelID, req.UserID); err != nil {
		return nil, err
	}

	s.notificationService.Notify(req.UserID,
		"You were added to a workpanel",
		fmt.Sprintf("/workpanels/%s", workpanelID))
	return &dto.MemberResponse{UserID: member.UserID, Role: string(member.RoleName), JoinedAt: member.JoinedAt}, nil
}

// UpdateWorkpanelMemberRole changes a member's workpanel role
func (s *memberServiceImpl) UpdateWorkpanelMemberRole(ctx context.Context, workpanelID, targetID, userID uuid.UUID, req *dto.UpdateMemberRoleRequest) error {
	if targetID == userID {
		return errSelfAction()
	}
	if err := s.requireWorkpanelAdmin(ctx, workpanelID, userID); err != nil {
		return err
	}

	role, ok := domain.ParseWorkpanelRole(req.Role)
	if !ok {
		return response.NewAppError(response.ErrCodeValidation, "Invalid workpanel role", req.Role)
	}
	if role == domain.WorkpanelRoleOwner {
		return response.NewAppError(response.ErrCodeValidation, "Ownership is not transferable through role updates", "")
	}

	target, err := s.workpanelRepo.FindMember(ctx, workpanelID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Member not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load member", err.Error())
	}
	if target.RoleName == domain.WorkpanelRoleOwner {
		return response.NewAppError(response.ErrCodeForbidden, "The owner's role cannot be changed", "")
	}

	if err := s.workpanelRepo.UpdateMemberRole(ctx, workpanelID, targetID, role); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to update member role", err.Error())
	}
	return nil
}

// RemoveWorkpanelMember removes a member from a workpanel
func (s *memberServiceImpl) RemoveWorkpanelMember(ctx context.Context, workpanelID, targetID, userID uuid.UUID) error {
	if targetID == userID {
		return errSelfAction()
	}
	if err := s.requireWorkpanelAdmin(ctx, workpanelID, userID); err != nil {
		return err
	}

	target, err := s.workpanelRepo.FindMember(ctx, workpanelID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Member not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load member", err.Error())
	}
	if target.RoleName == domain.WorkpanelRoleOwner {
		return response.NewAppError(response.ErrCodeForbidden, "The owner cannot be removed", "")
	}

	if err := s.workpanelRepo.RemoveMember(ctx, workpanelID, targetID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to remove member", err.Error())
	}
	return s.roleService.ReleaseAccessPath(ctx, workpanelID, targetID)
}

// requireWorkpanelAdmin checks the caller is the workpanel owner or an admin
func (s *memberServiceImpl) requireWorkpanelAdmin(ctx context.Context, workpanelID, userID uuid.UUID) error {
	role, err := s.roleService.ResolveWorkpanelRole(ctx, workpanelID, userID)
	if err != nil {
		return err
	}
	if role != domain.WorkpanelRoleOwner && role != domain.WorkpanelRoleAdmin {
		return response.NewAppError(response.ErrCodeForbidden, "Insufficient role to manage members", "")
	}
	return nil
}

// --- team room scope ---

// ListTeamRoomMembers lists the direct members of a team room
func (s *memberServiceImpl) ListTeamRoomMembers(ctx context.Context, teamRoomID, userID uuid.UUID) ([]*dto.MemberResponse, error) {
	if _, _, err := s.roleService.ResolveTeamRoomRole(ctx, teamRoomID, userID); err != nil {
		return nil, err
	}

	members, err := s.teamRoomRepo.FindMembers(ctx, teamRoomID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list members", err.Error())
	}

	responses := make([]*dto.MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, &dto.MemberResponse{
			UserID:   member.UserID,
			Role:     string(member.RoleName),
			JoinedAt: member.JoinedAt,
		})
	}
	return responses, nil
}

// InviteTeamRoomMember adds a direct member to a team room, manager only
func (s *memberServiceImpl) InviteTeamRoomMember(ctx context.Context, teamRoomID, userID uuid.UUID, req *dto.InviteMemberRequest) (*dto.MemberResponse, error) {
	if err := s.requireTeamRoomManager(ctx, teamRoomID, userID); err != nil {
		return nil, err
	}

	role, ok := domain.ParseTeamRoomRole(req.Role)
	if !ok {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid team room role", req.Role)
	}
	if err := s.verifyUserExists(ctx, req.UserID); err != nil {
		return nil, err
	}

	if _, err := s.teamRoomRepo.FindMember(ctx, teamRoomID, req.UserID); err == nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyMember, "User is already a member", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check membership", err.Error())
	}

	teamRoom, err := s.teamRoomRepo.FindByID(ctx, teamRoomID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load team room", err.Error())
	}

	member := &domain.TeamRoomMember{
		ID:         uuid.New(),
		TeamRoomID: teamRoomID,
		UserID:     req.UserID,
		RoleName:   role,
	}
	if err := s.teamRoomRepo.AddMember(ctx, member); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add member", err.Error())
	}
	if err := s.roleService.GrantAccessPath(ctx, teamRoom.WorkpanelID, req.UserID); err != nil {
		return nil, err
	}

	s.notificationService.Notify(req.UserID,
		fmt.Sprintf("You were added to team room %q", teamRoom.Name),
		fmt.Sprintf("/workpanels/%s/rooms/%s", teamRoom.WorkpanelID, teamRoomID))
	return &dto.MemberResponse{UserID: member.UserID, Role: string(member.RoleName), JoinedAt: member.JoinedAt}, nil
}

// UpdateTeamRoomMemberRole changes a direct member's team room role
func (s *memberServiceImpl) UpdateTeamRoomMemberRole(ctx context.Context, teamRoomID, targetID, userID uuid.UUID, req *dto.UpdateMemberRoleRequest) error {
	if targetID == userID {
		return errSelfAction()
	}
	if err := s.requireTeamRoomManager(ctx, teamRoomID, userID); err != nil {
		return err
	}

	role, ok := domain.ParseTeamRoomRole(req.Role)
	if !ok {
		return response.NewAppError(response.ErrCodeValidation, "Invalid team room role", req.Role)
	}

	if err := s.teamRoomRepo.UpdateMemberRole(ctx, teamRoomID, targetID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Member not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to update member role", err.Error())
	}
	return nil
}

// RemoveTeamRoomMember removes a direct member and revokes workpanel access
// if this was their last path in
func (s *memberServiceImpl) RemoveTeamRoomMember(ctx context.Context, teamRoomID, targetID, userID uuid.UUID) error {
	if targetID == userID {
		return errSelfAction()
	}
	if err := s.requireTeamRoomManager(ctx, teamRoomID, userID); err != nil {
		return err
	}

	if _, err := s.teamRoomRepo.FindMember(ctx, teamRoomID, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Member not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load member", err.Error())
	}
	teamRoom, err := s.teamRoomRepo.FindByID(ctx, teamRoomID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load team room", err.Error())
	}

	if err := s.teamRoomRepo.RemoveMember(ctx, teamRoomID, targetID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to remove member", err.Error())
	}
	return s.roleService.ReleaseAccessPath(ctx, teamRoom.WorkpanelID, targetID)
}

// requireTeamRoomManager checks the caller's effective team room role
func (s *memberServiceImpl) requireTeamRoomManager(ctx context.Context, teamRoomID, userID uuid.UUID) error {
	role, _, err := s.roleService.ResolveTeamRoomRole(ctx, teamRoomID, userID)
	if err != nil {
		return err
	}
	if role != domain.TeamRoomRoleManager {
		return response.NewAppError(response.ErrCodeForbidden, "Insufficient role to manage members", "")
	}
	return nil
}

// --- board scope ---

// ListBoardMembers lists the direct members of a board
func (s *memberServiceImpl) ListBoardMembers(ctx context.Context, boardID, userID uuid.UUID) ([]*dto.MemberResponse, error) {
	if _, _, err := s.roleService.ResolveBoardRole(ctx, boardID, userID); err != nil {
		return nil, err
	}

	members, err := s.boardRepo.FindMembers(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list members", err.Error())
	}

	responses := make([]*dto.MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, &dto.MemberResponse{
			UserID:   member.UserID,
			Role:     string(member.RoleName),
			JoinedAt: member.JoinedAt,
		})
	}
	return responses, nil
}

// InviteBoardMember adds a direct member to a board, manager only
func (s *memberServiceImpl) InviteBoardMember(ctx context.Context, boardID, userID uuid.UUID, req *dto.InviteMemberRequest) (*dto.MemberResponse, error) {
	if err := s.roleService.RequireBoardManage(ctx, boardID, userID); err != nil {
		return nil, err
	}

	role, ok := domain.ParseBoardRole(req.Role)
	if !ok {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid board role", req.Role)
	}
	if err := s.verifyUserExists(ctx, req.UserID); err != nil {
		return nil, err
	}

	if _, err := s.boardRepo.FindMember(ctx, boardID, req.UserID); err == nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyMember, "User is already a member", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check membership", err.Error())
	}

	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load board", err.Error())
	}

	member := &domain.BoardMember{
		ID:       uuid.New(),
		BoardID:  boardID,
		UserID:   req.UserID,
		RoleName: role,
	}
	if err := s.boardRepo.AddMember(ctx, member); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add member", err.Error())
	}
	if err := s.roleService.GrantAccessPath(ctx, board.WorkpanelID, req.UserID); err != nil {
		return nil, err
	}

	s.notificationService.Notify(req.UserID,
		fmt.Sprintf("You were added to board %q", board.Name),
		fmt.Sprintf("/boards/%s", boardID))
	return &dto.MemberResponse{UserID: member.UserID, Role: string(member.RoleName), JoinedAt: member.JoinedAt}, nil
}

// UpdateBoardMemberRole changes a direct member's board role
func (s *memberServiceImpl) UpdateBoardMemberRole(ctx context.Context, boardID, targetID, userID uuid.UUID, req *dto.UpdateMemberRoleRequest) error {
	if targetID == userID {
		return errSelfAction()
	}
	if err := s.roleService.RequireBoardManage(ctx, boardID, userID); err != nil {
		return err
	}

	role, ok := domain.ParseBoardRole(req.Role)
	if !ok {
		return response.NewAppError(response.ErrCodeValidation, "Invalid board role", req.Role)
	}

	if err := s.boardRepo.UpdateMemberRole(ctx, boardID, targetID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Member not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to update member role", err.Error())
	}
	return nil
}

// RemoveBoardMember removes a direct member and revokes workpanel access if
// this was their last path in
func (s *memberServiceImpl) RemoveBoardMember(ctx context.Context, boardID, targetID, userID uuid.UUID) error {
	if targetID == userID {
		return errSelfAction()
	}
	if err := s.roleService.RequireBoardManage(ctx, boardID, userID); err != nil {
		return err
	}

	if _, err := s.boardRepo.FindMember(ctx, boardID, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Member not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load member", err.Error())
	}
	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load board", err.Error())
	}

	if err := s.boardRepo.RemoveMember(ctx, boardID, targetID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to remove member", err.Error())
	}
	return s.roleService.ReleaseAccessPath(ctx, board.WorkpanelID, targetID)
}
