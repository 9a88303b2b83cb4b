package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
	"workpanel-api/internal/repository"
	"workpanel-api/internal/response"
)

// RoleService resolves a user's effective role at each scope and maintains
// the accessible-workpanels index.
//
// Resolution order is always direct membership first, then inheritance from
// the parent scope. Workpanel roles map downward as OWNER/ADMIN to MANAGER,
// MEMBER to EDITOR and VIEWER to VIEWER. The inherited return value reports
// that the role came from a parent scope rather than a direct membership row.
type RoleService interface {
	ResolveWorkpanelRole(ctx context.Context, workpanelID, userID uuid.UUID) (domain.WorkpanelRole, error)
	ResolveTeamRoomRole(ctx context.Context, teamRoomID, userID uuid.UUID) (role domain.TeamRoomRole, inherited bool, err error)
	ResolveBoardRole(ctx context.Context, boardID, userID uuid.UUID) (role domain.BoardRole, inherited bool, err error)

	// RequireBoardEdit returns a forbidden error unless the user's effective
	// board role allows mutating groups and tasks.
	RequireBoardEdit(ctx context.Context, boardID, userID uuid.UUID) error

	// RequireBoardManage returns a forbidden error unless the user's
	// effective board role allows membership and board management.
	RequireBoardManage(ctx context.Context, boardID, userID uuid.UUID) error

	// GrantAccessPath records the workpanel in the user's accessible index.
	// Called whenever any membership path into the workpanel is created.
	GrantAccessPath(ctx context.Context, workpanelID, userID uuid.UUID) error

	// ReleaseAccessPath revokes the index entry only if the user's last
	// access path into the workpanel is gone. Callers invoke it after
	// removing a membership row.
	ReleaseAccessPath(ctx context.Context, workpanelID, userID uuid.UUID) error
}

// roleServiceImpl is the implementation of RoleService
type roleServiceImpl struct {
	workpanelRepo repository.WorkpanelRepository
	teamRoomRepo  repository.TeamRoomRepository
	boardRepo     repository.BoardRepository
	logger        *zap.Logger
}

// NewRoleService creates a new instance of RoleService
func NewRoleService(
	workpanelRepo repository.WorkpanelRepository,
	teamRoomRepo repository.TeamRoomRepository,
	boardRepo repository.BoardRepository,
	logger *zap.Logger,
) RoleService {
	return &roleServiceImpl{
		workpanelRepo: workpanelRepo,
		teamRoomRepo:  teamRoomRepo,
		boardRepo:     boardRepo,
		logger:        logger,
	}
}

// inheritTeamRoomRole maps a workpanel role to the team room role it implies
func inheritTeamRoomRole(role domain.WorkpanelRole) domain.TeamRoomRole {
	switch role {
	case domain.WorkpanelRoleOwner, domain.WorkpanelRoleAdmin:
		return domain.TeamRoomRoleManager
	case domain.WorkpanelRoleMember:
		return domain.TeamRoomRoleEditor
	default:
		return domain.TeamRoomRoleViewer
	}
}

// inheritBoardRole maps a team room role to the board role it implies
func inheritBoardRole(role domain.TeamRoomRole) domain.BoardRole {
	switch role {
	case domain.TeamRoomRoleManager:
		return domain.BoardRoleManager
	case domain.TeamRoomRoleEditor:
		return domain.BoardRoleEditor
	default:
		return domain.BoardRoleViewer
	}
}

// ResolveWorkpanelRole resolves the user's role in a workpanel
func (s *roleServiceImpl) ResolveWorkpanelRole(ctx context.Context, workpanelID, userID uuid.UUID) (domain.WorkpanelRole, error) {
	member, err := s.workpanelRepo.FindMember(ctx, workpanelID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", response.NewAppError(response.ErrCodeForbidden, "Not a member of this workpanel", "")
		}
		return "", response.NewAppError(response.ErrCodeInternal, "Failed to resolve workpanel role", err.Error())
	}
	return member.RoleName, nil
}

// ResolveTeamRoomRole resolves the user's effective role in a team room,
// falling back to the role inherited from the workpanel
func (s *roleServiceImpl) ResolveTeamRoomRole(ctx context.Context, teamRoomID, userID uuid.UUID) (domain.TeamRoomRole, bool, error) {
	member, err := s.teamRoomRepo.FindMember(ctx, teamRoomID, userID)
	if err == nil {
		return member.RoleName, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, response.NewAppError(response.ErrCodeInternal, "Failed to resolve team room role", err.Error())
	}

	teamRoom, err := s.teamRoomRepo.FindByID(ctx, teamRoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, response.NewAppError(response.ErrCodeNotFound, "Team room not found", "")
		}
		return "", false, response.NewAppError(response.ErrCodeInternal, "Failed to resolve team room role", err.Error())
	}

	parentRole, err := s.ResolveWorkpanelRole(ctx, teamRoom.WorkpanelID, userID)
	if err != nil {
		return "", false, err
	}
	return inheritTeamRoomRole(parentRole), true, nil
}

// ResolveBoardRole resolves the user's effective role on a board, falling
// back through the team room and then the workpanel. Private boards only
// honor direct membership, except workpanel owners and admins who always
// manage.
func (s *roleServiceImpl) ResolveBoardRole(ctx context.Context, boardID, userID uuid.UUID) (domain.BoardRole, bool, error) {
	member, err := s.boardRepo.FindMember(ctx, boardID, userID)
	if err == nil {
		return member.RoleName, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, response.NewAppError(response.ErrCodeInternal, "Failed to resolve board role", err.Error())
	}

	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return "", false, response.NewAppError(response.ErrCodeInternal, "Failed to resolve board role", err.Error())
	}

	if board.IsPrivate {
		parentRole, err := s.ResolveWorkpanelRole(ctx, board.WorkpanelID, userID)
		if err != nil {
			return "", false, err
		}
		if parentRole == domain.WorkpanelRoleOwner || parentRole == domain.WorkpanelRoleAdmin {
			return domain.BoardRoleManager, true, nil
		}
		return "", false, response.NewAppError(response.ErrCodeForbidden, "Board is private", "")
	}

	if board.TeamRoomID != nil {
		roomRole, _, err := s.ResolveTeamRoomRole(ctx, *board.TeamRoomID, userID)
		if err != nil {
			return "", false, err
		}
		return inheritBoardRole(roomRole), true, nil
	}

	parentRole, err := s.ResolveWorkpanelRole(ctx, board.WorkpanelID, userID)
	if err != nil {
		return "", false, err
	}
	return inheritBoardRole(inheritTeamRoomRole(parentRole)), true, nil
}

// RequireBoardEdit checks the user can mutate groups and tasks on the board
func (s *roleServiceImpl) RequireBoardEdit(ctx context.Context, boardID, userID uuid.UUID) error {
	role, _, err := s.ResolveBoardRole(ctx, boardID, userID)
	if err != nil {
		return err
	}
	if !role.CanEdit() {
		return response.NewAppError(response.ErrCodeForbidden, "Insufficient role to edit this board", "")
	}
	return nil
}

// RequireBoardManage checks the user can manage the board and its members
func (s *roleServiceImpl) RequireBoardManage(ctx context.Context, boardID, userID uuid.UUID) error {
	role, _, err := s.ResolveBoardRole(ctx, boardID, userID)
	if err != nil {
		return err
	}
	if !role.CanManage() {
		return response.NewAppError(response.ErrCodeForbidden, "Insufficient role to manage this board", "")
	}
	return nil
}

// GrantAccessPath records the workpanel in the user's accessible index
func (s *roleServiceImpl) GrantAccessPath(ctx context.Context, workpanelID, userID uuid.UUID) error {
	if err := s.workpanelRepo.UpsertAccess(ctx, workpanelID, userID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to record workpanel access", err.Error())
	}
	return nil
}

// ReleaseAccessPath revokes the accessible index entry when the user's last
// membership path into the workpanel is gone. Direct workpanel membership,
// any team room membership or any board membership keeps the entry alive.
func (s *roleServiceImpl) ReleaseAccessPath(ctx context.Context, workpanelID, userID uuid.UUID) error {
	_, err := s.workpanelRepo.FindMember(ctx, workpanelID, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check workpanel membership", err.Error())
	}

	teamRooms, err := s.teamRoomRepo.CountUserMemberships(ctx, workpanelID, userID, nil)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to count team room memberships", err.Error())
	}
	if teamRooms > 0 {
		return nil
	}

	boards, err := s.boardRepo.CountUserMemberships(ctx, workpanelID, userID, nil)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to count board memberships", err.Error())
	}
	if boards > 0 {
		return nil
	}

	if err := s.workpanelRepo.RevokeAccess(ctx, workpanelID, userID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to revoke workpanel access", err.Error())
	}
	s.logger.Info("revoked workpanel access, last path removed",
		zap.String("workpanel_id", workpanelID.String()),
		zap.String("user_id", userID.String()))
	return nil
}
