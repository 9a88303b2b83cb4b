package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"workpanel-api/internal/domain"
	"workpanel-api/internal/dto"
)

// MockWorkpanelRepository is a mock implementation of WorkpanelRepository
type MockWorkpanelRepository struct {
	CreateFunc               func(ctx context.Context, workpanel *domain.Workpanel) error
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Workpanel, error)
	UpdateFunc               func(ctx context.Context, workpanel *domain.Workpanel) error
	DeleteFunc               func(ctx context.Context, id uuid.UUID) error
	AddMemberFunc            func(ctx context.Context, member *domain.WorkpanelMember) error
	FindMemberFunc           func(ctx context.Context, workpanelID, userID uuid.UUID) (*domain.WorkpanelMember, error)
	FindMembersFunc          func(ctx context.Context, workpanelID uuid.UUID) ([]*domain.WorkpanelMember, error)
	UpdateMemberRoleFunc     func(ctx context.Context, workpanelID, userID uuid.UUID, role domain.WorkpanelRole) error
	RemoveMemberFunc         func(ctx context.Context, workpanelID, userID uuid.UUID) error
	UpsertAccessFunc         func(ctx context.Context, workpanelID, userID uuid.UUID) error
	RevokeAccessFunc         func(ctx context.Context, workpanelID, userID uuid.UUID) error
	HasAccessFunc            func(ctx context.Context, workpanelID, userID uuid.UUID) (bool, error)
	FindAccessibleByUserFunc func(ctx context.Context, userID uuid.UUID) ([]*domain.Workpanel, error)
}

func (m *MockWorkpanelRepository) Create(ctx context.Context, workpanel *domain.Workpanel) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, workpanel)
	}
	return nil
}

func (m *MockWorkpanelRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Workpanel, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockWorkpanelRepository) Update(ctx context.Context, workpanel *domain.Workpanel) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, workpanel)
	}
	return nil
}

func (m *MockWorkpanelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockWorkpanelRepository) AddMember(ctx context.Context, member *domain.WorkpanelMember) error {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, member)
	}
	return nil
}

func (m *MockWorkpanelRepository) FindMember(ctx context.Context, workpanelID, userID uuid.UUID) (*domain.WorkpanelMember, error) {
	if m.FindMemberFunc != nil {
		return m.FindMemberFunc(ctx, workpanelID, userID)
	}
	return nil, nil
}

func (m *MockWorkpanelRepository) FindMembers(ctx context.Context, workpanelID uuid.UUID) ([]*domain.WorkpanelMember, error) {
	if m.FindMembersFunc != nil {
		return m.FindMembersFunc(ctx, workpanelID)
	}
	return nil, nil
}

func (m *MockWorkpanelRepository) UpdateMemberRole(ctx context.Context, workpanelID, userID uuid.UUID, role domain.WorkpanelRole) error {
	if m.UpdateMemberRoleFunc != nil {
		return m.UpdateMemberRoleFunc(ctx, workpanelID, userID, role)
	}
	return nil
}

func (m *MockWorkpanelRepository) RemoveMember(ctx context.Context, workpanelID, userID uuid.UUID) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, workpanelID, userID)
	}
	return nil
}

func (m *MockWorkpanelRepository) UpsertAccess(ctx context.Context, workpanelID, userID uuid.UUID) error {
	if m.UpsertAccessFunc != nil {
		return m.UpsertAccessFunc(ctx, workpanelID, userID)
	}
	return nil
}

func (m *MockWorkpanelRepository) RevokeAccess(ctx context.Context, workpanelID, userID uuid.UUID) error {
	if m.RevokeAccessFunc != nil {
		return m.RevokeAccessFunc(ctx, workpanelID, userID)
	}
	return nil
}

func (m *MockWorkpanelRepository) HasAccess(ctx context.Context, workpanelID, userID uuid.UUID) (bool, error) {
	if m.HasAccessFunc != nil {
		return m.HasAccessFunc(ctx, workpanelID, userID)
	}
	return false, nil
}

func (m *MockWorkpanelRepository) FindAccessibleByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Workpanel, error) {
	if m.FindAccessibleByUserFunc != nil {
		return m.FindAccessibleByUserFunc(ctx, userID)
	}
	return nil, nil
}

// MockTeamRoomRepository is a mock implementation of TeamRoomRepository
type MockTeamRoomRepository struct {
	CreateFunc               func(ctx context.Context, teamRoom *domain.TeamRoom) error
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.TeamRoom, error)
	FindByWorkpanelIDFunc    func(ctx context.Context, workpanelID uuid.UUID) ([]*domain.TeamRoom, error)
	UpdateFunc               func(ctx context.Context, teamRoom *domain.TeamRoom) error
	DeleteFunc               func(ctx context.Context, id uuid.UUID) error
	AddMemberFunc            func(ctx context.Context, member *domain.TeamRoomMember) error
	FindMemberFunc           func(ctx context.Context, teamRoomID, userID uuid.UUID) (*domain.TeamRoomMember, error)
	FindMembersFunc          func(ctx context.Context, teamRoomID uuid.UUID) ([]*domain.TeamRoomMember, error)
	UpdateMemberRoleFunc     func(ctx context.Context, teamRoomID, userID uuid.UUID, role domain.TeamRoomRole) error
	RemoveMemberFunc         func(ctx context.Context, teamRoomID, userID uuid.UUID) error
	CountUserMembershipsFunc func(ctx context.Context, workpanelID, userID uuid.UUID, exclude *uuid.UUID) (int64, error)
}

func (m *MockTeamRoomRepository) Create(ctx context.Context, teamRoom *domain.TeamRoom) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, teamRoom)
	}
	return nil
}

func (m *MockTeamRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.TeamRoom, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTeamRoomRepository) FindByWorkpanelID(ctx context.Context, workpanelID uuid.UUID) ([]*domain.TeamRoom, error) {
	if m.FindByWorkpanelIDFunc != nil {
		return m.FindByWorkpanelIDFunc(ctx, workpanelID)
	}
	return nil, nil
}

func (m *MockTeamRoomRepository) Update(ctx context.Context, teamRoom *domain.TeamRoom) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, teamRoom)
	}
	return nil
}

func (m *MockTeamRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTeamRoomRepository) AddMember(ctx context.Context, member *domain.TeamRoomMember) error {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, member)
	}
	return nil
}

func (m *MockTeamRoomRepository) FindMember(ctx context.Context, teamRoomID, userID uuid.UUID) (*domain.TeamRoomMember, error) {
	if m.FindMemberFunc != nil {
		return m.FindMemberFunc(ctx, teamRoomID, userID)
	}
	return nil, nil
}

func (m *MockTeamRoomRepository) FindMembers(ctx context.Context, teamRoomID uuid.UUID) ([]*domain.TeamRoomMember, error) {
	if m.FindMembersFunc != nil {
		return m.FindMembersFunc(ctx, teamRoomID)
	}
	return nil, nil
}

func (m *MockTeamRoomRepository) UpdateMemberRole(ctx context.Context, teamRoomID, userID uuid.UUID, role domain.TeamRoomRole) error {
	if m.UpdateMemberRoleFunc != nil {
		return m.UpdateMemberRoleFunc(ctx, teamRoomID, userID, role)
	}
	return nil
}

func (m *MockTeamRoomRepository) RemoveMember(ctx context.Context, teamRoomID, userID uuid.UUID) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, teamRoomID, userID)
	}
	return nil
}

func (m *MockTeamRoomRepository) CountUserMemberships(ctx context.Context, workpanelID, userID uuid.UUID, exclude *uuid.UUID) (int64, error) {
	if m.CountUserMembershipsFunc != nil {
		return m.CountUserMembershipsFunc(ctx, workpanelID, userID, exclude)
	}
	return 0, nil
}

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	CreateFunc               func(ctx context.Context, board *domain.Board) error
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByWorkpanelIDFunc    func(ctx context.Context, workpanelID uuid.UUID) ([]*domain.Board, error)
	FindByTeamRoomIDFunc     func(ctx context.Context, teamRoomID uuid.UUID) ([]*domain.Board, error)
	UpdateFunc               func(ctx context.Context, board *domain.Board) error
	DeleteFunc               func(ctx context.Context, id uuid.UUID) error
	AddMemberFunc            func(ctx context.Context, member *domain.BoardMember) error
	FindMemberFunc           func(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardMember, error)
	FindMembersFunc          func(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardMember, error)
	UpdateMemberRoleFunc     func(ctx context.Context, boardID, userID uuid.UUID, role domain.BoardRole) error
	RemoveMemberFunc         func(ctx context.Context, boardID, userID uuid.UUID) error
	CountUserMembershipsFunc func(ctx context.Context, workpanelID, userID uuid.UUID, exclude *uuid.UUID) (int64, error)
}

func (m *MockBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBoardRepository) FindByWorkpanelID(ctx context.Context, workpanelID uuid.UUID) ([]*domain.Board, error) {
	if m.FindByWorkpanelIDFunc != nil {
		return m.FindByWorkpanelIDFunc(ctx, workpanelID)
	}
	return nil, nil
}

func (m *MockBoardRepository) FindByTeamRoomID(ctx context.Context, teamRoomID uuid.UUID) ([]*domain.Board, error) {
	if m.FindByTeamRoomIDFunc != nil {
		return m.FindByTeamRoomIDFunc(ctx, teamRoomID)
	}
	return nil, nil
}

func (m *MockBoardRepository) Update(ctx context.Context, board *domain.Board) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockBoardRepository) AddMember(ctx context.Context, member *domain.BoardMember) error {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, member)
	}
	return nil
}

func (m *MockBoardRepository) FindMember(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardMember, error) {
	if m.FindMemberFunc != nil {
		return m.FindMemberFunc(ctx, boardID, userID)
	}
	return nil, nil
}

func (m *MockBoardRepository) FindMembers(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardMember, error) {
	if m.FindMembersFunc != nil {
		return m.FindMembersFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockBoardRepository) UpdateMemberRole(ctx context.Context, boardID, userID uuid.UUID, role domain.BoardRole) error {
	if m.UpdateMemberRoleFunc != nil {
		return m.UpdateMemberRoleFunc(ctx, boardID, userID, role)
	}
	return nil
}

func (m *MockBoardRepository) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, boardID, userID)
	}
	return nil
}

func (m *MockBoardRepository) CountUserMemberships(ctx context.Context, workpanelID, userID uuid.UUID, exclude *uuid.UUID) (int64, error) {
	if m.CountUserMembershipsFunc != nil {
		return m.CountUserMembershipsFunc(ctx, workpanelID, userID, exclude)
	}
	return 0, nil
}

// MockGroupRepository is a mock implementation of GroupRepository
type MockGroupRepository struct {
	CreateFunc         func(ctx context.Context, group *domain.Group) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	FindByBoardIDFunc  func(ctx context.Context, boardID uuid.UUID) ([]*domain.Group, error)
	UpdateFunc         func(ctx context.Context, group *domain.Group) error
	CountByBoardIDFunc func(ctx context.Context, boardID uuid.UUID) (int64, error)
	DeleteCascadeFunc  func(ctx context.Context, groupID uuid.UUID) error
}

func (m *MockGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, group)
	}
	return nil
}

func (m *MockGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockGroupRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Group, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockGroupRepository) Update(ctx context.Context, group *domain.Group) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, group)
	}
	return nil
}

func (m *MockGroupRepository) CountByBoardID(ctx context.Context, boardID uuid.UUID) (int64, error) {
	if m.CountByBoardIDFunc != nil {
		return m.CountByBoardIDFunc(ctx, boardID)
	}
	return 0, nil
}

func (m *MockGroupRepository) DeleteCascade(ctx context.Context, groupID uuid.UUID) error {
	if m.DeleteCascadeFunc != nil {
		return m.DeleteCascadeFunc(ctx, groupID)
	}
	return nil
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	CreateFunc                      func(ctx context.Context, task *domain.Task) error
	FindByIDFunc                    func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByGroupIDFunc               func(ctx context.Context, groupID uuid.UUID) ([]*domain.Task, error)
	FindByBoardIDFunc               func(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error)
	UpdateFunc                      func(ctx context.Context, task *domain.Task) error
	CountByGroupIDFunc              func(ctx context.Context, groupID uuid.UUID) (int64, error)
	DeleteCascadeFunc               func(ctx context.Context, taskID uuid.UUID) error
	CreateChecklistItemFunc         func(ctx context.Context, item *domain.ChecklistItem) error
	FindChecklistItemsFunc          func(ctx context.Context, taskID uuid.UUID) ([]*domain.ChecklistItem, error)
	FindChecklistItemsByTaskIDsFunc func(ctx context.Context, taskIDs []uuid.UUID) ([]*domain.ChecklistItem, error)
	UpdateChecklistItemFunc         func(ctx context.Context, item *domain.ChecklistItem) error
	DeleteChecklistItemFunc         func(ctx context.Context, itemID uuid.UUID) error
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]*domain.Task, error) {
	if m.FindByGroupIDFunc != nil {
		return m.FindByGroupIDFunc(ctx, groupID)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) CountByGroupID(ctx context.Context, groupID uuid.UUID) (int64, error) {
	if m.CountByGroupIDFunc != nil {
		return m.CountByGroupIDFunc(ctx, groupID)
	}
	return 0, nil
}

func (m *MockTaskRepository) DeleteCascade(ctx context.Context, taskID uuid.UUID) error {
	if m.DeleteCascadeFunc != nil {
		return m.DeleteCascadeFunc(ctx, taskID)
	}
	return nil
}

func (m *MockTaskRepository) CreateChecklistItem(ctx context.Context, item *domain.ChecklistItem) error {
	if m.CreateChecklistItemFunc != nil {
		return m.CreateChecklistItemFunc(ctx, item)
	}
	return nil
}

func (m *MockTaskRepository) FindChecklistItems(ctx context.Context, taskID uuid.UUID) ([]*domain.ChecklistItem, error) {
	if m.FindChecklistItemsFunc != nil {
		return m.FindChecklistItemsFunc(ctx, taskID)
	}
	return nil, nil
}

func (m *MockTaskRepository) FindChecklistItemsByTaskIDs(ctx context.Context, taskIDs []uuid.UUID) ([]*domain.ChecklistItem, error) {
	if m.FindChecklistItemsByTaskIDsFunc != nil {
		return m.FindChecklistItemsByTaskIDsFunc(ctx, taskIDs)
	}
	return nil, nil
}

func (m *MockTaskRepository) UpdateChecklistItem(ctx context.Context, item *domain.ChecklistItem) error {
	if m.UpdateChecklistItemFunc != nil {
		return m.UpdateChecklistItemFunc(ctx, item)
	}
	return nil
}

func (m *MockTaskRepository) DeleteChecklistItem(ctx context.Context, itemID uuid.UUID) error {
	if m.DeleteChecklistItemFunc != nil {
		return m.DeleteChecklistItemFunc(ctx, itemID)
	}
	return nil
}

// MockReorderRepository is a mock implementation of ReorderRepository
type MockReorderRepository struct {
	ApplyColumnOrderFunc func(ctx context.Context, boardID uuid.UUID, positions map[uuid.UUID]int, expectedVersion *int64) error
	ApplyTaskOrderFunc   func(ctx context.Context, positions map[uuid.UUID]int, taskGroups map[uuid.UUID]uuid.UUID, expectedVersions map[uuid.UUID]*int64) error
}

func (m *MockReorderRepository) ApplyColumnOrder(ctx context.Context, boardID uuid.UUID, positions map[uuid.UUID]int, expectedVersion *int64) error {
	if m.ApplyColumnOrderFunc != nil {
		return m.ApplyColumnOrderFunc(ctx, boardID, positions, expectedVersion)
	}
	return nil
}

func (m *MockReorderRepository) ApplyTaskOrder(ctx context.Context, positions map[uuid.UUID]int, taskGroups map[uuid.UUID]uuid.UUID, expectedVersions map[uuid.UUID]*int64) error {
	if m.ApplyTaskOrderFunc != nil {
		return m.ApplyTaskOrderFunc(ctx, positions, taskGroups, expectedVersions)
	}
	return nil
}

// MockRoleService is a mock implementation of RoleService. The Require and
// Grant operations default to success so permission checks stay out of the
// way unless a test overrides them.
type MockRoleService struct {
	ResolveWorkpanelRoleFunc func(ctx context.Context, workpanelID, userID uuid.UUID) (domain.WorkpanelRole, error)
	ResolveTeamRoomRoleFunc  func(ctx context.Context, teamRoomID, userID uuid.UUID) (domain.TeamRoomRole, bool, error)
	ResolveBoardRoleFunc     func(ctx context.Context, boardID, userID uuid.UUID) (domain.BoardRole, bool, error)
	RequireBoardEditFunc     func(ctx context.Context, boardID, userID uuid.UUID) error
	RequireBoardManageFunc   func(ctx context.Context, boardID, userID uuid.UUID) error
	GrantAccessPathFunc      func(ctx context.Context, workpanelID, userID uuid.UUID) error
	ReleaseAccessPathFunc    func(ctx context.Context, workpanelID, userID uuid.UUID) error
}

func (m *MockRoleService) ResolveWorkpanelRole(ctx context.Context, workpanelID, userID uuid.UUID) (domain.WorkpanelRole, error) {
	if m.ResolveWorkpanelRoleFunc != nil {
		return m.ResolveWorkpanelRoleFunc(ctx, workpanelID, userID)
	}
	return domain.WorkpanelRoleOwner, nil
}

func (m *MockRoleService) ResolveTeamRoomRole(ctx context.Context, teamRoomID, userID uuid.UUID) (domain.TeamRoomRole, bool, error) {
	if m.ResolveTeamRoomRoleFunc != nil {
		return m.ResolveTeamRoomRoleFunc(ctx, teamRoomID, userID)
	}
	return domain.TeamRoomRoleManager, false, nil
}

func (m *MockRoleService) ResolveBoardRole(ctx context.Context, boardID, userID uuid.UUID) (domain.BoardRole, bool, error) {
	if m.ResolveBoardRoleFunc != nil {
		return m.ResolveBoardRoleFunc(ctx, boardID, userID)
	}
	return domain.BoardRoleManager, false, nil
}

func (m *MockRoleService) RequireBoardEdit(ctx context.Context, boardID, userID uuid.UUID) error {
	if m.RequireBoardEditFunc != nil {
		return m.RequireBoardEditFunc(ctx, boardID, userID)
	}
	return nil
}

func (m *MockRoleService) RequireBoardManage(ctx context.Context, boardID, userID uuid.UUID) error {
	if m.RequireBoardManageFunc != nil {
		return m.RequireBoardManageFunc(ctx, boardID, userID)
	}
	return nil
}

func (m *MockRoleService) GrantAccessPath(ctx context.Context, workpanelID, userID uuid.UUID) error {
	if m.GrantAccessPathFunc != nil {
		return m.GrantAccessPathFunc(ctx, workpanelID, userID)
	}
	return nil
}

func (m *MockRoleService) ReleaseAccessPath(ctx context.Context, workpanelID, userID uuid.UUID) error {
	if m.ReleaseAccessPathFunc != nil {
		return m.ReleaseAccessPathFunc(ctx, workpanelID, userID)
	}
	return nil
}

// MockActivityService is a mock implementation of ActivityService
type MockActivityService struct {
	RecordFunc           func(boardID, actorID uuid.UUID, taskID *uuid.UUID, message string)
	GetBoardActivityFunc func(ctx context.Context, boardID, userID uuid.UUID, page, pageSize int) (*dto.PaginatedActivityResponse, error)
}

func (m *MockActivityService) Record(boardID, actorID uuid.UUID, taskID *uuid.UUID, message string) {
	if m.RecordFunc != nil {
		m.RecordFunc(boardID, actorID, taskID, message)
	}
}

func (m *MockActivityService) GetBoardActivity(ctx context.Context, boardID, userID uuid.UUID, page, pageSize int) (*dto.PaginatedActivityResponse, error) {
	if m.GetBoardActivityFunc != nil {
		return m.GetBoardActivityFunc(ctx, boardID, userID, page, pageSize)
	}
	return nil, nil
}

// MockNotificationService is a mock implementation of NotificationService
type MockNotificationService struct {
	NotifyFunc           func(userID uuid.UUID, message, link string)
	GetNotificationsFunc func(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*dto.NotificationResponse, int64, error)
	GetUnreadCountFunc   func(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, error)
	MarkReadFunc         func(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllReadFunc      func(ctx context.Context, userID uuid.UUID) error
}

func (m *MockNotificationService) Notify(userID uuid.UUID, message, link string) {
	if m.NotifyFunc != nil {
		m.NotifyFunc(userID, message, link)
	}
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*dto.NotificationResponse, int64, error) {
	if m.GetNotificationsFunc != nil {
		return m.GetNotificationsFunc(ctx, userID, page, pageSize)
	}
	return nil, 0, nil
}

func (m *MockNotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, error) {
	if m.GetUnreadCountFunc != nil {
		return m.GetUnreadCountFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, userID, notificationID)
	}
	return nil
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if m.MarkAllReadFunc != nil {
		return m.MarkAllReadFunc(ctx, userID)
	}
	return nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	CreateFunc         func(ctx context.Context, comment *domain.Comment) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByTaskIDFunc   func(ctx context.Context, taskID uuid.UUID) ([]*domain.Comment, error)
	UpdateFunc         func(ctx context.Context, comment *domain.Comment) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
	DeleteByTaskIDFunc func(ctx context.Context, taskID uuid.UUID) error
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCommentRepository) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.Comment, error) {
	if m.FindByTaskIDFunc != nil {
		return m.FindByTaskIDFunc(ctx, taskID)
	}
	return nil, nil
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCommentRepository) DeleteByTaskID(ctx context.Context, taskID uuid.UUID) error {
	if m.DeleteByTaskIDFunc != nil {
		return m.DeleteByTaskIDFunc(ctx, taskID)
	}
	return nil
}

// MockAttachmentRepository is a mock implementation of AttachmentRepository
type MockAttachmentRepository struct {
	CreateFunc        func(ctx context.Context, attachment *domain.Attachment) error
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	FindByTaskIDFunc  func(ctx context.Context, taskID uuid.UUID) ([]*domain.Attachment, error)
	UpdateFunc        func(ctx context.Context, attachment *domain.Attachment) error
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
	FindStaleTempFunc func(ctx context.Context, cutoff time.Time) ([]*domain.Attachment, error)
	RecordOrphanFunc  func(ctx context.Context, orphan *domain.OrphanedObject) error
	FindOrphansFunc   func(ctx context.Context, limit int) ([]*domain.OrphanedObject, error)
	DeleteOrphanFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attachment)
	}
	return nil
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]*domain.Attachment, error) {
	if m.FindByTaskIDFunc != nil {
		return m.FindByTaskIDFunc(ctx, taskID)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) Update(ctx context.Context, attachment *domain.Attachment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, attachment)
	}
	return nil
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockAttachmentRepository) FindStaleTemp(ctx context.Context, cutoff time.Time) ([]*domain.Attachment, error) {
	if m.FindStaleTempFunc != nil {
		return m.FindStaleTempFunc(ctx, cutoff)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) RecordOrphan(ctx context.Context, orphan *domain.OrphanedObject) error {
	if m.RecordOrphanFunc != nil {
		return m.RecordOrphanFunc(ctx, orphan)
	}
	return nil
}

func (m *MockAttachmentRepository) FindOrphans(ctx context.Context, limit int) ([]*domain.OrphanedObject, error) {
	if m.FindOrphansFunc != nil {
		return m.FindOrphansFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) DeleteOrphan(ctx context.Context, id uuid.UUID) error {
	if m.DeleteOrphanFunc != nil {
		return m.DeleteOrphanFunc(ctx, id)
	}
	return nil
}

// MockBoardNotifier is a mock implementation of BoardNotifier
type MockBoardNotifier struct {
	NotifyBoardChangedFunc func(boardID, actorID uuid.UUID)
}

func (m *MockBoardNotifier) NotifyBoardChanged(boardID, actorID uuid.UUID) {
	if m.NotifyBoardChangedFunc != nil {
		m.NotifyBoardChangedFunc(boardID, actorID)
	}
}

// MockUserClient is a mock implementation of client.UserClient
type MockUserClient struct {
	UserExistsFunc func(ctx context.Context, userID uuid.UUID) (bool, error)
}

func (m *MockUserClient) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	if m.UserExistsFunc != nil {
		return m.UserExistsFunc(ctx, userID)
	}
	return true, nil
}

// memberAt builds a workpanel member row for tests
func memberAt(workpanelID, userID uuid.UUID, role domain.WorkpanelRole) *domain.WorkpanelMember {
	return &domain.WorkpanelMember{
		ID:          uuid.New(),
		WorkpanelID: workpanelID,
		UserID:      userID,
		RoleName:    role,
		JoinedAt:    time.Now(),
	}
}
