package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"workpanel-api/internal/domain"
	"workpanel-api/internal/dto"
	"workpanel-api/internal/metrics"
)

// countingNotifier records every change hint and checks the board it targets
func countingNotifier(t *testing.T, wantBoard uuid.UUID, calls *int) *MockBoardNotifier {
	t.Helper()
	return &MockBoardNotifier{
		NotifyBoardChangedFunc: func(boardID, actorID uuid.UUID) {
			if boardID != wantBoard {
				t.Errorf("NotifyBoardChanged board = %v, want %v", boardID, wantBoard)
			}
			*calls++
		},
	}
}

func TestGroupService_MutationsEmitBoardChange(t *testing.T) {
	boardID := uuid.New()
	userID := uuid.New()
	group := newGroup(boardID, "To Do", 0)

	groupRepo := &MockGroupRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
			return group, nil
		},
	}

	tests := []struct {
		name   string
		mutate func(s GroupService) error
	}{
		{"create", func(s GroupService) error {
			_, err := s.CreateGroup(context.Background(), userID, &dto.CreateGroupRequest{BoardID: boardID, Name: "Review"})
			return err
		}},
		{"rename", func(s GroupService) error {
			_, err := s.RenameGroup(context.Background(), group.ID, userID, &dto.RenameGroupRequest{Name: "Blocked"})
			return err
		}},
		{"delete", func(s GroupService) error {
			return s.DeleteGroup(context.Background(), group.ID, userID)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			notifier := countingNotifier(t, boardID, &calls)
			service := NewGroupService(groupRepo, &MockRoleService{}, &MockActivityService{}, notifier, zap.NewNop())

			if err := tt.mutate(service); err != nil {
				t.Fatalf("%s unexpected error = %v", tt.name, err)
			}
			if calls != 1 {
				t.Errorf("%s emitted %d change hints, want 1", tt.name, calls)
			}
		})
	}
}

func TestTaskService_CreateAndDeleteEmitBoardChange(t *testing.T) {
	boardID := uuid.New()
	userID := uuid.New()
	group := newGroup(boardID, "Doing", 0)
	task := &domain.Task{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		GroupID:   group.ID,
		BoardID:   boardID,
		Content:   "write release notes",
		Tags:      encodeJSON([]string{}),
		Assignees: encodeJSON([]uuid.UUID{}),
	}

	groupRepo := &MockGroupRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
			return group, nil
		},
	}
	taskRepo := &MockTaskRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			return task, nil
		},
	}

	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())

	tests := []struct {
		name   string
		mutate func(s TaskService) error
	}{
		{"create", func(s TaskService) error {
			_, err := s.CreateTask(context.Background(), userID, &dto.CreateTaskRequest{GroupID: group.ID, Content: "write release notes"})
			return err
		}},
		{"delete", func(s TaskService) error {
			return s.DeleteTask(context.Background(), task.ID, userID)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			notifier := countingNotifier(t, boardID, &calls)
			service := NewTaskService(taskRepo, groupRepo, &MockCommentRepository{}, &MockAttachmentRepository{},
				&MockRoleService{}, &MockActivityService{}, &MockNotificationService{}, notifier, m, zap.NewNop())

			if err := tt.mutate(service); err != nil {
				t.Fatalf("%s unexpected error = %v", tt.name, err)
			}
			if calls != 1 {
				t.Errorf("%s emitted %d change hints, want 1", tt.name, calls)
			}
		})
	}
}

func TestCommentService_AddCommentEmitsBoardChange(t *testing.T) {
	boardID := uuid.New()
	userID := uuid.New()
	task := &domain.Task{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		BoardID:   boardID,
		Content:   "fix login",
	}
	taskRepo := &MockTaskRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			return task, nil
		},
	}

	calls := 0
	notifier := countingNotifier(t, boardID, &calls)
	service := NewCommentService(&MockCommentRepository{}, taskRepo, &MockRoleService{}, &MockActivityService{}, notifier, zap.NewNop())

	_, err := service.AddComment(context.Background(), task.ID, userID, &dto.CreateCommentRequest{Content: "done?"})
	if err != nil {
		t.Fatalf("AddComment() unexpected error = %v", err)
	}
	if calls != 1 {
		t.Errorf("AddComment() emitted %d change hints, want 1", calls)
	}
}

func TestReorderService_Move_EmitsBoardChangeOnCommitOnly(t *testing.T) {
	boardID := uuid.New()
	userID := uuid.New()
	groups := []*domain.Group{
		newGroup(boardID, "To Do", 0),
		newGroup(boardID, "Doing", 1),
	}
	groupRepo := &MockGroupRepository{
		FindByBoardIDFunc: func(ctx context.Context, bID uuid.UUID) ([]*domain.Group, error) {
			return groups, nil
		},
	}
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())

	calls := 0
	notifier := countingNotifier(t, boardID, &calls)
	service := NewReorderService(&MockBoardRepository{}, groupRepo, &MockTaskRepository{}, &MockReorderRepository{},
		&MockRoleService{}, &MockActivityService{}, notifier, m, zap.NewNop())

	// A cancelled drag commits nothing and must stay silent.
	got, err := service.Move(context.Background(), boardID, userID, &dto.MoveRequest{
		Kind:        dto.DragKindColumn,
		SourceIndex: 0,
		Destination: nil,
	})
	if err != nil {
		t.Fatalf("Move() unexpected error = %v", err)
	}
	if got.Committed {
		t.Fatal("Move() cancelled drag should not commit")
	}
	if calls != 0 {
		t.Errorf("cancelled drag emitted %d change hints, want 0", calls)
	}

	got, err = service.Move(context.Background(), boardID, userID, &dto.MoveRequest{
		Kind:        dto.DragKindColumn,
		SourceIndex: 0,
		Destination: &dto.MoveDestination{Index: 1},
	})
	if err != nil {
		t.Fatalf("Move() unexpected error = %v", err)
	}
	if !got.Committed {
		t.Fatal("Move() expected commit")
	}
	if calls != 1 {
		t.Errorf("committed move emitted %d change hints, want 1", calls)
	}
}
