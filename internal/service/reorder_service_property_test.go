package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"workpanel-api/internal/domain"
	"workpanel-api/internal/dto"
)

// For any board and any drag gesture, a committed column move always leaves
// the positions dense: every group is numbered exactly once with 0..n-1, and
// the dragged group lands on the clamped destination slot.
func TestProperty_ColumnMoveKeepsPositionsDense(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("column moves produce a dense 0..n-1 permutation", prop.ForAll(
		func(groupCount, sourceIndex, destIndex int) string {
			if sourceIndex >= groupCount {
				sourceIndex = sourceIndex % groupCount
			}

			boardID := uuid.New()
			groups := make([]*domain.Group, groupCount)
			for i := range groups {
				groups[i] = newGroup(boardID, fmt.Sprintf("column-%d", i), i)
			}

			var applied map[uuid.UUID]int
			reorderRepo := &MockReorderRepository{
				ApplyColumnOrderFunc: func(ctx context.Context, bID uuid.UUID, positions map[uuid.UUID]int, expectedVersion *int64) error {
					applied = positions
					return nil
				},
			}
			groupRepo := &MockGroupRepository{
				FindByBoardIDFunc: func(ctx context.Context, bID uuid.UUID) ([]*domain.Group, error) {
					return groups, nil
				},
			}
			service := newReorderServiceForTest(&MockBoardRepository{}, groupRepo, &MockTaskRepository{}, reorderRepo, &MockRoleService{}, &MockActivityService{})

			got, err := service.Move(context.Background(), boardID, uuid.New(), &dto.MoveRequest{
				Kind:        dto.DragKindColumn,
				SourceIndex: sourceIndex,
				Destination: &dto.MoveDestination{Index: destIndex},
			})
			if err != nil {
				return fmt.Sprintf("unexpected error: %v", err)
			}

			clamped := clamp(destIndex, 0, groupCount-1)
			if clamped == sourceIndex {
				if got.Committed {
					return "same-slot drop must not commit"
				}
				return ""
			}

			if !got.Committed {
				return "real move must commit"
			}
			if len(applied) != groupCount {
				return fmt.Sprintf("positions cover %d groups, want %d", len(applied), groupCount)
			}
			seen := make([]bool, groupCount)
			for _, pos := range applied {
				if pos < 0 || pos >= groupCount {
					return fmt.Sprintf("position %d out of range", pos)
				}
				if seen[pos] {
					return fmt.Sprintf("position %d assigned twice", pos)
				}
				seen[pos] = true
			}
			if applied[groups[sourceIndex].ID] != clamped {
				return fmt.Sprintf("moved group at %d, want %d", applied[groups[sourceIndex].ID], clamped)
			}
			return ""
		},
		gen.IntRange(1, 12),
		gen.IntRange(0, 11),
		gen.IntRange(-3, 20),
	))

	properties.TestingRun(t)
}

// A committed cross-group task move renumbers both touched groups densely
// and never loses or duplicates a task.
func TestProperty_CrossGroupMoveRenumbersBothGroups(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("cross-group moves keep both lists dense", prop.ForAll(
		func(sourceCount, destCount, sourceIndex, destIndex int) string {
			if sourceIndex >= sourceCount {
				sourceIndex = sourceIndex % sourceCount
			}

			boardID := uuid.New()
			source := newGroup(boardID, "source", 0)
			dest := newGroup(boardID, "dest", 1)

			sourceTasks := make([]*domain.Task, sourceCount)
			for i := range sourceTasks {
				sourceTasks[i] = newTask(boardID, source.ID, fmt.Sprintf("s-%d", i), i)
			}
			destTasks := make([]*domain.Task, destCount)
			for i := range destTasks {
				destTasks[i] = newTask(boardID, dest.ID, fmt.Sprintf("d-%d", i), i)
			}
			groupsByID := map[uuid.UUID]*domain.Group{source.ID: source, dest.ID: dest}
			tasksByGroup := map[uuid.UUID][]*domain.Task{source.ID: sourceTasks, dest.ID: destTasks}

			var applied map[uuid.UUID]int
			var appliedGroups map[uuid.UUID]uuid.UUID
			reorderRepo := &MockReorderRepository{
				ApplyTaskOrderFunc: func(ctx context.Context, positions map[uuid.UUID]int, taskGroups map[uuid.UUID]uuid.UUID, expectedVersions map[uuid.UUID]*int64) error {
					applied = positions
					appliedGroups = taskGroups
					return nil
				},
			}
			groupRepo := &MockGroupRepository{
				FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
					return groupsByID[id], nil
				},
			}
			taskRepo := &MockTaskRepository{
				FindByGroupIDFunc: func(ctx context.Context, groupID uuid.UUID) ([]*domain.Task, error) {
					return tasksByGroup[groupID], nil
				},
			}
			service := newReorderServiceForTest(&MockBoardRepository{}, groupRepo, taskRepo, reorderRepo, &MockRoleService{}, &MockActivityService{})

			got, err := service.Move(context.Background(), boardID, uuid.New(), &dto.MoveRequest{
				Kind:          dto.DragKindTask,
				SourceGroupID: source.ID,
				SourceIndex:   sourceIndex,
				Destination:   &dto.MoveDestination{GroupID: dest.ID, Index: destIndex},
			})
			if err != nil {
				return fmt.Sprintf("unexpected error: %v", err)
			}
			if !got.Committed {
				return "cross-group move must commit"
			}

			moved := sourceTasks[sourceIndex]
			if appliedGroups[moved.ID] != dest.ID {
				return "moved task must be reassigned to the destination group"
			}

			// The remaining source tasks occupy 0..sourceCount-2, the grown
			// destination 0..destCount.
			sourceSeen := make([]bool, sourceCount-1)
			destSeen := make([]bool, destCount+1)
			for _, task := range sourceTasks {
				pos, ok := applied[task.ID]
				if !ok {
					return "every touched task needs a position"
				}
				if task.ID == moved.ID {
					if pos < 0 || pos >= len(destSeen) || destSeen[pos] {
						return fmt.Sprintf("moved task position %d invalid", pos)
					}
					destSeen[pos] = true
					continue
				}
				if pos < 0 || pos >= len(sourceSeen) || sourceSeen[pos] {
					return fmt.Sprintf("source position %d invalid", pos)
				}
				sourceSeen[pos] = true
			}
			for _, task := range destTasks {
				pos, ok := applied[task.ID]
				if !ok {
					return "every touched task needs a position"
				}
				if pos < 0 || pos >= len(destSeen) || destSeen[pos] {
					return fmt.Sprintf("dest position %d invalid", pos)
				}
				destSeen[pos] = true
			}
			if applied[moved.ID] != clamp(destIndex, 0, destCount) {
				return fmt.Sprintf("moved task at %d, want %d", applied[moved.ID], clamp(destIndex, 0, destCount))
			}
			return ""
		},
		gen.IntRange(1, 8),
		gen.IntRange(0, 8),
		gen.IntRange(0, 7),
		gen.IntRange(-2, 12),
	))

	properties.TestingRun(t)
}
