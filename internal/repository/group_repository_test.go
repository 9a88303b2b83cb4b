package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"workpanel-api/internal/domain"
)

func TestGroupRepository_DeleteCascade(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	board := seedBoard(t, db, 1)
	g0 := seedGroup(t, db, board.ID, "To Do", 0, 0)
	g1 := seedGroup(t, db, board.ID, "Doing", 1, 0)
	g2 := seedGroup(t, db, board.ID, "Done", 2, 0)

	task := seedTask(t, db, board.ID, g1.ID, "doomed", 0)
	db.Create(&domain.ChecklistItem{
		ID:     uuid.New(),
		TaskID: task.ID,
		Text:   "also doomed",
	})
	survivor := seedTask(t, db, board.ID, g0.ID, "survivor", 0)

	if err := repo.DeleteCascade(ctx, g1.ID); err != nil {
		t.Fatalf("DeleteCascade() unexpected error = %v", err)
	}

	var groupCount int64
	db.Model(&domain.Group{}).Where("board_id = ?", board.ID).Count(&groupCount)
	if groupCount != 2 {
		t.Errorf("remaining groups = %d, want 2", groupCount)
	}

	// The hole closes: Done slides from 2 to 1. First adds the destination's
	// primary key to the WHERE clause, so each lookup needs a zero-valued
	// struct.
	var freshDone domain.Group
	db.First(&freshDone, "id = ?", g2.ID)
	if freshDone.Position != 1 {
		t.Errorf("Done position = %d, want 1", freshDone.Position)
	}
	var freshToDo domain.Group
	db.First(&freshToDo, "id = ?", g0.ID)
	if freshToDo.Position != 0 {
		t.Errorf("To Do position = %d, want 0", freshToDo.Position)
	}

	var taskCount int64
	db.Model(&domain.Task{}).Where("group_id = ?", g1.ID).Count(&taskCount)
	if taskCount != 0 {
		t.Errorf("tasks of the deleted group = %d, want 0", taskCount)
	}
	var checklistCount int64
	db.Model(&domain.ChecklistItem{}).Where("task_id = ?", task.ID).Count(&checklistCount)
	if checklistCount != 0 {
		t.Errorf("checklist items of the deleted group = %d, want 0", checklistCount)
	}

	var surviving domain.Task
	if err := db.First(&surviving, "id = ?", survivor.ID).Error; err != nil {
		t.Errorf("task in another group must survive: %v", err)
	}

	// Column order changed, so the version token moves
	var freshBoard domain.Board
	db.First(&freshBoard, "id = ?", board.ID)
	if freshBoard.GroupOrderVersion != 2 {
		t.Errorf("GroupOrderVersion = %d, want 2", freshBoard.GroupOrderVersion)
	}
}

func TestGroupRepository_CountByBoardID(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	board := seedBoard(t, db, 0)
	seedGroup(t, db, board.ID, "To Do", 0, 0)
	seedGroup(t, db, board.ID, "Done", 1, 0)
	seedGroup(t, db, uuid.New(), "Elsewhere", 0, 0)

	count, err := repo.CountByBoardID(ctx, board.ID)
	if err != nil {
		t.Fatalf("CountByBoardID() unexpected error = %v", err)
	}
	if count != 2 {
		t.Errorf("CountByBoardID() = %d, want 2", count)
	}
}

func TestTaskRepository_DeleteCascade_ClosesHole(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	board := seedBoard(t, db, 0)
	group := seedGroup(t, db, board.ID, "Doing", 0, 0)
	t0 := seedTask(t, db, board.ID, group.ID, "first", 0)
	t1 := seedTask(t, db, board.ID, group.ID, "second", 1)
	t2 := seedTask(t, db, board.ID, group.ID, "third", 2)

	if err := repo.DeleteCascade(ctx, t1.ID); err != nil {
		t.Fatalf("DeleteCascade() unexpected error = %v", err)
	}

	var freshFirst domain.Task
	db.First(&freshFirst, "id = ?", t0.ID)
	if freshFirst.Position != 0 {
		t.Errorf("first position = %d, want 0", freshFirst.Position)
	}
	var freshThird domain.Task
	db.First(&freshThird, "id = ?", t2.ID)
	if freshThird.Position != 1 {
		t.Errorf("third position = %d, want 1", freshThird.Position)
	}

	var count int64
	db.Model(&domain.Task{}).Where("group_id = ?", group.ID).Count(&count)
	if count != 2 {
		t.Errorf("remaining tasks = %d, want 2", count)
	}

	// List order changed, so the version token moves
	var freshGroup domain.Group
	db.First(&freshGroup, "id = ?", group.ID)
	if freshGroup.ListVersion != 1 {
		t.Errorf("ListVersion = %d, want 1", freshGroup.ListVersion)
	}
}
