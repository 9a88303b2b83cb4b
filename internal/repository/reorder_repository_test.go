package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
)

func setupBoardTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	// Minimal schemas for SQLite compatibility
	db.Exec(`CREATE TABLE boards (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		workpanel_id TEXT NOT NULL,
		team_room_id TEXT,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		is_private INTEGER NOT NULL DEFAULT 0,
		group_order_version INTEGER NOT NULL DEFAULT 0
	)`)
	db.Exec(`CREATE TABLE groups (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		board_id TEXT NOT NULL,
		name TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		list_version INTEGER NOT NULL DEFAULT 0
	)`)
	db.Exec(`CREATE TABLE tasks (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		group_id TEXT NOT NULL,
		board_id TEXT NOT NULL,
		content TEXT NOT NULL,
		description TEXT,
		priority TEXT NOT NULL DEFAULT 'medium',
		due_date DATETIME,
		position INTEGER NOT NULL DEFAULT 0,
		tags TEXT,
		assignees TEXT
	)`)
	db.Exec(`CREATE TABLE checklist_items (
		id TEXT PRIMARY KEY,
		task_id TEXT NOT NULL,
		text TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	)`)

	return db
}

func seedBoard(t *testing.T, db *gorm.DB, version int64) *domain.Board {
	board := &domain.Board{
		BaseModel:         domain.BaseModel{ID: uuid.New()},
		WorkpanelID:       uuid.New(),
		OwnerID:           uuid.New(),
		Name:              "Sprint board",
		GroupOrderVersion: version,
	}
	if err := db.Create(board).Error; err != nil {
		t.Fatalf("failed to seed board: %v", err)
	}
	return board
}

func seedGroup(t *testing.T, db *gorm.DB, boardID uuid.UUID, name string, position int, listVersion int64) *domain.Group {
	group := &domain.Group{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		BoardID:     boardID,
		Name:        name,
		Position:    position,
		ListVersion: listVersion,
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to seed group: %v", err)
	}
	return group
}

func seedTask(t *testing.T, db *gorm.DB, boardID, groupID uuid.UUID, content string, position int) *domain.Task {
	task := &domain.Task{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		GroupID:   groupID,
		BoardID:   boardID,
		Content:   content,
		Priority:  domain.TaskPriorityMedium,
		Position:  position,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return task
}

func TestReorderRepository_ApplyColumnOrder(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewReorderRepository(db)
	ctx := context.Background()

	board := seedBoard(t, db, 4)
	g0 := seedGroup(t, db, board.ID, "To Do", 0, 0)
	g1 := seedGroup(t, db, board.ID, "Doing", 1, 0)
	g2 := seedGroup(t, db, board.ID, "Done", 2, 0)

	version := int64(4)
	err := repo.ApplyColumnOrder(ctx, board.ID, map[uuid.UUID]int{
		g1.ID: 0,
		g2.ID: 1,
		g0.ID: 2,
	}, &version)
	if err != nil {
		t.Fatalf("ApplyColumnOrder() unexpected error = %v", err)
	}

	var groups []*domain.Group
	db.Where("board_id = ?", board.ID).Order("position ASC").Find(&groups)
	wantOrder := []uuid.UUID{g1.ID, g2.ID, g0.ID}
	for i, want := range wantOrder {
		if groups[i].ID != want {
			t.Errorf("position %d = %v, want %v", i, groups[i].ID, want)
		}
	}

	var fresh domain.Board
	db.First(&fresh, "id = ?", board.ID)
	if fresh.GroupOrderVersion != 5 {
		t.Errorf("GroupOrderVersion = %d, want 5", fresh.GroupOrderVersion)
	}
}

func TestReorderRepository_ApplyColumnOrder_StaleVersion(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewReorderRepository(db)
	ctx := context.Background()

	board := seedBoard(t, db, 4)
	g0 := seedGroup(t, db, board.ID, "To Do", 0, 0)
	g1 := seedGroup(t, db, board.ID, "Done", 1, 0)

	stale := int64(3)
	err := repo.ApplyColumnOrder(ctx, board.ID, map[uuid.UUID]int{
		g1.ID: 0,
		g0.ID: 1,
	}, &stale)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("ApplyColumnOrder() error = %v, want ErrVersionConflict", err)
	}

	// Nothing was written
	var fresh domain.Group
	db.First(&fresh, "id = ?", g0.ID)
	if fresh.Position != 0 {
		t.Errorf("position after conflict = %d, want 0", fresh.Position)
	}
	var freshBoard domain.Board
	db.First(&freshBoard, "id = ?", board.ID)
	if freshBoard.GroupOrderVersion != 4 {
		t.Errorf("GroupOrderVersion after conflict = %d, want 4", freshBoard.GroupOrderVersion)
	}
}

func TestReorderRepository_ApplyTaskOrder_CrossGroup(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewReorderRepository(db)
	ctx := context.Background()

	board := seedBoard(t, db, 0)
	source := seedGroup(t, db, board.ID, "To Do", 0, 2)
	dest := seedGroup(t, db, board.ID, "Done", 1, 7)

	a := seedTask(t, db, board.ID, source.ID, "a", 0)
	b := seedTask(t, db, board.ID, source.ID, "b", 1)
	x := seedTask(t, db, board.ID, dest.ID, "x", 0)

	srcVersion := int64(2)
	dstVersion := int64(7)
	err := repo.ApplyTaskOrder(ctx,
		map[uuid.UUID]int{a.ID: 0, x.ID: 0, b.ID: 1},
		map[uuid.UUID]uuid.UUID{b.ID: dest.ID},
		map[uuid.UUID]*int64{source.ID: &srcVersion, dest.ID: &dstVersion},
	)
	if err != nil {
		t.Fatalf("ApplyTaskOrder() unexpected error = %v", err)
	}

	var moved domain.Task
	db.First(&moved, "id = ?", b.ID)
	if moved.GroupID != dest.ID {
		t.Errorf("moved task group = %v, want %v", moved.GroupID, dest.ID)
	}
	if moved.Position != 1 {
		t.Errorf("moved task position = %d, want 1", moved.Position)
	}

	// Both touched groups get a version bump
	var freshSource, freshDest domain.Group
	db.First(&freshSource, "id = ?", source.ID)
	db.First(&freshDest, "id = ?", dest.ID)
	if freshSource.ListVersion != 3 {
		t.Errorf("source ListVersion = %d, want 3", freshSource.ListVersion)
	}
	if freshDest.ListVersion != 8 {
		t.Errorf("dest ListVersion = %d, want 8", freshDest.ListVersion)
	}
}

func TestReorderRepository_ApplyTaskOrder_StaleListVersion(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewReorderRepository(db)
	ctx := context.Background()

	board := seedBoard(t, db, 0)
	group := seedGroup(t, db, board.ID, "Doing", 0, 5)
	a := seedTask(t, db, board.ID, group.ID, "a", 0)
	b := seedTask(t, db, board.ID, group.ID, "b", 1)

	stale := int64(4)
	err := repo.ApplyTaskOrder(ctx,
		map[uuid.UUID]int{b.ID: 0, a.ID: 1},
		nil,
		map[uuid.UUID]*int64{group.ID: &stale},
	)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("ApplyTaskOrder() error = %v, want ErrVersionConflict", err)
	}

	var fresh domain.Task
	db.First(&fresh, "id = ?", a.ID)
	if fresh.Position != 0 {
		t.Errorf("position after conflict = %d, want 0", fresh.Position)
	}
}

func TestReorderRepository_ApplyTaskOrder_NilVersionSkipsCheck(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewReorderRepository(db)
	ctx := context.Background()

	board := seedBoard(t, db, 0)
	group := seedGroup(t, db, board.ID, "Doing", 0, 99)
	a := seedTask(t, db, board.ID, group.ID, "a", 0)
	b := seedTask(t, db, board.ID, group.ID, "b", 1)

	err := repo.ApplyTaskOrder(ctx,
		map[uuid.UUID]int{b.ID: 0, a.ID: 1},
		nil,
		map[uuid.UUID]*int64{group.ID: nil},
	)
	if err != nil {
		t.Fatalf("ApplyTaskOrder() unexpected error = %v", err)
	}

	var fresh domain.Group
	db.First(&fresh, "id = ?", group.ID)
	if fresh.ListVersion != 100 {
		t.Errorf("ListVersion = %d, want 100", fresh.ListVersion)
	}
}
