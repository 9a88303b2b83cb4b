package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
)

// modelInfo holds information about a domain model and its table name
type modelInfo struct {
	model     interface{}
	tableName string
}

// AutoMigrate runs GORM auto-migration for all domain models
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&domain.Workpanel{},
		&domain.WorkpanelMember{},
		&domain.WorkpanelAccess{},
		&domain.TeamRoom{},
		&domain.TeamRoomMember{},
		&domain.Board{},
		&domain.BoardMember{},
		&domain.Group{},
		&domain.Task{},
		&domain.ChecklistItem{},
		&domain.Comment{},
		&domain.Attachment{},
		&domain.OrphanedObject{},
		&domain.ActivityEntry{},
		&domain.Notification{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}

// SafeAutoMigrate runs GORM auto-migration safely by checking table existence
// first. Existing tables only get schema-difference updates.
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()

	models := []modelInfo{
		{&domain.Workpanel{}, "workpanels"},
		{&domain.WorkpanelMember{}, "workpanel_members"},
		{&domain.WorkpanelAccess{}, "workpanel_access"},
		{&domain.TeamRoom{}, "team_rooms"},
		{&domain.TeamRoomMember{}, "team_room_members"},
		{&domain.Board{}, "boards"},
		{&domain.BoardMember{}, "board_members"},
		{&domain.Group{}, "groups"},
		{&domain.Task{}, "tasks"},
		{&domain.ChecklistItem{}, "checklist_items"},
		{&domain.Comment{}, "comments"},
		{&domain.Attachment{}, "attachments"},
		{&domain.OrphanedObject{}, "orphaned_objects"},
		{&domain.ActivityEntry{}, "activity_entries"},
		{&domain.Notification{}, "notifications"},
	}

	for _, m := range models {
		tableExists := migrator.HasTable(m.model)

		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", tableExists),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}
	}

	logger.Info("Auto-migration completed successfully",
		zap.Int("tables_migrated", len(models)),
	)

	return nil
}

// SafeAutoMigrateWithRetry runs SafeAutoMigrate with retry logic and linear backoff
func SafeAutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = SafeAutoMigrate(db, logger)
		if err == nil {
			return nil
		}

		if attempt < maxRetries {
			backoffDuration := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying...",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Duration("backoff", backoffDuration),
				zap.Error(err),
			)
			time.Sleep(backoffDuration)
		}
	}

	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
