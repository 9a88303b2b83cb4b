package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// ParseTaskPriority validates a raw priority string against the closed set
func ParseTaskPriority(raw string) (TaskPriority, bool) {
	switch TaskPriority(raw) {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return TaskPriority(raw), true
	}
	return "", false
}

// Task represents a draggable card in a group. Position is the dense
// zero-based order of the task within its group.
type Task struct {
	BaseModel
	GroupID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_tasks_group_id" json:"group_id"`
	BoardID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_tasks_board_id" json:"board_id"`
	Content     string         `gorm:"type:varchar(500);not null" json:"content"`
	Description string         `gorm:"type:text" json:"description"`
	Priority    TaskPriority   `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	DueDate     *time.Time     `gorm:"type:timestamp;index:idx_tasks_due_date" json:"due_date,omitempty"`
	Position    int            `gorm:"type:int;not null;default:0;index:idx_tasks_position" json:"position"`
	Tags        datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	Assignees   datatypes.JSON `gorm:"type:jsonb" json:"assignees"`

	Group          Group           `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"group,omitempty"`
	ChecklistItems []ChecklistItem `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"checklist_items,omitempty"`
	Comments       []Comment       `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Attachments    []Attachment    `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
}

// ChecklistItem represents an entry in a task's ordered checklist
type ChecklistItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index:idx_checklist_items_task_id" json:"task_id"`
	Text      string    `gorm:"type:varchar(500);not null" json:"text"`
	Completed bool      `gorm:"default:false" json:"completed"`
	Position  int       `gorm:"type:int;not null;default:0" json:"position"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	Task      Task      `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"task,omitempty"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// TableName specifies the table name for ChecklistItem
func (ChecklistItem) TableName() string {
	return "checklist_items"
}
