package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task statuses. Flat enum; any status is reachable from any other.
const (
	StatusTodo  = "TODO"
	StatusDoing = "DOING"
	StatusDone  = "DONE"
)

// Task priorities.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

type TaskModel struct {
	TaskID uuid.UUID `json:"task_id" gorm:"column:task_id;type:uuid;primaryKey"`

	TaskTitle       string    `json:"task_title" gorm:"column:task_title;type:varchar(200);not null"`
	TaskDescription string    `json:"task_description" gorm:"column:task_description;type:text"`
	TaskTeamID      uuid.UUID `json:"task_team_id" gorm:"column:task_team_id;type:uuid;not null;index"`

	TaskStatus   string `json:"task_status" gorm:"column:task_status;type:varchar(10);not null;default:'TODO'"`
	TaskPriority string `json:"task_priority" gorm:"column:task_priority;type:varchar(10);not null;default:'MEDIUM'"`

	// Optional; must be a member of the task's team when set.
	TaskAssigneeID *uuid.UUID `json:"task_assignee_id,omitempty" gorm:"column:task_assignee_id;type:uuid;index"`
	TaskDueDate    *time.Time `json:"task_due_date,omitempty" gorm:"column:task_due_date"`

	TaskCreatedAt time.Time `json:"task_created_at" gorm:"column:task_created_at;autoCreateTime"`
	TaskUpdatedAt time.Time `json:"task_updated_at" gorm:"column:task_updated_at;autoUpdateTime"`
}

func (TaskModel) TableName() string {
	return "tasks"
}

func (m *TaskModel) BeforeCreate(tx *gorm.DB) error {
	if m.TaskID == uuid.Nil {
		m.TaskID = uuid.New()
	}
	return nil
}

func IsValidStatus(status string) bool {
	return status == StatusTodo || status == StatusDoing || status == StatusDone
}
