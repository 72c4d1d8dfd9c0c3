package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// ValidTaskStatus reports whether s is one of the task status values.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// ValidTaskPriority reports whether s is one of the task priority values.
func ValidTaskPriority(s string) bool {
	switch s {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      string     `gorm:"type:text;not null;default:'todo';check:status IN ('todo','in-progress','completed')" json:"status"`
	Priority    string     `gorm:"type:text;not null;default:'medium';check:priority IN ('low','medium','high')" json:"priority"`
	DueDate     *time.Time `gorm:"type:timestamptz" json:"due_date"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index:ix_tasks_project_id" json:"project_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Task <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Task) TableName() string { return "tasks" }
