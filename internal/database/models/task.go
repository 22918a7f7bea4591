package models

import "time"

// TaskStatus represents the workflow state of a task. Statuses are totally
// ordered and transitions are forward-only.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
)

// AllTaskStatuses lists every status in rank order, used for zero-filled
// count reports.
var AllTaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

// IsValid checks if the TaskStatus is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Rank returns the position of the status in the workflow order.
func (s TaskStatus) Rank() int {
	switch s {
	case TaskStatusTodo:
		return 0
	case TaskStatusInProgress:
		return 1
	case TaskStatusDone:
		return 2
	}
	return -1
}

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid checks if the TaskPriority is valid
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task belongs to a project and owns comments and attachments.
type Task struct {
	BaseModel
	Title       string       `json:"title" gorm:"not null;size:255" validate:"required,min=1,max=255"`
	Description string       `json:"description" gorm:"type:text"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(20);not null;default:'todo';index"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(20);not null;default:'medium'"`
	DueDate     *time.Time   `json:"due_date"`
	ProjectID   uint         `json:"project_id" gorm:"not null;index"`
	AssigneeID  *uint        `json:"assignee_id" gorm:"index"`
	CreatedByID *uint        `json:"created_by_id"`

	// Relationships
	Project     *Project     `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Assignee    *User        `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL"`
	CreatedBy   *User        `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	Comments    []Comment    `json:"comments,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Attachments []Attachment `json:"attachments,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Task
func (Task) TableName() string {
	return "tasks"
}
