package models

import "time"

type TaskStatus string

const (
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// IsValid reports whether s is one of the two task states.
func (s TaskStatus) IsValid() bool {
	return s == TaskStatusInProgress || s == TaskStatusCompleted
}

// Task belongs to exactly one project. CreatedByID and AssigneeID are
// nullable: removing a member from a project clears both references on the
// project's tasks instead of deleting the tasks.
type Task struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	Title          string     `gorm:"type:varchar(255);not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	Status         TaskStatus `gorm:"type:varchar(20);not null;default:'IN_PROGRESS'" json:"status"`
	DateOfCreation time.Time  `gorm:"column:date_of_creation;not null" json:"date_of_creation"`
	Deadline       *time.Time `json:"deadline"`
	ProjectID      uint64     `gorm:"not null" json:"project_id"`
	CreatedByID    *uint64    `json:"created_by_id"`
	AssigneeID     *uint64    `json:"assignee_id"`

	// Relations
	Project   Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	CreatedBy *User   `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Assignee  *User   `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}
