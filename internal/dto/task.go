package dto

import (
	"time"

	"github.com/teamboard/project-management-api/internal/models"
)

// TaskView represents a task in API responses
type TaskView struct {
	ID             uint64            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Status         models.TaskStatus `json:"status"`
	Deadline       *time.Time        `json:"deadline"`
	ProjectID      uint64            `json:"project_id"`
	CreatedByID    *uint64           `json:"created_by_id"`
	AssigneeID     *uint64           `json:"assignee_id"`
	DateOfCreation time.Time         `json:"date_of_creation"`
}

// ToTaskView converts a Task model to TaskView
func ToTaskView(task models.Task) TaskView {
	return TaskView{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		Deadline:       task.Deadline,
		ProjectID:      task.ProjectID,
		CreatedByID:    task.CreatedByID,
		AssigneeID:     task.AssigneeID,
		DateOfCreation: task.DateOfCreation,
	}
}

// ToTaskViews converts a slice of tasks
func ToTaskViews(tasks []models.Task) []TaskView {
	views := make([]TaskView, len(tasks))
	for i, task := range tasks {
		views[i] = ToTaskView(task)
	}
	return views
}
