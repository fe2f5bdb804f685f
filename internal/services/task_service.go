package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/teamboard/project-management-api/internal/models"
	"github.com/teamboard/project-management-api/internal/repository"
)

var (
	ErrTaskNotFound      = errors.New("task not found in the project")
	ErrTaskTitleRequired = errors.New("title is required")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// TaskService handles task lifecycle logic scoped to a project.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task. An assignee cannot
// be set at creation.
type CreateTaskInput struct {
	ProjectID   uint64
	Title       string
	Description string
	Status      models.TaskStatus
	Deadline    *time.Time
	CreatedByID uint64
}

// CreateTask creates a task with status defaulted to IN_PROGRESS and the
// creation timestamp set to the current server time.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTaskTitleRequired
	}

	if input.Status == "" {
		input.Status = models.TaskStatusInProgress
	}
	if !input.Status.IsValid() {
		return nil, ErrInvalidTaskStatus
	}

	createdBy := input.CreatedByID
	task := &models.Task{
		Title:          input.Title,
		Description:    input.Description,
		Status:         input.Status,
		DateOfCreation: time.Now(),
		Deadline:       input.Deadline,
		ProjectID:      input.ProjectID,
		CreatedByID:    &createdBy,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasks returns all tasks belonging to the project.
func (s *TaskService) ListTasks(projectID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task scoped to the project. A task ID alone is not
// sufficient: the task must also belong to the stated project.
func (s *TaskService) GetTask(projectID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByProjectAndID(projectID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateTaskInput names each optional field; only fields present in the
// payload are applied. Assignee membership is verified one layer up, before
// this service is called.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Deadline    *time.Time
	AssigneeID  *uint64
}

// UpdateTask applies the patch to the task under the project dual check.
func (s *TaskService) UpdateTask(projectID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(projectID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *input.Status
	}
	if input.Deadline != nil {
		task.Deadline = input.Deadline
	}
	if input.AssigneeID != nil {
		task.AssigneeID = input.AssigneeID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask permanently deletes a task under the project dual check.
func (s *TaskService) DeleteTask(projectID, taskID uint64) error {
	task, err := s.GetTask(projectID, taskID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
