package repository

import (
	"github.com/teamboard/project-management-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// CreateWithOwner creates a project together with the creator's member
	// and manager rows within a single transaction.
	CreateWithOwner(project *models.Project) error

	// FindByID finds a project by ID without relations
	FindByID(id uint64) (*models.Project, error)

	// FindByIDWithRelations finds a project with its member and manager sets
	FindByIDWithRelations(id uint64) (*models.Project, error)

	// ListByMember lists all projects the user is a member of
	ListByMember(userID uint64) ([]models.Project, error)

	// Delete deletes a project and cascades to its tasks and membership rows
	Delete(id uint64) error

	// AddMember adds a user to the project's member set
	AddMember(member *models.ProjectMember) error

	// AddManager adds a user to the project's manager set and, within the
	// same transaction, to the member set when not already present.
	AddManager(manager *models.ProjectManager) error

	// FindMember finds a specific member row
	FindMember(projectID, userID uint64) (*models.ProjectMember, error)

	// FindManager finds a specific manager row
	FindManager(projectID, userID uint64) (*models.ProjectManager, error)

	// RemoveMemberCascade removes the user from the member and manager sets
	// and clears the user's creator/assignee references on the project's
	// tasks. All four effects happen in one transaction.
	RemoveMemberCascade(projectID, userID uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByProjectAndID finds a task by ID scoped to a project. Task IDs
	// are global, so both keys must match.
	FindByProjectAndID(projectID, taskID uint64) (*models.Task, error)

	// ListByProject lists all tasks belonging to a project
	ListByProject(projectID uint64) ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete permanently deletes a task
	Delete(id uint64) error
}
