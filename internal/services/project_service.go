package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/teamboard/project-management-api/internal/models"
	"github.com/teamboard/project-management-api/internal/repository"
)

var (
	ErrProjectNotFound       = errors.New("project not found")
	ErrProjectTitleRequired  = errors.New("project title cannot be empty")
	ErrAlreadyProjectMember  = errors.New("user already exists in project")
	ErrAlreadyProjectManager = errors.New("user already manager in project")
	ErrNotProjectMember      = errors.New("user does not exist in project")
	ErrCannotRemoveOwner     = errors.New("can't remove project owner")
)

// ProjectService provides project lifecycle, membership, and role logic.
// Every operation takes the relevant identities as explicit arguments; there
// is no ambient current user.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Title       string
	Description string
	CreatorID   uint64
}

// CreateProject creates a project; the creator becomes owner, member, and
// manager atomically.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrProjectTitleRequired
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		CreatorID:   input.CreatorID,
	}

	if err := s.projectRepo.CreateWithOwner(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.projectRepo.FindByIDWithRelations(project.ID)
}

// ListProjectsForUser returns the projects the user is a member of.
func (s *ProjectService) ListProjectsForUser(userID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByMember(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a project with its member and manager sets.
func (s *ProjectService) GetProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByIDWithRelations(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// IsOwner reports whether the user is the project's creator.
func (s *ProjectService) IsOwner(userID, projectID uint64) (bool, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProjectNotFound
		}
		return false, fmt.Errorf("failed to find project: %w", err)
	}
	return project.CreatorID == userID, nil
}

// IsManager reports whether the user appears in the project's manager set.
func (s *ProjectService) IsManager(userID, projectID uint64) (bool, error) {
	_, err := s.projectRepo.FindManager(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check manager role: %w", err)
	}
	return true, nil
}

// IsMember reports whether the user appears in the project's member set.
func (s *ProjectService) IsMember(userID, projectID uint64) (bool, error) {
	_, err := s.projectRepo.FindMember(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return true, nil
}

// AddMember adds the user to the project's member set.
func (s *ProjectService) AddMember(projectID, userID uint64) (*models.Project, error) {
	isMember, err := s.IsMember(userID, projectID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrAlreadyProjectMember
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		JoinedAt:  time.Now(),
	}
	if err := s.projectRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return s.GetProject(projectID)
}

// AddManager adds the user to the project's manager set. Promoting to
// manager also grants membership when not already present.
func (s *ProjectService) AddManager(projectID, userID uint64) (*models.Project, error) {
	isManager, err := s.IsManager(userID, projectID)
	if err != nil {
		return nil, err
	}
	if isManager {
		return nil, ErrAlreadyProjectManager
	}

	manager := &models.ProjectManager{
		ProjectID: projectID,
		UserID:    userID,
		GrantedAt: time.Now(),
	}
	if err := s.projectRepo.AddManager(manager); err != nil {
		return nil, fmt.Errorf("failed to add manager: %w", err)
	}

	return s.GetProject(projectID)
}

// RemoveMember removes the user from the project. The owner can never be
// removed. The membership row, any manager row, and the user's task
// references inside the project are all removed or cleared atomically.
func (s *ProjectService) RemoveMember(projectID, userID uint64) (*models.Project, error) {
	isMember, err := s.IsMember(userID, projectID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotProjectMember
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project.CreatorID == userID {
		return nil, ErrCannotRemoveOwner
	}

	if err := s.projectRepo.RemoveMemberCascade(projectID, userID); err != nil {
		return nil, fmt.Errorf("failed to remove member: %w", err)
	}

	return s.GetProject(projectID)
}

// DeleteProject deletes the project and, by cascade, all of its tasks.
func (s *ProjectService) DeleteProject(projectID uint64) error {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}
