package repository

import (
	"errors"
	"time"

	"github.com/teamboard/project-management-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithOwner creates the project and the creator's member and manager
// rows atomically. The creator is owner, member, and manager from the start.
func (r *GormProjectRepository) CreateWithOwner(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		now := time.Now()
		member := &models.ProjectMember{
			ProjectID: project.ID,
			UserID:    project.CreatorID,
			JoinedAt:  now,
		}
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		manager := &models.ProjectManager{
			ProjectID: project.ID,
			UserID:    project.CreatorID,
			GrantedAt: now,
		}
		return tx.Create(manager).Error
	})
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByIDWithRelations finds a project with its member and manager sets
func (r *GormProjectRepository) FindByIDWithRelations(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.
		Preload("Members.User").
		Preload("Managers.User").
		First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByMember lists all projects the user is a member of
func (r *GormProjectRepository) ListByMember(userID uint64) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.
		Preload("Members.User").
		Preload("Managers.User").
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Delete deletes a project and all related data in a transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Delete all tasks in the project
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		// Delete membership rows
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectManager{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddMember adds a user to the member set
func (r *GormProjectRepository) AddMember(member *models.ProjectMember) error {
	return r.db.Create(member).Error
}

// AddManager adds a user to the manager set. A manager must be able to act
// within the project as a member too, so a missing member row is created in
// the same transaction.
func (r *GormProjectRepository) AddManager(manager *models.ProjectManager) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(manager).Error; err != nil {
			return err
		}

		var member models.ProjectMember
		err := tx.Where("project_id = ? AND user_id = ?", manager.ProjectID, manager.UserID).
			First(&member).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		member = models.ProjectMember{
			ProjectID: manager.ProjectID,
			UserID:    manager.UserID,
			JoinedAt:  manager.GrantedAt,
		}
		return tx.Create(&member).Error
	})
}

// FindMember finds a specific member row
func (r *GormProjectRepository) FindMember(projectID, userID uint64) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindManager finds a specific manager row
func (r *GormProjectRepository) FindManager(projectID, userID uint64) (*models.ProjectManager, error) {
	var manager models.ProjectManager
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&manager).Error; err != nil {
		return nil, err
	}
	return &manager, nil
}

// RemoveMemberCascade removes the member and manager rows and clears the
// user's task references within the project. Either all four effects apply
// or none.
func (r *GormProjectRepository) RemoveMemberCascade(projectID, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ? AND user_id = ?", projectID, userID).
			Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ? AND user_id = ?", projectID, userID).
			Delete(&models.ProjectManager{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Task{}).
			Where("project_id = ? AND created_by_id = ?", projectID, userID).
			Update("created_by_id", nil).Error; err != nil {
			return err
		}

		return tx.Model(&models.Task{}).
			Where("project_id = ? AND assignee_id = ?", projectID, userID).
			Update("assignee_id", nil).Error
	})
}
