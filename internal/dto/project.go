package dto

import (
	"github.com/teamboard/project-management-api/internal/models"
)

// ProjectView represents a project in API responses, with its member and
// manager sets expanded to user views.
type ProjectView struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatorID   uint64     `json:"creator_id"`
	Users       []UserView `json:"users"`
	Managers    []UserView `json:"managers"`
}

// ToProjectView converts a Project model with preloaded membership relations
// to a ProjectView
func ToProjectView(project models.Project) ProjectView {
	users := make([]UserView, len(project.Members))
	for i, member := range project.Members {
		users[i] = ToUserView(member.User)
	}

	managers := make([]UserView, len(project.Managers))
	for i, manager := range project.Managers {
		managers[i] = ToUserView(manager.User)
	}

	return ProjectView{
		Title:       project.Title,
		Description: project.Description,
		CreatorID:   project.CreatorID,
		Users:       users,
		Managers:    managers,
	}
}

// ToProjectViews converts a slice of projects
func ToProjectViews(projects []models.Project) []ProjectView {
	views := make([]ProjectView, len(projects))
	for i, project := range projects {
		views[i] = ToProjectView(project)
	}
	return views
}
