package handlers

import (
	"errors"
	"net/http"

	"github.com/badoux/checkmail"
	"github.com/gin-gonic/gin"

	"github.com/teamboard/project-management-api/internal/dto"
	apierrors "github.com/teamboard/project-management-api/internal/errors"
	"github.com/teamboard/project-management-api/internal/middleware"
	"github.com/teamboard/project-management-api/internal/models"
	"github.com/teamboard/project-management-api/internal/services"
)

// ProjectHandler coordinates project and membership HTTP handlers. Role
// guards run as middleware before every handler that needs them.
type ProjectHandler struct {
	projectService *services.ProjectService
	authService    *services.AuthService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, authService *services.AuthService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		authService:    authService,
	}
}

// Create creates a project owned by the caller.
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   userID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectView(*project))
}

// MyProjects lists the projects the caller is a member of.
func (h *ProjectHandler) MyProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projects, err := h.projectService.ListProjectsForUser(userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectViews(projects))
}

// Get returns one project. Membership is enforced by the guard.
func (h *ProjectHandler) Get(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectView(project))
}

// AddUser adds the user identified by the email query parameter to the
// project's member set.
func (h *ProjectHandler) AddUser(c *gin.Context) {
	project, target, ok := h.resolveMembershipTarget(c)
	if !ok {
		return
	}

	updated, err := h.projectService.AddMember(project.ID, target.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectView(*updated))
}

// AddManager promotes the user identified by the email query parameter to
// manager, granting membership when absent.
func (h *ProjectHandler) AddManager(c *gin.Context) {
	project, target, ok := h.resolveMembershipTarget(c)
	if !ok {
		return
	}

	updated, err := h.projectService.AddManager(project.ID, target.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectView(*updated))
}

// RemoveUser removes the user identified by the email query parameter from
// the project, cascading to manager status and task references.
func (h *ProjectHandler) RemoveUser(c *gin.Context) {
	project, target, ok := h.resolveMembershipTarget(c)
	if !ok {
		return
	}

	updated, err := h.projectService.RemoveMember(project.ID, target.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectView(*updated))
}

// Delete deletes the project and all of its tasks. Ownership is enforced by
// the guard.
func (h *ProjectHandler) Delete(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	if err := h.projectService.DeleteProject(project.ID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully.",
	})
}

// resolveMembershipTarget reads the guarded project from context and the
// target user from the email query parameter.
func (h *ProjectHandler) resolveMembershipTarget(c *gin.Context) (models.Project, models.User, bool) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return models.Project{}, models.User{}, false
	}

	email := c.Query("email")
	if err := checkmail.ValidateFormat(email); err != nil {
		apierrors.BadRequest(c, "Invalid email")
		return models.Project{}, models.User{}, false
	}

	target, err := h.authService.GetUserByEmail(email)
	if err != nil {
		apierrors.BadRequest(c, "User does not exist")
		return models.Project{}, models.User{}, false
	}

	return project, *target, true
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectTitleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAlreadyProjectMember),
		errors.Is(err, services.ErrAlreadyProjectManager),
		errors.Is(err, services.ErrNotProjectMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCannotRemoveOwner):
		apierrors.InvalidOperation(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
