package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamboard/project-management-api/internal/constants"
	apierrors "github.com/teamboard/project-management-api/internal/errors"
	"github.com/teamboard/project-management-api/internal/models"
	"github.com/teamboard/project-management-api/internal/services"
)

// rolePredicate checks one role of the caller against the target project.
type rolePredicate func(userID, projectID uint64) (bool, error)

// RequireProjectMember allows only members of the project through.
func RequireProjectMember(projectService *services.ProjectService) gin.HandlerFunc {
	return requireProjectRole(projectService, projectService.IsMember)
}

// RequireProjectManager allows only managers of the project through.
func RequireProjectManager(projectService *services.ProjectService) gin.HandlerFunc {
	return requireProjectRole(projectService, projectService.IsManager)
}

// RequireProjectOwner allows only the project's creator through.
func RequireProjectOwner(projectService *services.ProjectService) gin.HandlerFunc {
	return requireProjectRole(projectService, projectService.IsOwner)
}

// requireProjectRole resolves the project from the URL, evaluates the
// predicate for the caller, and stores the project in the context on
// success. The guard runs before any mutation is attempted.
func requireProjectRole(projectService *services.ProjectService, predicate rolePredicate) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		project, err := projectService.GetProject(projectID)
		if err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		ok, err := predicate(userID, projectID)
		if err != nil {
			apierrors.InternalError(c, "")
			c.Abort()
			return
		}
		if !ok {
			apierrors.Forbidden(c, "Not authorized")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, *project)
		c.Next()
	}
}

// GetProject retrieves the guarded project from context
func GetProject(c *gin.Context) (models.Project, bool) {
	value, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return models.Project{}, false
	}

	project, ok := value.(models.Project)
	if !ok {
		return models.Project{}, false
	}
	return project, true
}
