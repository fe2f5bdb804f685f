package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamboard/project-management-api/internal/dto"
	apierrors "github.com/teamboard/project-management-api/internal/errors"
	"github.com/teamboard/project-management-api/internal/middleware"
	"github.com/teamboard/project-management-api/internal/models"
	"github.com/teamboard/project-management-api/internal/services"
)

// TaskHandler coordinates task HTTP handlers scoped to a project. Role
// guards run as middleware; the assignee-membership check lives here, one
// layer above the task service.
type TaskHandler struct {
	taskService    *services.TaskService
	projectService *services.ProjectService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, projectService *services.ProjectService) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		projectService: projectService,
	}
}

// Create creates a task in the project. Status defaults to IN_PROGRESS; an
// assignee cannot be set at creation.
func (h *TaskHandler) Create(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string            `json:"title" binding:"required"`
		Description string            `json:"description"`
		Status      models.TaskStatus `json:"status" binding:"omitempty,oneof=IN_PROGRESS COMPLETED"`
		Deadline    *time.Time        `json:"deadline"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		ProjectID:   project.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Deadline:    req.Deadline,
		CreatedByID: userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskView(*task))
}

// List returns all tasks belonging to the project.
func (h *TaskHandler) List(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	tasks, err := h.taskService.ListTasks(project.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskViews(tasks))
}

// Get returns one task, checked against both the task ID and the project.
func (h *TaskHandler) Get(c *gin.Context) {
	project, taskID, ok := h.resolveTaskTarget(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(project.ID, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskView(*task))
}

// Update applies a partial update. When the payload names an assignee, the
// proposed assignee must be a current member of the project.
func (h *TaskHandler) Update(c *gin.Context) {
	project, taskID, ok := h.resolveTaskTarget(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string            `json:"title"`
		Description *string            `json:"description"`
		Status      *models.TaskStatus `json:"status" binding:"omitempty,oneof=IN_PROGRESS COMPLETED"`
		Deadline    *time.Time         `json:"deadline"`
		AssigneeID  *uint64            `json:"assignee_id"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.AssigneeID != nil {
		isMember, err := h.projectService.IsMember(*req.AssigneeID, project.ID)
		if err != nil {
			apierrors.InternalError(c, "")
			return
		}
		if !isMember {
			apierrors.InvalidArgument(c, "Assignee must be a member of the project")
			return
		}
	}

	task, err := h.taskService.UpdateTask(project.ID, taskID, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Deadline:    req.Deadline,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskView(*task))
}

// Delete permanently removes a task from the project.
func (h *TaskHandler) Delete(c *gin.Context) {
	project, taskID, ok := h.resolveTaskTarget(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(project.ID, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task removed from project successfully.",
	})
}

// resolveTaskTarget reads the guarded project from context and the task ID
// from the URL.
func (h *TaskHandler) resolveTaskTarget(c *gin.Context) (models.Project, uint64, bool) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return models.Project{}, 0, false
	}

	taskID, err := strconv.ParseUint(c.Param("taskId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return models.Project{}, 0, false
	}

	return project, taskID, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskTitleRequired),
		errors.Is(err, services.ErrInvalidTaskStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
