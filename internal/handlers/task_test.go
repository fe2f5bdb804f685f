package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/teamboard/project-management-api/internal/dto"
	"github.com/teamboard/project-management-api/internal/models"
	"github.com/teamboard/project-management-api/internal/services"
)

// TaskHandlerTestSuite exercises the task routes through the full router,
// guards included.
type TaskHandlerTestSuite struct {
	suite.Suite
	env     *testEnv
	owner   *models.User
	member  *models.User
	project *models.Project
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	suite.env = setupTestEnv(suite.T())

	suite.owner = suite.env.registerUser(suite.T(), "a@x.com", "usera")
	suite.member = suite.env.registerUser(suite.T(), "b@x.com", "userb")
	suite.project = suite.env.createProject(suite.T(), "P1", suite.owner.ID)

	_, err := suite.env.projectService.AddMember(suite.project.ID, suite.member.ID)
	suite.Require().NoError(err)
}

func (suite *TaskHandlerTestSuite) taskURL(taskID uint64) string {
	return fmt.Sprintf("/project/%d/task/%d", suite.project.ID, taskID)
}

func (suite *TaskHandlerTestSuite) createTask(title string) *models.Task {
	task, err := suite.env.taskService.CreateTask(services.CreateTaskInput{
		ProjectID:   suite.project.ID,
		Title:       title,
		CreatedByID: suite.owner.ID,
	})
	suite.Require().NoError(err)
	return task
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Defaults() {
	before := time.Now()

	payload := map[string]interface{}{
		"title":       "T1",
		"description": "first task",
	}
	url := fmt.Sprintf("/project/%d/task/", suite.project.ID)
	w := suite.env.request(suite.T(), http.MethodPost, url, payload, suite.env.tokenFor(suite.T(), suite.owner))

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskView
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "T1", response.Title)
	assert.Equal(suite.T(), models.TaskStatusInProgress, response.Status)
	assert.Equal(suite.T(), suite.project.ID, response.ProjectID)
	suite.Require().NotNil(response.CreatedByID)
	assert.Equal(suite.T(), suite.owner.ID, *response.CreatedByID)
	assert.Nil(suite.T(), response.AssigneeID)

	// date_of_creation is server-assigned at creation time
	assert.False(suite.T(), response.DateOfCreation.Before(before.Truncate(time.Second)))
	assert.False(suite.T(), response.DateOfCreation.After(time.Now().Add(time.Second)))
}

func (suite *TaskHandlerTestSuite) TestCreateTask_MemberForbidden() {
	payload := map[string]interface{}{
		"title": "T1",
	}
	url := fmt.Sprintf("/project/%d/task/", suite.project.ID)
	w := suite.env.request(suite.T(), http.MethodPost, url, payload, suite.env.tokenFor(suite.T(), suite.member))

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidStatus() {
	payload := map[string]interface{}{
		"title":  "T1",
		"status": "DONE",
	}
	url := fmt.Sprintf("/project/%d/task/", suite.project.ID)
	w := suite.env.request(suite.T(), http.MethodPost, url, payload, suite.env.tokenFor(suite.T(), suite.owner))

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasks() {
	suite.createTask("T1")
	suite.createTask("T2")

	url := fmt.Sprintf("/project/%d/task/", suite.project.ID)
	w := suite.env.request(suite.T(), http.MethodGet, url, nil, suite.env.tokenFor(suite.T(), suite.member))

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []dto.TaskView
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(suite.T(), response, 2)
}

func (suite *TaskHandlerTestSuite) TestGetTask() {
	task := suite.createTask("T1")

	w := suite.env.request(suite.T(), http.MethodGet, suite.taskURL(task.ID), nil, suite.env.tokenFor(suite.T(), suite.member))

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskView
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), task.ID, response.ID)
}

func (suite *TaskHandlerTestSuite) TestGetTask_WrongProject() {
	// A task ID alone is not enough: it must belong to the stated project
	otherProject := suite.env.createProject(suite.T(), "P2", suite.owner.ID)
	task, err := suite.env.taskService.CreateTask(services.CreateTaskInput{
		ProjectID:   otherProject.ID,
		Title:       "elsewhere",
		CreatedByID: suite.owner.ID,
	})
	suite.Require().NoError(err)

	w := suite.env.request(suite.T(), http.MethodGet, suite.taskURL(task.ID), nil, suite.env.tokenFor(suite.T(), suite.owner))

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_StatusOnly() {
	deadline := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	task, err := suite.env.taskService.CreateTask(services.CreateTaskInput{
		ProjectID:   suite.project.ID,
		Title:       "T1",
		Description: "keep me",
		Deadline:    &deadline,
		CreatedByID: suite.owner.ID,
	})
	suite.Require().NoError(err)

	payload := map[string]interface{}{
		"status": "COMPLETED",
	}
	w := suite.env.request(suite.T(), http.MethodPut, suite.taskURL(task.ID), payload, suite.env.tokenFor(suite.T(), suite.member))

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskView
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), models.TaskStatusCompleted, response.Status)

	// Absent fields retain their prior values
	assert.Equal(suite.T(), "T1", response.Title)
	assert.Equal(suite.T(), "keep me", response.Description)
	suite.Require().NotNil(response.Deadline)
	assert.True(suite.T(), response.Deadline.Equal(deadline))
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_StatusBackToInProgress() {
	task := suite.createTask("T1")

	completed := models.TaskStatusCompleted
	_, err := suite.env.taskService.UpdateTask(suite.project.ID, task.ID, services.UpdateTaskInput{
		Status: &completed,
	})
	suite.Require().NoError(err)

	// The two states are freely bidirectional
	payload := map[string]interface{}{
		"status": "IN_PROGRESS",
	}
	w := suite.env.request(suite.T(), http.MethodPut, suite.taskURL(task.ID), payload, suite.env.tokenFor(suite.T(), suite.member))

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskView
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), models.TaskStatusInProgress, response.Status)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_AssignMember() {
	task := suite.createTask("T1")

	payload := map[string]interface{}{
		"assignee_id": suite.member.ID,
	}
	w := suite.env.request(suite.T(), http.MethodPut, suite.taskURL(task.ID), payload, suite.env.tokenFor(suite.T(), suite.owner))

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskView
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().NotNil(response.AssigneeID)
	assert.Equal(suite.T(), suite.member.ID, *response.AssigneeID)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_AssigneeNotMember() {
	task := suite.createTask("T1")
	outsider := suite.env.registerUser(suite.T(), "c@x.com", "userc")

	payload := map[string]interface{}{
		"assignee_id": outsider.ID,
	}
	w := suite.env.request(suite.T(), http.MethodPut, suite.taskURL(task.ID), payload, suite.env.tokenFor(suite.T(), suite.owner))

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "INVALID_ARGUMENT")
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_NotFound() {
	payload := map[string]interface{}{
		"status": "COMPLETED",
	}
	w := suite.env.request(suite.T(), http.MethodPut, suite.taskURL(9999), payload, suite.env.tokenFor(suite.T(), suite.member))

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_MemberForbidden() {
	task := suite.createTask("T1")

	w := suite.env.request(suite.T(), http.MethodDelete, suite.taskURL(task.ID), nil, suite.env.tokenFor(suite.T(), suite.member))

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_Manager() {
	task := suite.createTask("T1")

	w := suite.env.request(suite.T(), http.MethodDelete, suite.taskURL(task.ID), nil, suite.env.tokenFor(suite.T(), suite.owner))

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	_, err := suite.env.taskService.GetTask(suite.project.ID, task.ID)
	assert.ErrorIs(suite.T(), err, services.ErrTaskNotFound)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_NotFound() {
	w := suite.env.request(suite.T(), http.MethodDelete, suite.taskURL(9999), nil, suite.env.tokenFor(suite.T(), suite.owner))

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
