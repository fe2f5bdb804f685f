package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/teamboard/project-management-api/internal/middleware"
	"github.com/teamboard/project-management-api/internal/models"
	"github.com/teamboard/project-management-api/internal/repository"
	"github.com/teamboard/project-management-api/internal/services"
)

// testEnv wires the full stack over an in-memory database, with the same
// routes and guards the server registers.
type testEnv struct {
	db             *gorm.DB
	router         *gin.Engine
	authService    *services.AuthService
	tokenService   *services.TokenService
	projectService *services.ProjectService
	taskService    *services.TaskService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.ProjectManager{},
		&models.Task{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService("test-secret", 30)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo)

	userHandler := NewUserHandler(authService, tokenService)
	projectHandler := NewProjectHandler(projectService, authService)
	taskHandler := NewTaskHandler(taskService, projectService)

	r := gin.New()
	requireAuth := middleware.RequireAuth(tokenService, authService)

	user := r.Group("/user")
	{
		user.POST("/create/", userHandler.Register)
		user.POST("/login/", userHandler.Login)
		user.GET("/me/", requireAuth, userHandler.Me)
	}

	project := r.Group("/project")
	project.Use(requireAuth)
	{
		project.POST("/create/", projectHandler.Create)
		project.GET("/my-projects/", projectHandler.MyProjects)
		project.GET("/:id/", middleware.RequireProjectMember(projectService), projectHandler.Get)
		project.PUT("/:id/add/user", middleware.RequireProjectManager(projectService), projectHandler.AddUser)
		project.PUT("/:id/add/manager", middleware.RequireProjectManager(projectService), projectHandler.AddManager)
		project.DELETE("/:id/delete/user", middleware.RequireProjectManager(projectService), projectHandler.RemoveUser)
		project.DELETE("/:id/", middleware.RequireProjectOwner(projectService), projectHandler.Delete)

		task := project.Group("/:id/task")
		{
			task.POST("/", middleware.RequireProjectManager(projectService), taskHandler.Create)
			task.GET("/", middleware.RequireProjectMember(projectService), taskHandler.List)
			task.GET("/:taskId", middleware.RequireProjectMember(projectService), taskHandler.Get)
			task.PUT("/:taskId", middleware.RequireProjectMember(projectService), taskHandler.Update)
			task.DELETE("/:taskId", middleware.RequireProjectManager(projectService), taskHandler.Delete)
		}
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return &testEnv{
		db:             db,
		router:         r,
		authService:    authService,
		tokenService:   tokenService,
		projectService: projectService,
		taskService:    taskService,
	}
}

// registerUser creates a user through the service and returns it.
func (env *testEnv) registerUser(t *testing.T, email, username string) *models.User {
	t.Helper()

	user, err := env.authService.Register(services.RegisterInput{
		Email:    email,
		Username: username,
		Password: "supersecret",
	})
	require.NoError(t, err)
	return user
}

// tokenFor issues an access token for the user.
func (env *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := env.tokenService.Issue(user.Username)
	require.NoError(t, err)
	return token
}

// request performs an HTTP request against the test router. A non-empty
// token is sent as a bearer credential.
func (env *testEnv) request(t *testing.T, method, url string, payload interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
