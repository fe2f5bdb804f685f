package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/teamboard/project-management-api/internal/config"
	"github.com/teamboard/project-management-api/internal/database"
	"github.com/teamboard/project-management-api/internal/handlers"
	"github.com/teamboard/project-management-api/internal/middleware"
	"github.com/teamboard/project-management-api/internal/repository"
	"github.com/teamboard/project-management-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode and log format
	gin.SetMode(cfg.GinMode)
	if cfg.GinMode == gin.ReleaseMode {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logrus.Fatalf("Failed to create indexes: %v", err)
	}

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(cfg.SecretKey, cfg.TokenExpireMinutes)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(authService, tokenService)
	projectHandler := handlers.NewProjectHandler(projectService, authService)
	taskHandler := handlers.NewTaskHandler(taskService, projectService)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project Management API is running",
		})
	})

	requireAuth := middleware.RequireAuth(tokenService, authService)

	// User routes
	user := r.Group("/user")
	{
		user.POST("/create/", userHandler.Register)
		user.POST("/login/", userHandler.Login)
		user.GET("/me/", requireAuth, userHandler.Me)
	}

	// Project routes (protected)
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

		// Task routes, scoped to a project
		task := project.Group("/:id/task")
		{
			task.POST("/", middleware.RequireProjectManager(projectService), taskHandler.Create)
			task.GET("/", middleware.RequireProjectMember(projectService), taskHandler.List)
			task.GET("/:taskId", middleware.RequireProjectMember(projectService), taskHandler.Get)
			task.PUT("/:taskId", middleware.RequireProjectMember(projectService), taskHandler.Update)
			task.DELETE("/:taskId", middleware.RequireProjectManager(projectService), taskHandler.Delete)
		}
	}

	// Start server
	logrus.Infof("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
