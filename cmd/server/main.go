package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/devcollab/team-collab-api/internal/config"
	"github.com/devcollab/team-collab-api/internal/database"
	"github.com/devcollab/team-collab-api/internal/handlers"
	"github.com/devcollab/team-collab-api/internal/middleware"
	"github.com/devcollab/team-collab-api/internal/repository"
	"github.com/devcollab/team-collab-api/internal/services"
)

func main() {
	// .env is optional; real deployments set environment variables directly
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	cfg := config.Load()

	gin.SetMode(cfg.GinMode)
	if cfg.GinMode == gin.ReleaseMode {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if err := database.Connect(cfg); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.AddIndexes(database.GetDB()); err != nil {
		logrus.Fatalf("Failed to add indexes: %v", err)
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	projRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	// Services
	tokenService := services.NewTokenService(cfg)
	authService := services.NewAuthService(userRepo, tokenService)
	teamService := services.NewTeamService(teamRepo, userRepo, projRepo)
	projectService := services.NewProjectService(projRepo, teamRepo)
	taskService := services.NewTaskService(taskRepo, projRepo, teamRepo, userRepo)
	todoService := services.NewTodoService(todoRepo)

	// Handlers
	secureCookie := cfg.GinMode == gin.ReleaseMode
	authHandler := handlers.NewAuthHandler(authService, tokenService, secureCookie)
	teamHandler := handlers.NewTeamHandler(teamService)
	projectHandler := handlers.NewProjectHandler(projectService, taskService)
	todoHandler := handlers.NewTodoHandler(todoService)

	r := gin.Default()
	requireAuth := middleware.RequireAuth(tokenService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Team Collab API is running",
		})
	})

	// User routes (register/login/refresh are public)
	users := r.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
		users.POST("/refresh", authHandler.Refresh)
		users.POST("/logout", requireAuth, authHandler.Logout)
		users.GET("/me", requireAuth, authHandler.GetCurrentUser)
		users.GET("/:userId/git-token", requireAuth, authHandler.GetGitToken)
	}

	// Team routes (protected)
	teams := r.Group("/teams")
	teams.Use(requireAuth)
	{
		teams.POST("", teamHandler.CreateTeam)
		teams.GET("/mine", teamHandler.ListMine)
		teams.POST("/members", teamHandler.AddMember)
		teams.DELETE("/members", teamHandler.RemoveMember)
		teams.PUT("/:teamId", teamHandler.UpdateTeam)
		teams.DELETE("/:teamId", teamHandler.DeleteTeam)
		teams.GET("/:teamId/members", teamHandler.ListMembers)
		teams.GET("/:teamId/projects", teamHandler.ListProjects)
	}

	// Project routes (protected)
	projects := r.Group("/projects")
	projects.Use(requireAuth)
	{
		projects.POST("", projectHandler.CreateProject)
		projects.GET("/:projectId", projectHandler.GetProject)
		projects.POST("/:projectId/repo", projectHandler.LinkRepository)
		projects.POST("/:projectId/tasks", projectHandler.AddTask)
	}

	// Todo routes (protected)
	todos := r.Group("/todos")
	todos.Use(requireAuth)
	{
		todos.POST("", todoHandler.CreateTodo)
		todos.GET("", todoHandler.ListTodos)
		todos.GET("/:todoId", todoHandler.GetTodo)
		todos.PUT("/:todoId", todoHandler.UpdateTodo)
		todos.DELETE("/:todoId", todoHandler.DeleteTodo)
	}

	logrus.Infof("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
