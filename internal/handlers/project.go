package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devcollab/team-collab-api/internal/dto"
	apierrors "github.com/devcollab/team-collab-api/internal/errors"
	"github.com/devcollab/team-collab-api/internal/middleware"
	"github.com/devcollab/team-collab-api/internal/models"
	"github.com/devcollab/team-collab-api/internal/services"
)

// ProjectHandler coordinates project- and task-related HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
	taskService    *services.TaskService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, taskService *services.TaskService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		taskService:    taskService,
	}
}

// CreateProject creates a project under a team the caller owns.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Name       string `json:"name" binding:"required"`
		Overview   string `json:"overview"`
		Objectives string `json:"objectives"`
		TechStack  string `json:"techStack"`
		TeamID     uint64 `json:"teamId" binding:"required"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		CallerID:   userID,
		TeamID:     req.TeamID,
		Name:       req.Name,
		Overview:   req.Overview,
		Objectives: req.Objectives,
		TechStack:  req.TechStack,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewResponse(http.StatusCreated, dto.ToProjectDTO(*project), "Project created successfully"))
}

// LinkRepository records the external repository backing a project.
func (h *ProjectHandler) LinkRepository(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}

	type LinkRepositoryRequest struct {
		RepoName string `json:"repoName"`
		Owner    string `json:"owner"`
	}

	var req LinkRepositoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.projectService.LinkRepository(projectID, req.RepoName, req.Owner); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewResponse(http.StatusCreated, gin.H{}, "Repository created and project updated"))
}

// GetProject returns a project record with its tasks.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(http.StatusOK, dto.ToProjectDTO(*project), "Project retrieved successfully"))
}

// AddTask creates a task under a project owned by the caller's team.
func (h *ProjectHandler) AddTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}

	type AddTaskRequest struct {
		TaskName    string    `json:"taskName"`
		Description string    `json:"description"`
		Username    string    `json:"username"`
		Status      string    `json:"status"`
		Deadline    time.Time `json:"deadline"`
	}

	var req AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, task, err := h.taskService.AddTask(services.AddTaskInput{
		CallerID:    userID,
		ProjectID:   projectID,
		Name:        req.TaskName,
		Description: req.Description,
		Assignee:    req.Username,
		Status:      models.TaskStatus(req.Status),
		Deadline:    req.Deadline,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewResponse(http.StatusCreated, gin.H{
		"project": dto.ToProjectDTO(*project),
		"task":    dto.ToTaskDTO(*task),
	}, "Task added successfully"))
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectForbidden):
		apierrors.Forbidden(c, "Forbidden: User does not have permission")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrRepoFieldsMissing):
		apierrors.BadRequest(c, "Invalid request. Missing or empty parameters.")
	case errors.Is(err, services.ErrTaskFieldsRequired):
		apierrors.BadRequest(c, "All fields are required")
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotProjectOwner):
		apierrors.Unauthorized(c, "Unauthorized!")
	default:
		apierrors.InternalError(c, err)
	}
}
