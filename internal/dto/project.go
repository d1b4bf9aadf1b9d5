package dto

import (
	"time"

	"github.com/devcollab/team-collab-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID              uint64    `json:"id"`
	Name            string    `json:"name"`
	Overview        string    `json:"overview"`
	Objectives      string    `json:"objectives"`
	TechStack       string    `json:"tech_stack"`
	TeamID          uint64    `json:"team_id"`
	RepoName        string    `json:"repo_name"`
	RepoOwner       string    `json:"repo_owner"`
	RepoInitialized bool      `json:"repo_initialized"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Tasks           []TaskDTO `json:"tasks,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	ProjectID   uint64            `json:"project_id"`
	AssigneeID  uint64            `json:"assignee_id"`
	Status      models.TaskStatus `json:"status"`
	Deadline    time.Time         `json:"deadline"`
	CreatedAt   time.Time         `json:"created_at"`
	Assignee    *UserDTO          `json:"assignee,omitempty"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:              project.ID,
		Name:            project.Name,
		Overview:        project.Overview,
		Objectives:      project.Objectives,
		TechStack:       project.TechStack,
		TeamID:          project.TeamID,
		RepoName:        project.RepoName,
		RepoOwner:       project.RepoOwner,
		RepoInitialized: project.RepoInitialized,
		CreatedAt:       project.CreatedAt,
		UpdatedAt:       project.UpdatedAt,
	}

	// Include tasks if preloaded
	if len(project.Tasks) > 0 {
		dto.Tasks = make([]TaskDTO, len(project.Tasks))
		for i, task := range project.Tasks {
			dto.Tasks[i] = ToTaskDTO(task)
		}
	}

	return dto
}

// ToProjectDTOs converts a slice of Project models
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		ProjectID:   task.ProjectID,
		AssigneeID:  task.AssigneeID,
		Status:      task.Status,
		Deadline:    task.Deadline,
		CreatedAt:   task.CreatedAt,
	}

	// Include assignee if preloaded
	if task.Assignee.ID != 0 {
		assignee := ToUserDTO(task.Assignee)
		dto.Assignee = &assignee
	}

	return dto
}
