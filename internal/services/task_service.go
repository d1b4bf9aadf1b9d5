package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/devcollab/team-collab-api/internal/models"
	"github.com/devcollab/team-collab-api/internal/repository"
)

var (
	ErrTaskFieldsRequired = errors.New("all fields are required")
	ErrAssigneeNotFound   = errors.New("user not found")
	ErrNotProjectOwner    = errors.New("caller does not own the project's team")
)

// TaskService provides business logic for task operations.
type TaskService struct {
	taskRepo repository.TaskRepository
	projRepo repository.ProjectRepository
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projRepo repository.ProjectRepository, teamRepo repository.TeamRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		projRepo: projRepo,
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

// AddTaskInput represents parameters to add a task to a project.
type AddTaskInput struct {
	CallerID    uint64
	ProjectID   uint64
	Name        string
	Description string
	Assignee    string
	Status      models.TaskStatus
	Deadline    time.Time
}

// AddTask creates a task under a project, assigned to exactly one existing
// user. Only the owner of the project's team may add tasks. Returns the
// updated project together with the new task.
func (s *TaskService) AddTask(input AddTaskInput) (*models.Project, *models.Task, error) {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.Assignee) == "" ||
		strings.TrimSpace(string(input.Status)) == "" ||
		input.Deadline.IsZero() {
		return nil, nil, ErrTaskFieldsRequired
	}

	assignee, err := s.userRepo.FindByUsername(input.Assignee)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAssigneeNotFound
		}
		return nil, nil, fmt.Errorf("failed to find assignee: %w", err)
	}

	project, err := s.projRepo.FindByID(input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, fmt.Errorf("failed to find project: %w", err)
	}

	team, err := s.teamRepo.FindByID(project.TeamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTeamNotFound
		}
		return nil, nil, fmt.Errorf("failed to find team: %w", err)
	}

	if team.OwnerID != input.CallerID {
		return nil, nil, ErrNotProjectOwner
	}

	task := &models.Task{
		Name:        input.Name,
		Description: input.Description,
		ProjectID:   project.ID,
		AssigneeID:  assignee.ID,
		Status:      input.Status,
		Deadline:    input.Deadline,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, nil, fmt.Errorf("failed to create task: %w", err)
	}

	updated, err := s.projRepo.FindByID(project.ID, "Tasks")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload project: %w", err)
	}

	return updated, task, nil
}
