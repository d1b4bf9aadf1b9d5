package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/devcollab/team-collab-api/internal/models"
	"github.com/devcollab/team-collab-api/internal/repository"
)

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrProjectForbidden  = errors.New("user does not have permission for this team")
	ErrRepoFieldsMissing = errors.New("missing or empty repository parameters")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projRepo repository.ProjectRepository
	teamRepo repository.TeamRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projRepo repository.ProjectRepository, teamRepo repository.TeamRepository) *ProjectService {
	return &ProjectService{
		projRepo: projRepo,
		teamRepo: teamRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	CallerID   uint64
	TeamID     uint64
	Name       string
	Overview   string
	Objectives string
	TechStack  string
}

// CreateProject creates a project under a team. Only the team owner may
// create projects; an absent team reads as a permission failure, so
// existence is not revealed to outsiders.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	team, err := s.teamRepo.FindByID(input.TeamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectForbidden
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	if team.OwnerID != input.CallerID {
		return nil, ErrProjectForbidden
	}

	project := &models.Project{
		Name:            input.Name,
		Overview:        input.Overview,
		Objectives:      input.Objectives,
		TechStack:       input.TechStack,
		TeamID:          team.ID,
		RepoInitialized: true,
	}

	if err := s.projRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// LinkRepository records the external repository backing a project. Calling
// it repeatedly with the same parameters leaves the project unchanged.
func (s *ProjectService) LinkRepository(projectID uint64, repoName, repoOwner string) error {
	if strings.TrimSpace(repoName) == "" || strings.TrimSpace(repoOwner) == "" {
		return ErrRepoFieldsMissing
	}

	project, err := s.projRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	project.RepoName = repoName
	project.RepoOwner = repoOwner
	project.RepoInitialized = true

	if err := s.projRepo.Update(project); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	return nil
}

// GetProject retrieves a project record with its tasks.
func (s *ProjectService) GetProject(projectID uint64) (*models.Project, error) {
	project, err := s.projRepo.FindByID(projectID, "Tasks")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	return project, nil
}
