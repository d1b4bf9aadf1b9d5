package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/devcollab/team-collab-api/internal/models"
	"github.com/devcollab/team-collab-api/internal/repository"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrNotTeamOwner       = errors.New("caller is not the team owner")
	ErrMemberUserNotFound = errors.New("member user not found")
	ErrAlreadyTeamMember  = errors.New("member is already part of the team")
	ErrNotTeamMember      = errors.New("member is not part of the team")
)

// TeamService provides business logic for team operations. Every mutation is
// gated on the stored owner id.
type TeamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	projRepo repository.ProjectRepository
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, projRepo repository.ProjectRepository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		projRepo: projRepo,
	}
}

// CreateTeam creates a team owned by the caller, who becomes the sole
// initial member.
func (s *TeamService) CreateTeam(ownerID uint64, name, description string) (*models.Team, error) {
	team := &models.Team{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}

	member := &models.TeamMember{
		JoinedAt: time.Now(),
	}

	if err := s.teamRepo.CreateWithOwner(team, member); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

// DeleteTeam removes a team. The team's projects and tasks are not
// cascade-deleted.
func (s *TeamService) DeleteTeam(callerID, teamID uint64) error {
	team, err := s.findOwnedTeam(callerID, teamID)
	if err != nil {
		return err
	}

	if err := s.teamRepo.Delete(team.ID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	return nil
}

// UpdateTeam replaces a team's name and description unconditionally, empty
// values included.
func (s *TeamService) UpdateTeam(callerID, teamID uint64, name, description string) (*models.Team, error) {
	team, err := s.findOwnedTeam(callerID, teamID)
	if err != nil {
		return nil, err
	}

	team.Name = name
	team.Description = description
	if err := s.teamRepo.Update(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return team, nil
}

// AddMember adds the user with the given username to the team.
func (s *TeamService) AddMember(callerID, teamID uint64, username string) (*models.User, error) {
	team, err := s.findOwnedTeam(callerID, teamID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.teamRepo.FindMember(team.ID, user.ID); err == nil {
		return nil, ErrAlreadyTeamMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.TeamMember{
		TeamID:   team.ID,
		UserID:   user.ID,
		JoinedAt: time.Now(),
	}

	if err := s.teamRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return user, nil
}

// RemoveMember removes the user with the given id from the team.
func (s *TeamService) RemoveMember(callerID, teamID, memberID uint64) (*models.Team, error) {
	team, err := s.findOwnedTeam(callerID, teamID)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.teamRepo.FindMember(team.ID, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotTeamMember
		}
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	if err := s.teamRepo.RemoveMember(team.ID, memberID); err != nil {
		return nil, fmt.Errorf("failed to remove member: %w", err)
	}

	return team, nil
}

// ListTeamsForUser returns all teams where the user is the owner or a member.
func (s *TeamService) ListTeamsForUser(userID uint64) ([]models.Team, error) {
	teams, err := s.teamRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// ListMembers resolves every member of a team to a user record.
func (s *TeamService) ListMembers(teamID uint64) ([]models.TeamMember, error) {
	if _, err := s.teamRepo.FindByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	members, err := s.teamRepo.ListMembers(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return members, nil
}

// ListProjects returns all projects belonging to a team.
func (s *TeamService) ListProjects(teamID uint64) ([]models.Project, error) {
	if _, err := s.teamRepo.FindByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	projects, err := s.projRepo.ListByTeam(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

func (s *TeamService) findOwnedTeam(callerID, teamID uint64) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	if team.OwnerID != callerID {
		return nil, ErrNotTeamOwner
	}

	return team, nil
}
