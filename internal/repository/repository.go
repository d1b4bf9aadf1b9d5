package repository

import (
	"github.com/devcollab/team-collab-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByUsernameOrEmail finds a user matching either field
	FindByUsernameOrEmail(username, email string) (*models.User, error)

	// UpdateRefreshToken replaces the stored refresh token. A nil token
	// clears the active session.
	UpdateRefreshToken(userID uint64, token *string) error
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// CreateWithOwner creates a team and the owner's membership within a
	// single transaction.
	CreateWithOwner(team *models.Team, member *models.TeamMember) error

	// FindByID finds a team by ID
	FindByID(id uint64) (*models.Team, error)

	// Update updates a team
	Update(team *models.Team) error

	// Delete removes a team and its membership rows. Projects and tasks
	// under the team are left in place.
	Delete(id uint64) error

	// AddMember adds a member to a team
	AddMember(member *models.TeamMember) error

	// RemoveMember removes a member from a team
	RemoveMember(teamID, userID uint64) error

	// FindMember finds a specific team membership
	FindMember(teamID, userID uint64) (*models.TeamMember, error)

	// ListByUser lists teams where the user is the owner or a member
	ListByUser(userID uint64) ([]models.Team, error)

	// ListMembers lists all members of a team with user records preloaded
	ListMembers(teamID uint64) ([]models.TeamMember, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// ListByTeam lists all projects belonging to a team
	ListByTeam(teamID uint64) ([]models.Project, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)
}

// TodoRepository defines the interface for todo data access. Every lookup is
// scoped by creator so rows belonging to other users are indistinguishable
// from absent rows.
type TodoRepository interface {
	// Create creates a new todo
	Create(todo *models.Todo) error

	// ListByCreator lists all todos created by the user
	ListByCreator(creatorID uint64) ([]models.Todo, error)

	// FindOwned finds a todo by ID, restricted to the creator
	FindOwned(id, creatorID uint64) (*models.Todo, error)

	// Update updates a todo
	Update(todo *models.Todo) error

	// DeleteOwned deletes a todo restricted to the creator, reporting the
	// number of rows removed.
	DeleteOwned(id, creatorID uint64) (int64, error)
}
