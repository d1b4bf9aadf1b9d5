package dto

import (
	"time"

	"github.com/devcollab/team-collab-api/internal/models"
)

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uint64    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TeamMemberDTO represents a member of a team
type TeamMemberDTO struct {
	User     UserDTO   `json:"user"`
	JoinedAt time.Time `json:"joined_at"`
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	return TeamDTO{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		OwnerID:     team.OwnerID,
		CreatedAt:   team.CreatedAt,
		UpdatedAt:   team.UpdatedAt,
	}
}

// ToTeamDTOs converts a slice of Team models
func ToTeamDTOs(teams []models.Team) []TeamDTO {
	dtos := make([]TeamDTO, len(teams))
	for i, team := range teams {
		dtos[i] = ToTeamDTO(team)
	}
	return dtos
}

// ToTeamMemberDTO converts a membership to DTO
func ToTeamMemberDTO(member models.TeamMember) TeamMemberDTO {
	return TeamMemberDTO{
		User:     ToUserDTO(member.User),
		JoinedAt: member.JoinedAt,
	}
}

// ToTeamMemberDTOs converts a slice of memberships
func ToTeamMemberDTOs(members []models.TeamMember) []TeamMemberDTO {
	dtos := make([]TeamMemberDTO, len(members))
	for i, member := range members {
		dtos[i] = ToTeamMemberDTO(member)
	}
	return dtos
}
