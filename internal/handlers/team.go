package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devcollab/team-collab-api/internal/dto"
	apierrors "github.com/devcollab/team-collab-api/internal/errors"
	"github.com/devcollab/team-collab-api/internal/middleware"
	"github.com/devcollab/team-collab-api/internal/services"
)

// TeamHandler coordinates team-related HTTP handlers.
type TeamHandler struct {
	teamService *services.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeam creates a team owned by the caller.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTeamRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(userID, req.Name, req.Description)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewResponse(http.StatusCreated, dto.ToTeamDTO(*team), "Team created Successfully"))
}

// DeleteTeam removes a team owned by the caller.
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	teamID, ok := parseIDParam(c, "teamId")
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(userID, teamID); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(http.StatusOK, gin.H{}, "Team deleted successfully"))
}

// UpdateTeam replaces a team's name and description.
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	teamID, ok := parseIDParam(c, "teamId")
	if !ok {
		return
	}

	type UpdateTeamRequest struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.UpdateTeam(userID, teamID, req.Name, req.Description)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(http.StatusOK, dto.ToTeamDTO(*team), "Team updated successfully"))
}

// AddMember adds a user to a team by username.
func (h *TeamHandler) AddMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AddMemberRequest struct {
		TeamID   uint64 `json:"teamId" binding:"required"`
		Username string `json:"username" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.teamService.AddMember(userID, req.TeamID, req.Username)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(http.StatusOK, dto.ToUserDTO(*member), "Member added to the team successfully"))
}

// RemoveMember removes a user from a team by id.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type RemoveMemberRequest struct {
		TeamID   uint64 `json:"teamId" binding:"required"`
		MemberID uint64 `json:"memberId" binding:"required"`
	}

	var req RemoveMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.RemoveMember(userID, req.TeamID, req.MemberID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(http.StatusOK, dto.ToTeamDTO(*team), "Member removed from the team successfully"))
}

// ListMine returns all teams where the caller is owner or member.
func (h *TeamHandler) ListMine(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	teams, err := h.teamService.ListTeamsForUser(userID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(http.StatusOK, dto.ToTeamDTOs(teams), "Teams retrieved successfully"))
}

// ListMembers returns every member of a team with credentials stripped.
func (h *TeamHandler) ListMembers(c *gin.Context) {
	teamID, ok := parseIDParam(c, "teamId")
	if !ok {
		return
	}

	members, err := h.teamService.ListMembers(teamID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(http.StatusOK, dto.ToTeamMemberDTOs(members), "Team members fetched successfully"))
}

// ListProjects returns every project of a team.
func (h *TeamHandler) ListProjects(c *gin.Context) {
	teamID, ok := parseIDParam(c, "teamId")
	if !ok {
		return
	}

	projects, err := h.teamService.ListProjects(teamID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(http.StatusOK, dto.ToProjectDTOs(projects), "Projects retrieved successfully"))
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotTeamOwner):
		apierrors.Forbidden(c, "You do not have permission to modify this team")
	case errors.Is(err, services.ErrMemberUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyTeamMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotTeamMember):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, err)
	}
}
