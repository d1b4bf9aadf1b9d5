package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devcollab/team-collab-api/internal/middleware"
	"github.com/devcollab/team-collab-api/internal/models"
	"github.com/devcollab/team-collab-api/internal/repository"
	"github.com/devcollab/team-collab-api/internal/services"
)

type projectTestEnv struct {
	db             *gorm.DB
	router         *gin.Engine
	authService    *services.AuthService
	teamService    *services.TeamService
	projectService *services.ProjectService
}

func setupProjectTestEnv(t *testing.T) projectTestEnv {
	t.Helper()

	db := newTestDB(t)

	tokenService := newTestTokenService()
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	projRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, tokenService)
	teamService := services.NewTeamService(teamRepo, userRepo, projRepo)
	projectService := services.NewProjectService(projRepo, teamRepo)
	taskService := services.NewTaskService(taskRepo, projRepo, teamRepo, userRepo)
	handler := NewProjectHandler(projectService, taskService)

	r := gin.New()
	requireAuth := middleware.RequireAuth(tokenService)
	projects := r.Group("/projects")
	projects.Use(requireAuth)
	{
		projects.POST("", handler.CreateProject)
		projects.GET("/:projectId", handler.GetProject)
		projects.POST("/:projectId/repo", handler.LinkRepository)
		projects.POST("/:projectId/tasks", handler.AddTask)
	}

	return projectTestEnv{
		db:             db,
		router:         r,
		authService:    authService,
		teamService:    teamService,
		projectService: projectService,
	}
}

func (env projectTestEnv) accessToken(t *testing.T, username string) string {
	t.Helper()
	_, pair, err := env.authService.Login(username, "", "supersecret")
	require.NoError(t, err)
	return pair.AccessToken
}

func (env projectTestEnv) do(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestProjectHandler_CreateProject(t *testing.T) {
	env := setupProjectTestEnv(t)
	alice := registerTestUser(t, env.authService, "alice")
	token := env.accessToken(t, "alice")

	team, err := env.teamService.CreateTeam(alice.ID, "Core", "")
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, "/projects", token, map[string]interface{}{
		"name":       "Indexer",
		"overview":   "search indexer",
		"objectives": "fast lookups",
		"techStack":  "go, postgres",
		"teamId":     team.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Data struct {
			ID              uint64 `json:"id"`
			TeamID          uint64 `json:"team_id"`
			RepoInitialized bool   `json:"repo_initialized"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, team.ID, response.Data.TeamID)
	require.True(t, response.Data.RepoInitialized)
}

func TestProjectHandler_CreateProject_NonOwnerForbidden(t *testing.T) {
	env := setupProjectTestEnv(t)
	alice := registerTestUser(t, env.authService, "alice")
	registerTestUser(t, env.authService, "bob")
	bobToken := env.accessToken(t, "bob")

	team, err := env.teamService.CreateTeam(alice.ID, "Core", "")
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, "/projects", bobToken, map[string]interface{}{
		"name":   "Indexer",
		"teamId": team.ID,
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestProjectHandler_CreateProject_UnknownTeamForbidden(t *testing.T) {
	env := setupProjectTestEnv(t)
	registerTestUser(t, env.authService, "alice")
	token := env.accessToken(t, "alice")

	w := env.do(t, http.MethodPost, "/projects", token, map[string]interface{}{
		"name":   "Indexer",
		"teamId": 9999,
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestProjectHandler_LinkRepository_Idempotent(t *testing.T) {
	env := setupProjectTestEnv(t)
	alice := registerTestUser(t, env.authService, "alice")
	token := env.accessToken(t, "alice")

	team, err := env.teamService.CreateTeam(alice.ID, "Core", "")
	require.NoError(t, err)
	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		CallerID: alice.ID,
		TeamID:   team.ID,
		Name:     "Indexer",
	})
	require.NoError(t, err)

	payload := map[string]string{
		"repoName": "indexer",
		"owner":    "alice-gh",
	}

	w := env.do(t, http.MethodPost, "/projects/"+strconvID(project.ID)+"/repo", token, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var first models.Project
	require.NoError(t, env.db.First(&first, project.ID).Error)

	// Second call with the same parameters leaves the record unchanged
	w = env.do(t, http.MethodPost, "/projects/"+strconvID(project.ID)+"/repo", token, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var second models.Project
	require.NoError(t, env.db.First(&second, project.ID).Error)
	require.Equal(t, first.RepoName, second.RepoName)
	require.Equal(t, first.RepoOwner, second.RepoOwner)
	require.Equal(t, first.RepoInitialized, second.RepoInitialized)
}

func TestProjectHandler_LinkRepository_Validation(t *testing.T) {
	env := setupProjectTestEnv(t)
	alice := registerTestUser(t, env.authService, "alice")
	token := env.accessToken(t, "alice")

	team, err := env.teamService.CreateTeam(alice.ID, "Core", "")
	require.NoError(t, err)
	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		CallerID: alice.ID,
		TeamID:   team.ID,
		Name:     "Indexer",
	})
	require.NoError(t, err)

	// Missing owner field
	w := env.do(t, http.MethodPost, "/projects/"+strconvID(project.ID)+"/repo", token, map[string]string{
		"repoName": "indexer",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown project
	w = env.do(t, http.MethodPost, "/projects/9999/repo", token, map[string]string{
		"repoName": "indexer",
		"owner":    "alice-gh",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_GetProject(t *testing.T) {
	env := setupProjectTestEnv(t)
	alice := registerTestUser(t, env.authService, "alice")
	token := env.accessToken(t, "alice")

	team, err := env.teamService.CreateTeam(alice.ID, "Core", "")
	require.NoError(t, err)
	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		CallerID: alice.ID,
		TeamID:   team.ID,
		Name:     "Indexer",
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/projects/"+strconvID(project.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/projects/9999", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_AddTask(t *testing.T) {
	env := setupProjectTestEnv(t)
	alice := registerTestUser(t, env.authService, "alice")
	registerTestUser(t, env.authService, "bob")
	aliceToken := env.accessToken(t, "alice")
	bobToken := env.accessToken(t, "bob")

	team, err := env.teamService.CreateTeam(alice.ID, "Core", "")
	require.NoError(t, err)
	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		CallerID: alice.ID,
		TeamID:   team.ID,
		Name:     "Indexer",
	})
	require.NoError(t, err)

	deadline := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	path := "/projects/" + strconvID(project.ID) + "/tasks"

	// Missing fields
	w := env.do(t, http.MethodPost, path, aliceToken, map[string]interface{}{
		"taskName": "build index",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Unregistered assignee
	w = env.do(t, http.MethodPost, path, aliceToken, map[string]interface{}{
		"taskName":    "build index",
		"description": "initial pass",
		"username":    "carol",
		"status":      "TODO",
		"deadline":    deadline,
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	// Non-owner caller
	w = env.do(t, http.MethodPost, path, bobToken, map[string]interface{}{
		"taskName":    "build index",
		"description": "initial pass",
		"username":    "alice",
		"status":      "TODO",
		"deadline":    deadline,
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Success
	w = env.do(t, http.MethodPost, path, aliceToken, map[string]interface{}{
		"taskName":    "build index",
		"description": "initial pass",
		"username":    "alice",
		"status":      "TODO",
		"deadline":    deadline,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Data struct {
			Project struct {
				Tasks []struct {
					ID uint64 `json:"id"`
				} `json:"tasks"`
			} `json:"project"`
			Task struct {
				ID         uint64 `json:"id"`
				AssigneeID uint64 `json:"assignee_id"`
			} `json:"task"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, alice.ID, response.Data.Task.AssigneeID)
	require.Len(t, response.Data.Project.Tasks, 1)
	require.Equal(t, response.Data.Task.ID, response.Data.Project.Tasks[0].ID)
}
