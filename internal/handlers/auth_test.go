package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devcollab/team-collab-api/internal/constants"
	"github.com/devcollab/team-collab-api/internal/middleware"
	"github.com/devcollab/team-collab-api/internal/models"
	"github.com/devcollab/team-collab-api/internal/repository"
	"github.com/devcollab/team-collab-api/internal/services"
)

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db := newTestDB(t)

	tokenService := newTestTokenService()
	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, tokenService)
	handler := NewAuthHandler(authService, tokenService, false)

	r := gin.New()
	r.POST("/users/register", handler.Register)
	r.POST("/users/login", handler.Login)
	r.POST("/users/refresh", handler.Refresh)
	r.POST("/users/logout", middleware.RequireAuth(tokenService), handler.Logout)
	r.GET("/users/me", middleware.RequireAuth(tokenService), handler.GetCurrentUser)
	r.GET("/users/:userId/git-token", middleware.RequireAuth(tokenService), handler.GetGitToken)

	return authTestEnv{
		db:          db,
		router:      r,
		handler:     handler,
		authService: authService,
	}
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := map[string]interface{}{
		"fullname": "Alice Smith",
		"email":    "alice@example.com",
		"skills":   []string{"go", "sql"},
		"username": "Alice",
		"password": "alice-initial-pass",
		"gitToken": "ghp_alice",
	}

	w := postJSON(t, env.router, "/users/register", payload, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		StatusCode int `json:"statusCode"`
		Data       struct {
			User struct {
				Username string `json:"username"`
				Email    string `json:"email"`
			} `json:"user"`
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, http.StatusCreated, response.StatusCode)
	require.Equal(t, "alice", response.Data.User.Username, "username is stored lowercased")
	require.NotEmpty(t, response.Data.AccessToken)

	// Password and git token never appear in the response
	require.NotContains(t, w.Body.String(), "alice-initial-pass")
	require.NotContains(t, w.Body.String(), "ghp_alice")
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := map[string]interface{}{
		"fullname": "Alice Smith",
		"email":    "alice@example.com",
		"skills":   []string{},
		"username": "alice",
		"password": "pw1",
		"gitToken": "ghp_alice",
	}

	w := postJSON(t, env.router, "/users/register", payload, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	env := setupAuthTestEnv(t)

	registerTestUser(t, env.authService, "alice")

	payload := map[string]interface{}{
		"fullname": "Another Alice",
		"email":    "other@example.com",
		"skills":   []string{"go"},
		"username": "alice",
		"password": "pw2",
		"gitToken": "ghp_other",
	}

	w := postJSON(t, env.router, "/users/register", payload, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	// No second record was created
	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	registerTestUser(t, env.authService, "alice")

	w := postJSON(t, env.router, "/users/login", map[string]string{
		"username": "alice",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Data.AccessToken)
	require.NotEmpty(t, response.Data.RefreshToken)

	cookies := w.Result().Cookies()
	names := make(map[string]bool, len(cookies))
	for _, cookie := range cookies {
		names[cookie.Name] = true
		require.True(t, cookie.HttpOnly)
	}
	require.True(t, names[constants.AccessTokenCookie])
	require.True(t, names[constants.RefreshTokenCookie])
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	registerTestUser(t, env.authService, "alice")

	w := postJSON(t, env.router, "/users/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/users/login", map[string]string{
		"username": "ghost",
		"password": "whatever",
	}, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthHandler_Refresh_Rotation(t *testing.T) {
	env := setupAuthTestEnv(t)
	registerTestUser(t, env.authService, "alice")

	_, pair, err := env.authService.Login("alice", "", "supersecret")
	require.NoError(t, err)

	// First refresh succeeds and rotates the stored token
	w := postJSON(t, env.router, "/users/refresh", map[string]string{
		"refreshToken": pair.RefreshToken,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data struct {
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEqual(t, pair.RefreshToken, response.Data.RefreshToken)

	// Replaying the original token fails: it was rotated away
	w = postJSON(t, env.router, "/users/refresh", map[string]string{
		"refreshToken": pair.RefreshToken,
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// The rotated token works exactly once more
	w = postJSON(t, env.router, "/users/refresh", map[string]string{
		"refreshToken": response.Data.RefreshToken,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/users/refresh", map[string]string{}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout_ClearsRefreshToken(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := registerTestUser(t, env.authService, "alice")

	_, pair, err := env.authService.Login("alice", "", "supersecret")
	require.NoError(t, err)

	w := postJSON(t, env.router, "/users/logout", map[string]string{}, map[string]string{
		"Authorization": "Bearer " + pair.AccessToken,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, env.db.First(&stored, user.ID).Error)
	require.Nil(t, stored.RefreshToken)

	// Refreshing after logout fails
	w = postJSON(t, env.router, "/users/refresh", map[string]string{
		"refreshToken": pair.RefreshToken,
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)
	registerTestUser(t, env.authService, "alice")

	_, pair, err := env.authService.Login("alice", "", "supersecret")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data struct {
			Username string `json:"username"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "alice", response.Data.Username)
}

func TestAuthHandler_GetCurrentUser_NoToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetGitToken(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := registerTestUser(t, env.authService, "alice")

	_, pair, err := env.authService.Login("alice", "", "supersecret")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/"+strconvID(user.ID)+"/git-token", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data struct {
			GitToken string `json:"gitToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "ghp_alice", response.Data.GitToken)
}
