package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devcollab/team-collab-api/internal/constants"
	"github.com/devcollab/team-collab-api/internal/dto"
	apierrors "github.com/devcollab/team-collab-api/internal/errors"
	"github.com/devcollab/team-collab-api/internal/middleware"
	"github.com/devcollab/team-collab-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService  *services.AuthService
	tokenService *services.TokenService
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, tokenService *services.TokenService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
		secureCookie: secureCookie,
	}
}

// Register creates a new account and returns the user with an access token.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		FullName string   `json:"fullname"`
		Email    string   `json:"email"`
		Skills   []string `json:"skills"`
		Username string   `json:"username"`
		Password string   `json:"password"`
		GitToken string   `json:"gitToken"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, pair, err := h.authService.Register(services.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Skills:   req.Skills,
		Username: req.Username,
		Password: req.Password,
		GitToken: req.GitToken,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	h.setTokenCookies(c, pair)

	c.JSON(http.StatusCreated, dto.NewResponse(http.StatusCreated, dto.AuthResponse{
		User:        dto.ToUserDTO(*user),
		AccessToken: pair.AccessToken,
	}, "User registered Successfully"))
}

// Login authenticates a user and issues a fresh token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, pair, err := h.authService.Login(req.Username, req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	h.setTokenCookies(c, pair)

	c.JSON(http.StatusOK, dto.NewResponse(http.StatusOK, dto.AuthResponse{
		User:         dto.ToUserDTO(*user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged In Successfully"))
}

// Logout clears the stored refresh token and the token cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.authService.Logout(userID); err != nil {
		respondAuthError(c, err)
		return
	}

	h.clearTokenCookies(c)

	c.JSON(http.StatusOK, dto.NewResponse(http.StatusOK, gin.H{}, "User logged out"))
}

// Refresh rotates the refresh token and issues a new token pair. The token
// is read from the refresh_token cookie or the request body.
func (h *AuthHandler) Refresh(c *gin.Context) {
	presented, _ := c.Cookie(constants.RefreshTokenCookie)
	if presented == "" {
		type RefreshRequest struct {
			RefreshToken string `json:"refreshToken"`
		}
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			presented = req.RefreshToken
		}
	}

	pair, err := h.authService.Refresh(presented)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	h.setTokenCookies(c, pair)

	c.JSON(http.StatusOK, dto.NewResponse(http.StatusOK, dto.TokenPairDTO{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Access token refreshed"))
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(http.StatusOK, dto.ToUserDTO(*user), "User data retrieved successfully"))
}

// GetGitToken returns the stored source-hosting credential for a user.
func (h *AuthHandler) GetGitToken(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	gitToken, err := h.authService.GetGitToken(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(http.StatusOK, gin.H{"gitToken": gitToken}, "User data retrieved successfully"))
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, pair *services.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.AccessTokenCookie, pair.AccessToken,
		int(h.tokenService.AccessTokenTTL()/time.Second), "/", "", h.secureCookie, true)
	c.SetCookie(constants.RefreshTokenCookie, pair.RefreshToken,
		int(h.tokenService.RefreshTokenTTL()/time.Second), "/", "", h.secureCookie, true)
}

func (h *AuthHandler) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.AccessTokenCookie, "", -1, "/", "", h.secureCookie, true)
	c.SetCookie(constants.RefreshTokenCookie, "", -1, "/", "", h.secureCookie, true)
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFieldsRequired):
		apierrors.BadRequest(c, "All fields are required")
	case errors.Is(err, services.ErrUserExists):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrInvalidRefreshToken):
		apierrors.Unauthorized(c, err.Error())
	default:
		apierrors.InternalError(c, err)
	}
}
