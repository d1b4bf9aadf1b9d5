package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/devcollab/team-collab-api/internal/models"
	"github.com/devcollab/team-collab-api/internal/repository"
)

var (
	ErrFieldsRequired       = errors.New("all fields are required")
	ErrUserExists           = errors.New("user with this email or username already exists")
	ErrUserNotFound         = errors.New("user does not exist")
	ErrInvalidCredentials   = errors.New("invalid user credentials")
	ErrInvalidRefreshToken  = errors.New("refresh token is expired or used")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration, login, and the refresh token lifecycle.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	FullName string
	Email    string
	Skills   []string
	Username string
	Password string
	GitToken string
}

// TokenPair holds a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Register creates a new account and issues the initial token pair.
func (s *AuthService) Register(input RegisterInput) (*models.User, *TokenPair, error) {
	if len(input.Skills) == 0 {
		return nil, nil, ErrFieldsRequired
	}
	for _, field := range []string{input.FullName, input.Email, input.Username, input.Password, input.GitToken} {
		if strings.TrimSpace(field) == "" {
			return nil, nil, ErrFieldsRequired
		}
	}

	username := strings.ToLower(strings.TrimSpace(input.Username))

	if _, err := s.userRepo.FindByUsernameOrEmail(username, input.Email); err == nil {
		return nil, nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        input.Email,
		FullName:     input.FullName,
		Skills:       input.Skills,
		PasswordHash: string(hashedPassword),
		GitToken:     input.GitToken,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := s.issueTokenPair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Login verifies credentials and issues a new token pair. The stored refresh
// token is replaced, so an earlier session becomes invalid.
func (s *AuthService) Login(username, email, password string) (*models.User, *TokenPair, error) {
	if username == "" && email == "" {
		return nil, nil, ErrFieldsRequired
	}

	user, err := s.userRepo.FindByUsernameOrEmail(username, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh validates a presented refresh token against the one stored on the
// user record and rotates it. A token that was already rotated away fails,
// which surfaces replay of stolen tokens.
func (s *AuthService) Refresh(presented string) (*TokenPair, error) {
	if presented == "" {
		return nil, ErrInvalidRefreshToken
	}

	userID, err := s.tokens.ParseRefreshToken(presented)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.RefreshToken == nil || *user.RefreshToken != presented {
		return nil, ErrInvalidRefreshToken
	}

	return s.issueTokenPair(user.ID)
}

// Logout clears the stored refresh token, ending the active session.
func (s *AuthService) Logout(userID uint64) error {
	if err := s.userRepo.UpdateRefreshToken(userID, nil); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// GetGitToken returns the stored source-hosting credential for a user.
func (s *AuthService) GetGitToken(userID uint64) (string, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	return user.GitToken, nil
}

func (s *AuthService) issueTokenPair(userID uint64) (*TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.userRepo.UpdateRefreshToken(userID, &refreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
