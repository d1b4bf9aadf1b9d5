package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/devcollab/team-collab-api/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// TokenService issues and verifies the two JWT kinds used for
// authentication. Access tokens are short-lived and verified on every
// request; refresh tokens are longer-lived, signed with a separate secret,
// and carry a unique JTI so every rotation produces a distinct token even
// within the same second.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a new TokenService from configuration.
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

// AccessTokenTTL returns the configured access token lifetime.
func (s *TokenService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

// RefreshTokenTTL returns the configured refresh token lifetime.
func (s *TokenService) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}

// GenerateAccessToken issues a short-lived access token carrying the user ID.
func (s *TokenService) GenerateAccessToken(userID uint64) (string, error) {
	return s.generate(userID, s.accessSecret, s.accessTTL, "")
}

// GenerateRefreshToken issues a longer-lived refresh token carrying the user
// ID and a unique JTI.
func (s *TokenService) GenerateRefreshToken(userID uint64) (string, error) {
	return s.generate(userID, s.refreshSecret, s.refreshTTL, uuid.NewString())
}

// ParseAccessToken verifies an access token and returns the user ID it carries.
func (s *TokenService) ParseAccessToken(tokenString string) (uint64, error) {
	return s.parse(tokenString, s.accessSecret)
}

// ParseRefreshToken verifies a refresh token and returns the user ID it carries.
func (s *TokenService) ParseRefreshToken(tokenString string) (uint64, error) {
	return s.parse(tokenString, s.refreshSecret)
}

func (s *TokenService) generate(userID uint64, secret []byte, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        jti,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *TokenService) parse(tokenString string, secret []byte) (uint64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return userID, nil
}
