package handlers

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/devcollab/team-collab-api/internal/config"
	"github.com/devcollab/team-collab-api/internal/database"
	"github.com/devcollab/team-collab-api/internal/models"
	"github.com/devcollab/team-collab-api/internal/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Project{},
		&models.Task{},
		&models.Todo{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func newTestTokenService() *services.TokenService {
	return services.NewTokenService(&config.Config{
		AccessTokenSecret:  "test-access-secret",
		RefreshTokenSecret: "test-refresh-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    7 * 24 * time.Hour,
	})
}

func registerTestUser(t *testing.T, authService *services.AuthService, username string) *models.User {
	t.Helper()

	user, _, err := authService.Register(services.RegisterInput{
		FullName: "Test " + username,
		Email:    username + "@example.com",
		Skills:   []string{"go"},
		Username: username,
		Password: "supersecret",
		GitToken: "ghp_" + username,
	})
	require.NoError(t, err)

	return user
}

func strconvID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
