package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Team lookups by owner and membership
		{"teams", "idx_teams_owner_id", "owner_id"},
		{"team_members", "idx_team_members_team_id", "team_id"},
		{"team_members", "idx_team_members_user_id", "user_id"},

		// Project and task parent references
		{"projects", "idx_projects_team_id", "team_id"},
		{"tasks", "idx_tasks_project_id", "project_id"},
		{"tasks", "idx_tasks_assignee_id", "assignee_id"},

		// Todo ownership-scoped lookups
		{"todos", "idx_todos_creator_id", "creator_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logrus.Infof("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
