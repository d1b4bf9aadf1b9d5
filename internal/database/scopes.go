package database

import (
	"gorm.io/gorm"
)

// OwnedBy scopes a query to rows created by the given user, so lookups on
// another user's rows behave the same as lookups on rows that do not exist.
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("creator_id = ?", userID)
	}
}
