package repository

import (
	"github.com/devcollab/team-collab-api/internal/database"
	"github.com/devcollab/team-collab-api/internal/models"
	"gorm.io/gorm"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// Create creates a new todo
func (r *GormTodoRepository) Create(todo *models.Todo) error {
	return r.db.Create(todo).Error
}

// ListByCreator lists all todos created by the user
func (r *GormTodoRepository) ListByCreator(creatorID uint64) ([]models.Todo, error) {
	var todos []models.Todo
	if err := r.db.Scopes(database.OwnedBy(creatorID)).
		Order("created_at DESC").
		Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// FindOwned finds a todo by ID restricted to the creator. A todo belonging
// to another user yields gorm.ErrRecordNotFound, same as an absent row.
func (r *GormTodoRepository) FindOwned(id, creatorID uint64) (*models.Todo, error) {
	var todo models.Todo
	if err := r.db.Scopes(database.OwnedBy(creatorID)).
		Where("id = ?", id).
		First(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// Update updates a todo
func (r *GormTodoRepository) Update(todo *models.Todo) error {
	return r.db.Save(todo).Error
}

// DeleteOwned deletes a todo restricted to the creator
func (r *GormTodoRepository) DeleteOwned(id, creatorID uint64) (int64, error) {
	result := r.db.Scopes(database.OwnedBy(creatorID)).
		Where("id = ?", id).
		Delete(&models.Todo{})
	return result.RowsAffected, result.Error
}
