package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/devcollab/team-collab-api/internal/models"
	"github.com/devcollab/team-collab-api/internal/repository"
)

var (
	ErrTodoFieldsRequired = errors.New("all fields are required")
	ErrTodoNotFound       = errors.New("todo not found")
)

// TodoService provides business logic for the per-user todo list. All
// lookups are scoped by creator at the query layer, so todos belonging to
// other users read as not found, not forbidden.
type TodoService struct {
	todoRepo repository.TodoRepository
}

// NewTodoService creates a new TodoService.
func NewTodoService(todoRepo repository.TodoRepository) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
	}
}

// Create creates a todo for the caller.
func (s *TodoService) Create(creatorID uint64, title, description string) (*models.Todo, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return nil, ErrTodoFieldsRequired
	}

	todo := &models.Todo{
		Title:       title,
		Description: description,
		CreatorID:   creatorID,
	}

	if err := s.todoRepo.Create(todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

// ListForUser returns all todos created by the caller.
func (s *TodoService) ListForUser(creatorID uint64) ([]models.Todo, error) {
	todos, err := s.todoRepo.ListByCreator(creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Get retrieves one of the caller's todos.
func (s *TodoService) Get(callerID, todoID uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindOwned(todoID, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	return todo, nil
}

// Update patches one of the caller's todos. Empty fields retain their
// existing values.
func (s *TodoService) Update(callerID, todoID uint64, title, description string) (*models.Todo, error) {
	todo, err := s.todoRepo.FindOwned(todoID, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	if title != "" {
		todo.Title = title
	}
	if description != "" {
		todo.Description = description
	}

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

// Delete removes one of the caller's todos.
func (s *TodoService) Delete(callerID, todoID uint64) error {
	affected, err := s.todoRepo.DeleteOwned(todoID, callerID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if affected == 0 {
		return ErrTodoNotFound
	}
	return nil
}
