package dto

import (
	"time"

	"github.com/devcollab/team-collab-api/internal/models"
)

// TodoDTO represents a todo in API responses
type TodoDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatorID   uint64    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToTodoDTO converts a Todo model to TodoDTO
func ToTodoDTO(todo models.Todo) TodoDTO {
	return TodoDTO{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		CreatorID:   todo.CreatorID,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

// ToTodoDTOs converts a slice of Todo models
func ToTodoDTOs(todos []models.Todo) []TodoDTO {
	dtos := make([]TodoDTO, len(todos))
	for i, todo := range todos {
		dtos[i] = ToTodoDTO(todo)
	}
	return dtos
}
