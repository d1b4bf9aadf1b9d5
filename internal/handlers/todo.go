package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devcollab/team-collab-api/internal/dto"
	apierrors "github.com/devcollab/team-collab-api/internal/errors"
	"github.com/devcollab/team-collab-api/internal/middleware"
	"github.com/devcollab/team-collab-api/internal/services"
)

// TodoHandler coordinates todo-related HTTP handlers.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// CreateTodo creates a todo for the caller.
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTodoRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.todoService.Create(userID, req.Title, req.Description)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewResponse(http.StatusCreated, dto.ToTodoDTO(*todo), "Todo Created Successfully"))
}

// ListTodos returns all todos created by the caller.
func (h *TodoHandler) ListTodos(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todos, err := h.todoService.ListForUser(userID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(http.StatusOK, dto.ToTodoDTOs(todos), "Todos Retrieved Successfully"))
}

// GetTodo returns one of the caller's todos.
func (h *TodoHandler) GetTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todoID, ok := parseIDParam(c, "todoId")
	if !ok {
		return
	}

	todo, err := h.todoService.Get(userID, todoID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(http.StatusOK, dto.ToTodoDTO(*todo), "Todo Retrieved Successfully"))
}

// UpdateTodo patches one of the caller's todos.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todoID, ok := parseIDParam(c, "todoId")
	if !ok {
		return
	}

	type UpdateTodoRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.todoService.Update(userID, todoID, req.Title, req.Description)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(http.StatusOK, dto.ToTodoDTO(*todo), "Todo Updated Successfully"))
}

// DeleteTodo removes one of the caller's todos.
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todoID, ok := parseIDParam(c, "todoId")
	if !ok {
		return
	}

	if err := h.todoService.Delete(userID, todoID); err != nil {
		respondTodoError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTodoFieldsRequired):
		apierrors.BadRequest(c, "All fields are required")
	case errors.Is(err, services.ErrTodoNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, err)
	}
}
