package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/taskdeck-be/internal/auth"
	"github.com/isdelr/taskdeck-be/internal/models"
	"github.com/isdelr/taskdeck-be/internal/services"
)

// TodoHandler handles HTTP requests for the authenticated user's todos.
type TodoHandler struct {
	todos services.TodoServiceProvider
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todos services.TodoServiceProvider) *TodoHandler {
	return &TodoHandler{todos: todos}
}

// currentUser pulls the identity the auth middleware attached. Handlers
// below only run behind that middleware, so a miss means a wiring bug.
func currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
	}
	return user, ok
}

// List handles the request to get all of the caller's todos.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	todos, err := h.todos.List(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, todos)
}

// Get handles the request to get a single todo by its ID.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	todo, err := h.todos.Get(user.ID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, todo)
}

// Create handles the request to create a new todo.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.TodoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	todo, err := h.todos.Create(user.ID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, todo)
}

// Update handles the request to update an existing todo. Fields absent
// from the body keep their stored values.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.TodoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	todo, err := h.todos.Update(user.ID, chi.URLParam(r, "id"), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, todo)
}

// Delete handles the request to delete a todo.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.todos.Delete(user.ID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Todo deleted successfully"})
}
