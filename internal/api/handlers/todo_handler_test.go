package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/taskdeck-be/internal/auth"
	"github.com/isdelr/taskdeck-be/internal/models"
	"github.com/isdelr/taskdeck-be/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTodoService implements services.TodoServiceProvider for testing.
type fakeTodoService struct {
	listFunc   func(ownerID string) ([]models.Todo, error)
	getFunc    func(ownerID, todoID string) (models.Todo, error)
	createFunc func(ownerID string, input services.TodoInput) (models.Todo, error)
	updateFunc func(ownerID, todoID string, input services.TodoInput) (models.Todo, error)
	deleteFunc func(ownerID, todoID string) error
}

func (f *fakeTodoService) List(ownerID string) ([]models.Todo, error) {
	if f.listFunc != nil {
		return f.listFunc(ownerID)
	}
	return nil, errors.New("not implemented")
}

func (f *fakeTodoService) Get(ownerID, todoID string) (models.Todo, error) {
	if f.getFunc != nil {
		return f.getFunc(ownerID, todoID)
	}
	return models.Todo{}, errors.New("not implemented")
}

func (f *fakeTodoService) Create(ownerID string, input services.TodoInput) (models.Todo, error) {
	if f.createFunc != nil {
		return f.createFunc(ownerID, input)
	}
	return models.Todo{}, errors.New("not implemented")
}

func (f *fakeTodoService) Update(ownerID, todoID string, input services.TodoInput) (models.Todo, error) {
	if f.updateFunc != nil {
		return f.updateFunc(ownerID, todoID, input)
	}
	return models.Todo{}, errors.New("not implemented")
}

func (f *fakeTodoService) Delete(ownerID, todoID string) error {
	if f.deleteFunc != nil {
		return f.deleteFunc(ownerID, todoID)
	}
	return errors.New("not implemented")
}

type fixedUserFinder struct {
	user models.User
}

func (f *fixedUserFinder) GetUserByID(id string) (models.User, error) {
	return f.user, nil
}

// protectedRouter mounts the handler behind the real auth middleware, the
// same way the API router does.
func protectedRouter(t *testing.T, todos services.TodoServiceProvider) (http.Handler, string) {
	t.Helper()

	tokens := newTestTokens()
	token, err := tokens.Issue("user-123")
	require.NoError(t, err)

	finder := &fixedUserFinder{user: models.User{ID: "user-123", Username: "alice"}}
	h := NewTodoHandler(todos)

	r := chi.NewRouter()
	r.Route("/api/todos", func(r chi.Router) {
		r.Use(auth.Middleware(tokens, finder))
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
	return r, token
}

func TestTodoHandler_List_ScopedToCaller(t *testing.T) {
	var askedOwner string
	todos := &fakeTodoService{listFunc: func(ownerID string) ([]models.Todo, error) {
		askedOwner = ownerID
		return []models.Todo{{ID: "todo-1", Title: "Buy milk", UserID: ownerID}}, nil
	}}

	router, token := protectedRouter(t, todos)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/todos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-123", askedOwner, "the list is keyed by the authenticated identity")

	var got []models.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Buy milk", got[0].Title)
}

func TestTodoHandler_Get_NotFound(t *testing.T) {
	todos := &fakeTodoService{getFunc: func(_, _ string) (models.Todo, error) {
		return models.Todo{}, models.ErrNotFound
	}}

	router, token := protectedRouter(t, todos)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/todos/some-id", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Todo not found", body["error"])
}

func TestTodoHandler_Create_BadBody(t *testing.T) {
	router, token := protectedRouter(t, &fakeTodoService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/todos", strings.NewReader("not a json"))
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTodoHandler_Update_PassesPartialInput(t *testing.T) {
	var gotInput services.TodoInput
	todos := &fakeTodoService{updateFunc: func(_, _ string, input services.TodoInput) (models.Todo, error) {
		gotInput = input
		return models.Todo{ID: "todo-1", Completed: true}, nil
	}}

	router, token := protectedRouter(t, todos)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/todos/todo-1", strings.NewReader(`{"completed":true}`))
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotInput.Completed)
	assert.True(t, *gotInput.Completed)
	assert.Nil(t, gotInput.Title, "absent fields stay nil so the service leaves them unchanged")
	assert.Nil(t, gotInput.DueDate)
}

func TestTodoHandler_Delete(t *testing.T) {
	todos := &fakeTodoService{deleteFunc: func(_, _ string) error { return nil }}

	router, token := protectedRouter(t, todos)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/todos/todo-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Todo deleted successfully", body["message"])
}

func TestTodoHandler_StoreFailureStaysGeneric(t *testing.T) {
	todos := &fakeTodoService{listFunc: func(string) ([]models.Todo, error) {
		return nil, errors.New("connection reset by peer")
	}}

	router, token := protectedRouter(t, todos)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/todos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["error"])
	assert.NotContains(t, rec.Body.String(), "connection reset", "store detail must not leak")
}
