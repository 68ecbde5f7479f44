package services

import (
	"database/sql"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/isdelr/taskdeck-be/internal/models"
)

// TodoServiceProvider defines the interface for todo services. Every
// operation is scoped to the calling owner's id; there is no way to reach
// a todo through its id alone.
type TodoServiceProvider interface {
	List(ownerID string) ([]models.Todo, error)
	Get(ownerID, todoID string) (models.Todo, error)
	Create(ownerID string, input TodoInput) (models.Todo, error)
	Update(ownerID, todoID string, input TodoInput) (models.Todo, error)
	Delete(ownerID, todoID string) error
}

// TodoInput carries the client-supplied fields for create and update.
// Nil pointers mean "not supplied": required on create, left unchanged on
// update.
type TodoInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

// TodoService provides business logic for owner-scoped todo management.
type TodoService struct {
	db *sql.DB
}

// NewTodoService creates a new TodoService.
func NewTodoService(db *sql.DB) *TodoService {
	return &TodoService{db: db}
}

// List retrieves all todos belonging to the owner, newest-created first.
func (s *TodoService) List(ownerID string) ([]models.Todo, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, completed, priority, due_date, user_id, created_at, updated_at
		FROM todos WHERE user_id = ? ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanTodos(rows)
}

// Get retrieves a single todo by the joint (id, owner) key. A todo that
// does not exist and a todo owned by someone else are the same
// models.ErrNotFound.
func (s *TodoService) Get(ownerID, todoID string) (models.Todo, error) {
	row := s.db.QueryRow(`
		SELECT id, title, description, completed, priority, due_date, user_id, created_at, updated_at
		FROM todos WHERE id = ? AND user_id = ?`, todoID, ownerID)
	return s.scanTodo(row)
}

// Create validates the input and inserts a new todo for the owner. New
// todos are always incomplete; priority defaults to Medium.
func (s *TodoService) Create(ownerID string, input TodoInput) (models.Todo, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return models.Todo{}, err
	}
	description, err := validateDescription(input.Description)
	if err != nil {
		return models.Todo{}, err
	}
	priority, err := validatePriority(input.Priority)
	if err != nil {
		return models.Todo{}, err
	}
	if input.DueDate == nil {
		return models.Todo{}, models.NewValidationError("Due date is required")
	}
	dueDate, err := parseDueDate(*input.DueDate)
	if err != nil {
		return models.Todo{}, err
	}

	now := time.Now().UTC()
	todo := models.Todo{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Completed:   false,
		Priority:    priority,
		DueDate:     dueDate,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stmt, err := s.db.Prepare(`
		INSERT INTO todos (id, title, description, completed, priority, due_date, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.Todo{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(todo.ID, todo.Title, todo.Description, todo.Completed, todo.Priority,
		todo.DueDate, todo.UserID, todo.CreatedAt, todo.UpdatedAt)
	if err != nil {
		return models.Todo{}, err
	}

	return s.Get(ownerID, todo.ID)
}

// Update replaces the supplied mutable fields of an owned todo, validating
// them with the same rules as Create, and touches the update timestamp.
// Unsupplied fields keep their current values. Concurrent updates are
// last-write-wins; there is no conflict detection.
func (s *TodoService) Update(ownerID, todoID string, input TodoInput) (models.Todo, error) {
	todo, err := s.Get(ownerID, todoID)
	if err != nil {
		return models.Todo{}, err
	}

	if input.Title != nil {
		title, err := validateTitle(input.Title)
		if err != nil {
			return models.Todo{}, err
		}
		todo.Title = title
	}
	if input.Description != nil {
		description, err := validateDescription(input.Description)
		if err != nil {
			return models.Todo{}, err
		}
		todo.Description = description
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}
	if input.Priority != nil {
		priority, err := validatePriority(input.Priority)
		if err != nil {
			return models.Todo{}, err
		}
		todo.Priority = priority
	}
	if input.DueDate != nil {
		dueDate, err := parseDueDate(*input.DueDate)
		if err != nil {
			return models.Todo{}, err
		}
		todo.DueDate = dueDate
	}
	todo.UpdatedAt = time.Now().UTC()

	_, err = s.db.Exec(`
		UPDATE todos SET title = ?, description = ?, completed = ?, priority = ?, due_date = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		todo.Title, todo.Description, todo.Completed, todo.Priority, todo.DueDate, todo.UpdatedAt,
		todoID, ownerID)
	if err != nil {
		return models.Todo{}, err
	}

	return s.Get(ownerID, todoID)
}

// Delete removes an owned todo. Deleting a missing or foreign todo is
// models.ErrNotFound, so a second delete of the same id never succeeds.
func (s *TodoService) Delete(ownerID, todoID string) error {
	res, err := s.db.Exec("DELETE FROM todos WHERE id = ? AND user_id = ?", todoID, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *TodoService) scanTodo(row *sql.Row) (models.Todo, error) {
	var todo models.Todo
	err := row.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &todo.Priority,
		&todo.DueDate, &todo.UserID, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Todo{}, models.ErrNotFound
		}
		return models.Todo{}, err
	}
	return todo, nil
}

func (s *TodoService) scanTodos(rows *sql.Rows) ([]models.Todo, error) {
	todos := []models.Todo{}
	for rows.Next() {
		var todo models.Todo
		err := rows.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &todo.Priority,
			&todo.DueDate, &todo.UserID, &todo.CreatedAt, &todo.UpdatedAt)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

func validateTitle(title *string) (string, error) {
	if title == nil {
		return "", models.NewValidationError("Title is required")
	}
	t := strings.TrimSpace(*title)
	if t == "" {
		return "", models.NewValidationError("Title is required")
	}
	if utf8.RuneCountInString(t) > models.TitleMaxLen {
		return "", models.NewValidationError("Title must be at most 50 characters")
	}
	return t, nil
}

func validateDescription(description *string) (string, error) {
	if description == nil {
		return "", models.NewValidationError("Description is required")
	}
	d := strings.TrimSpace(*description)
	if d == "" {
		return "", models.NewValidationError("Description is required")
	}
	if utf8.RuneCountInString(d) > models.DescriptionMaxLen {
		return "", models.NewValidationError("Description must be at most 500 characters")
	}
	return d, nil
}

func validatePriority(priority *string) (models.Priority, error) {
	if priority == nil || strings.TrimSpace(*priority) == "" {
		return models.PriorityMedium, nil
	}
	p := models.Priority(strings.TrimSpace(*priority))
	if !p.Valid() {
		return "", models.NewValidationError("Priority must be one of Low, Medium, High")
	}
	return p, nil
}

// parseDueDate accepts a date-only value (YYYY-MM-DD) or an RFC 3339
// timestamp and normalizes either to midnight UTC.
func parseDueDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Truncate(24 * time.Hour), nil
	}
	return time.Time{}, models.NewValidationError("Due date must be a valid date")
}
