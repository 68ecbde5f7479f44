package services

import (
	"database/sql"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/isdelr/taskdeck-be/internal/auth"
	"github.com/isdelr/taskdeck-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(username, email, password string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
}

// UserService provides business logic for account registration and login.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register validates the supplied credentials, hashes the password and
// creates the account. Emails are trimmed and lowercased before the
// uniqueness check so that "A@X.com" and "a@x.com" are the same account.
func (s *UserService) Register(username, email, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)

	if n := utf8.RuneCountInString(username); n < 3 || n > 15 {
		return models.User{}, models.NewValidationError("Username must be between 3 and 15 characters")
	}
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, models.NewValidationError("A valid email is required")
	}
	if len(password) < 6 {
		return models.User{}, models.NewValidationError("Password must be at least 6 characters")
	}

	// Pre-check for a friendlier error; the unique index on email still
	// backs this under concurrent registrations.
	var count int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE email = ?", email).Scan(&count); err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, models.ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, username, email, password_hash, created_at) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt); err != nil {
		return models.User{}, err
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies a user's credentials. An unknown email and a wrong
// password both return models.ErrInvalidCredentials so login failures do
// not reveal whether the address is registered.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	email = NormalizeEmail(email)

	var user models.User
	row := s.db.QueryRow("SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, models.ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return models.User{}, models.ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID. The password hash is
// never loaded on this path; it is the lookup the auth middleware uses.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, email, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, models.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// NormalizeEmail trims surrounding whitespace and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
