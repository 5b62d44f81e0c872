package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserService handles database operations for user accounts.
type UserService struct {
	db *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Create inserts a new user. Emails are stored lowercased; a duplicate is
// reported as a validation error on the email field.
func (s *UserService) Create(email string, name *string, passwordHash string) (*User, error) {
	user := &User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(email),
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.Exec(`INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, &ValidationError{Field: "email", Message: "email already in use"}
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

// FindByEmail looks a user up by email, case-insensitively.
func (s *UserService) FindByEmail(email string) (*User, error) {
	row := s.db.QueryRow(`SELECT id, email, name, password_hash, created_at
		FROM users WHERE email = ?`, strings.ToLower(email))
	return scanUser(row)
}

// Get retrieves a user by id.
func (s *UserService) Get(userID string) (*User, error) {
	row := s.db.QueryRow(`SELECT id, email, name, password_hash, created_at
		FROM users WHERE id = ?`, userID)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Resource: "User"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// List returns all users for assignee selection, sorted by email.
func (s *UserService) List() ([]User, error) {
	rows, err := s.db.Query(`SELECT id, email, name, password_hash, created_at
		FROM users ORDER BY email ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}
