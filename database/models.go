package database

import "time"

// Priority constants for tasks
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// NormalizePriority coerces any unrecognized priority to medium. This is a
// deliberate tolerant-decoding policy: bad priorities are defaulted, not
// rejected, unlike title/color validation.
func NormalizePriority(priority string) string {
	switch priority {
	case PriorityLow, PriorityHigh, PriorityCritical:
		return priority
	default:
		return PriorityMedium
	}
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Board struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Locked      bool      `json:"locked"`
	OwnerID     *string   `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Column struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"boardId"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

type Task struct {
	ID          string    `json:"id"`
	BoardID     string    `json:"boardId"`
	ColumnID    string    `json:"columnId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Priority    string    `json:"priority"`
	Order       int       `json:"order"`
	AssigneeID  *string   `json:"assigneeId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BoardListItem is the shape returned when listing boards in the sidebar.
type BoardListItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// BoardSnapshot is a point-in-time view of a board with its columns in
// display order and each column's tasks in display order. The guest replica
// persists this exact shape as its local document.
type BoardSnapshot struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Locked      bool             `json:"locked"`
	Columns     []ColumnSnapshot `json:"columns"`
}

type ColumnSnapshot struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Order int            `json:"order"`
	Color *string        `json:"color"`
	Tasks []TaskSnapshot `json:"tasks"`
}

type TaskSnapshot struct {
	ID          string    `json:"id"`
	ColumnID    string    `json:"columnId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Priority    string    `json:"priority"`
	Order       int       `json:"order"`
	Author      string    `json:"author"`
	AssigneeID  *string   `json:"assigneeId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
