package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskService handles database operations for tasks, including the
// cross-column move.
type TaskService struct {
	db *sql.DB
}

func NewTaskService(db *sql.DB) *TaskService {
	return &TaskService{db: db}
}

// TaskInput carries the user-editable fields of a task.
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	AssigneeID  *string
}

// Create appends a new task at the end of the given column. The column must
// belong to the given board; a column id from another board is rejected as
// not found, never silently reparented.
func (s *TaskService) Create(boardID, columnID string, input TaskInput) (*Task, error) {
	title, description, err := ValidateTaskInput(input.Title, input.Description)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists string
	err = tx.QueryRow("SELECT id FROM columns WHERE id = ? AND board_id = ?", columnID, boardID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Resource: "Column"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query column: %w", err)
	}

	order, err := nextTaskOrder(tx, columnID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.NewString(),
		BoardID:     boardID,
		ColumnID:    columnID,
		Title:       title,
		Description: description,
		Priority:    NormalizePriority(input.Priority),
		Order:       order,
		AssigneeID:  input.AssigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = tx.Exec(`INSERT INTO tasks (id, board_id, column_id, title, description, priority, "order", assignee_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.BoardID, task.ColumnID, task.Title, task.Description,
		task.Priority, task.Order, task.AssigneeID, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return task, nil
}

// Get retrieves a single task by id.
func (s *TaskService) Get(taskID string) (*Task, error) {
	row := s.db.QueryRow(`SELECT id, board_id, column_id, title, description, priority, "order", assignee_id, created_at, updated_at
		FROM tasks WHERE id = ?`, taskID)

	var task Task
	err := row.Scan(&task.ID, &task.BoardID, &task.ColumnID, &task.Title, &task.Description,
		&task.Priority, &task.Order, &task.AssigneeID, &task.CreatedAt, &task.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Resource: "Task"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query task: %w", err)
	}

	return &task, nil
}

// Update edits a task's fields. The column and order are never changed here;
// only Move reassigns them.
func (s *TaskService) Update(taskID string, input TaskInput) error {
	title, description, err := ValidateTaskInput(input.Title, input.Description)
	if err != nil {
		return err
	}

	result, err := s.db.Exec(`UPDATE tasks SET title = ?, description = ?, priority = ?, assignee_id = ?, updated_at = ?
		WHERE id = ?`,
		title, description, NormalizePriority(input.Priority), input.AssigneeID,
		time.Now().UTC(), taskID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Resource: "Task"}
	}

	return nil
}

// Delete removes a task entirely.
func (s *TaskService) Delete(taskID string) error {
	result, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Resource: "Task"}
	}

	return nil
}

// Move reparents a task to another column of the same board, appending it
// at the end of the target. The column id and order are written in a single
// update, so a reader never observes the task in zero or two columns. A
// target column on a different board is reported as not found. Moving a
// task onto its current column is a no-op success.
func (s *TaskService) Move(taskID, targetColumnID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var boardID, currentColumnID string
	err = tx.QueryRow("SELECT board_id, column_id FROM tasks WHERE id = ?", taskID).
		Scan(&boardID, &currentColumnID)
	if err == sql.ErrNoRows {
		return &NotFoundError{Resource: "Task"}
	}
	if err != nil {
		return fmt.Errorf("failed to query task: %w", err)
	}

	var exists string
	err = tx.QueryRow("SELECT id FROM columns WHERE id = ? AND board_id = ?", targetColumnID, boardID).
		Scan(&exists)
	if err == sql.ErrNoRows {
		return &NotFoundError{Resource: "Target column"}
	}
	if err != nil {
		return fmt.Errorf("failed to query target column: %w", err)
	}

	if currentColumnID == targetColumnID {
		return nil
	}

	order, err := nextTaskOrder(tx, targetColumnID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`UPDATE tasks SET column_id = ?, "order" = ?, updated_at = ? WHERE id = ?`,
		targetColumnID, order, time.Now().UTC(), taskID)
	if err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// List returns a column's tasks sorted by order, creation time breaking
// ties.
func (s *TaskService) List(columnID string) ([]Task, error) {
	rows, err := s.db.Query(`SELECT id, board_id, column_id, title, description, priority, "order", assignee_id, created_at, updated_at
		FROM tasks WHERE column_id = ? ORDER BY "order" ASC, created_at ASC`, columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var task Task
		if err := rows.Scan(&task.ID, &task.BoardID, &task.ColumnID, &task.Title, &task.Description,
			&task.Priority, &task.Order, &task.AssigneeID, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	return tasks, nil
}
