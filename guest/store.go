// Package guest implements the local board replica used when no
// authenticated identity exists. It provides the same operations and the
// same ordering contract as the server-backed stores, against a single
// serialized board document. Guest data and account data never merge.
package guest

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/todogether/todogether/database"
)

const (
	// BoardID is the synthetic id of the one local board.
	BoardID = "guest-local"

	// storageKey is where the serialized board document lives.
	storageKey = "todogether_guest_board"

	// authorLabel replaces assignee names; there is no identity in guest mode.
	authorLabel = "Guest"

	defaultTitle = "My board"
)

// Store holds the guest board in memory and overwrites the whole persisted
// document on every mutation. Mutations apply as one in-memory state change
// followed by one write, so no intermediate state is ever persisted.
type Store struct {
	mu      sync.Mutex
	storage Storage
	board   *database.BoardSnapshot
}

// NewStore loads the board document from storage. A missing or malformed
// document falls back to a fresh empty board.
func NewStore(storage Storage) *Store {
	store := &Store{storage: storage}
	raw, ok := storage.Get(storageKey)
	if ok {
		store.board = parseStoredBoard(raw)
	}
	if store.board == nil {
		store.board = defaultBoard()
	}
	return store
}

func defaultBoard() *database.BoardSnapshot {
	return &database.BoardSnapshot{
		ID:      BoardID,
		Title:   defaultTitle,
		Locked:  false,
		Columns: []database.ColumnSnapshot{},
	}
}

func parseStoredBoard(raw string) *database.BoardSnapshot {
	var board database.BoardSnapshot
	if err := json.Unmarshal([]byte(raw), &board); err != nil {
		return nil
	}
	if board.ID == "" || board.Columns == nil {
		return nil
	}
	return &board
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.board)
	if err != nil {
		return fmt.Errorf("failed to marshal guest board: %w", err)
	}
	if err := s.storage.Set(storageKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist guest board: %w", err)
	}
	return nil
}

// Board returns a copy of the current board snapshot.
func (s *Store) Board() database.BoardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneBoard(s.board)
}

func cloneBoard(board *database.BoardSnapshot) database.BoardSnapshot {
	clone := *board
	clone.Columns = make([]database.ColumnSnapshot, len(board.Columns))
	for i, column := range board.Columns {
		clone.Columns[i] = column
		clone.Columns[i].Tasks = append([]database.TaskSnapshot{}, column.Tasks...)
	}
	return clone
}

// UpdateBoard renames the board and/or toggles the lock.
func (s *Store) UpdateBoard(title *string, locked *bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if title != nil {
		trimmed, err := database.ValidateBoardTitle(*title)
		if err != nil {
			return err
		}
		s.board.Title = trimmed
	}
	if locked != nil {
		s.board.Locked = *locked
	}
	return s.persist()
}

// Reset discards the board and starts over with a fresh empty one.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = defaultBoard()
	return s.persist()
}

// CreateColumn appends a column, assigning its order the same way the
// server store does.
func (s *Store) CreateColumn(title, color string) (*database.ColumnSnapshot, error) {
	title, colorValue, err := database.ValidateColumnInput(title, color)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]int, len(s.board.Columns))
	for i, column := range s.board.Columns {
		orders[i] = column.Order
	}

	column := database.ColumnSnapshot{
		ID:    uuid.NewString(),
		Title: title,
		Order: database.NextOrder(orders),
		Color: colorValue,
		Tasks: []database.TaskSnapshot{},
	}
	s.board.Columns = append(s.board.Columns, column)

	if err := s.persist(); err != nil {
		return nil, err
	}
	return &column, nil
}

// UpdateColumn renames and recolors a column; order is untouched.
func (s *Store) UpdateColumn(columnID, title, color string) error {
	title, colorValue, err := database.ValidateColumnInput(title, color)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.board.Columns {
		if s.board.Columns[i].ID == columnID {
			s.board.Columns[i].Title = title
			s.board.Columns[i].Color = colorValue
			return s.persist()
		}
	}
	return &database.NotFoundError{Resource: "Column"}
}

// DeleteColumn removes a column and its tasks.
func (s *Store) DeleteColumn(columnID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.board.Columns {
		if s.board.Columns[i].ID == columnID {
			s.board.Columns = append(s.board.Columns[:i], s.board.Columns[i+1:]...)
			return s.persist()
		}
	}
	return &database.NotFoundError{Resource: "Column"}
}

// CreateTask appends a task at the end of the column, with the same
// priority coercion policy as the server store.
func (s *Store) CreateTask(columnID string, input database.TaskInput) (*database.TaskSnapshot, error) {
	title, description, err := database.ValidateTaskInput(input.Title, input.Description)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	column := s.findColumn(columnID)
	if column == nil {
		return nil, &database.NotFoundError{Resource: "Column"}
	}

	orders := make([]int, len(column.Tasks))
	for i, task := range column.Tasks {
		orders[i] = task.Order
	}

	now := time.Now().UTC()
	task := database.TaskSnapshot{
		ID:          uuid.NewString(),
		ColumnID:    columnID,
		Title:       title,
		Description: description,
		Priority:    database.NormalizePriority(input.Priority),
		Order:       database.NextOrder(orders),
		Author:      authorLabel,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	column.Tasks = append(column.Tasks, task)

	if err := s.persist(); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask edits a task's fields; column and order stay as they are.
func (s *Store) UpdateTask(taskID string, input database.TaskInput) error {
	title, description, err := database.ValidateTaskInput(input.Title, input.Description)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.board.Columns {
		tasks := s.board.Columns[i].Tasks
		for j := range tasks {
			if tasks[j].ID == taskID {
				tasks[j].Title = title
				tasks[j].Description = description
				tasks[j].Priority = database.NormalizePriority(input.Priority)
				tasks[j].UpdatedAt = time.Now().UTC()
				return s.persist()
			}
		}
	}
	return &database.NotFoundError{Resource: "Task"}
}

// DeleteTask removes a task entirely.
func (s *Store) DeleteTask(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.board.Columns {
		tasks := s.board.Columns[i].Tasks
		for j := range tasks {
			if tasks[j].ID == taskID {
				s.board.Columns[i].Tasks = append(tasks[:j], tasks[j+1:]...)
				return s.persist()
			}
		}
	}
	return &database.NotFoundError{Resource: "Task"}
}

// MoveTask reparents a task to the target column, appending at the end.
// Removal from the source and insertion into the target happen as one
// in-memory state change followed by a single write, so the persisted
// document never shows the task in zero or two columns.
func (s *Store) MoveTask(taskID, targetColumnID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var moved *database.TaskSnapshot
	sourceColumn := -1
	sourceIndex := -1
	for i := range s.board.Columns {
		for j := range s.board.Columns[i].Tasks {
			if s.board.Columns[i].Tasks[j].ID == taskID {
				task := s.board.Columns[i].Tasks[j]
				moved = &task
				sourceColumn = i
				sourceIndex = j
			}
		}
	}
	if moved == nil {
		return &database.NotFoundError{Resource: "Task"}
	}

	target := s.findColumn(targetColumnID)
	if target == nil {
		return &database.NotFoundError{Resource: "Target column"}
	}

	if moved.ColumnID == targetColumnID {
		return nil
	}

	source := &s.board.Columns[sourceColumn]
	source.Tasks = append(source.Tasks[:sourceIndex], source.Tasks[sourceIndex+1:]...)

	orders := make([]int, len(target.Tasks))
	for i, task := range target.Tasks {
		orders[i] = task.Order
	}

	moved.ColumnID = targetColumnID
	moved.Order = database.NextOrder(orders)
	moved.UpdatedAt = time.Now().UTC()
	target.Tasks = append(target.Tasks, *moved)

	return s.persist()
}

func (s *Store) findColumn(columnID string) *database.ColumnSnapshot {
	for i := range s.board.Columns {
		if s.board.Columns[i].ID == columnID {
			return &s.board.Columns[i]
		}
	}
	return nil
}
