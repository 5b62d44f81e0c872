package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const defaultBoardTitle = "My board"

// BoardService handles database operations for boards.
type BoardService struct {
	db *sql.DB
}

func NewBoardService(db *sql.DB) *BoardService {
	return &BoardService{db: db}
}

// ListForOwner returns the owner's boards in creation order.
func (s *BoardService) ListForOwner(ownerID string) ([]BoardListItem, error) {
	rows, err := s.db.Query(`SELECT id, title, description FROM boards
		WHERE owner_id = ? ORDER BY created_at ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	boards := []BoardListItem{}
	for rows.Next() {
		var board BoardListItem
		if err := rows.Scan(&board.ID, &board.Title, &board.Description); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, board)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read boards: %w", err)
	}

	return boards, nil
}

// EnsureDefault creates the owner's first board when they have none yet.
func (s *BoardService) EnsureDefault(ownerID string) error {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM boards WHERE owner_id = ?", ownerID).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count boards: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err = s.Create(ownerID, defaultBoardTitle)
	return err
}

// Create creates a new board owned by the given user.
func (s *BoardService) Create(ownerID, title string) (*Board, error) {
	title, err := ValidateBoardTitle(title)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	board := &Board{
		ID:        uuid.NewString(),
		Title:     title,
		Locked:    false,
		OwnerID:   &ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.Exec(`INSERT INTO boards (id, title, description, locked, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		board.ID, board.Title, board.Description, board.Locked, board.OwnerID,
		board.CreatedAt, board.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert board: %w", err)
	}

	return board, nil
}

// Get retrieves a board by id.
func (s *BoardService) Get(boardID string) (*Board, error) {
	row := s.db.QueryRow(`SELECT id, title, description, locked, owner_id, created_at, updated_at
		FROM boards WHERE id = ?`, boardID)

	var board Board
	err := row.Scan(&board.ID, &board.Title, &board.Description, &board.Locked,
		&board.OwnerID, &board.CreatedAt, &board.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Resource: "Board"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query board: %w", err)
	}

	return &board, nil
}

// ensureOwner verifies the acting user owns the board. A missing board and
// a board owned by someone else report the same error.
func (s *BoardService) ensureOwner(boardID, userID string) error {
	board, err := s.Get(boardID)
	if err != nil {
		return ErrUnauthorized
	}
	if board.OwnerID == nil || *board.OwnerID != userID {
		return ErrUnauthorized
	}
	return nil
}

// UpdateTitle renames a board. Owner-gated.
func (s *BoardService) UpdateTitle(boardID, userID, title string) error {
	if err := s.ensureOwner(boardID, userID); err != nil {
		return err
	}

	title, err := ValidateBoardTitle(title)
	if err != nil {
		return err
	}

	_, err = s.db.Exec("UPDATE boards SET title = ?, updated_at = ? WHERE id = ?",
		title, time.Now().UTC(), boardID)
	if err != nil {
		return fmt.Errorf("failed to update board: %w", err)
	}

	return nil
}

// SetLocked toggles the board lock. A locked board still reads normally but
// callers must refuse structural mutations. Owner-gated.
func (s *BoardService) SetLocked(boardID, userID string, locked bool) error {
	if err := s.ensureOwner(boardID, userID); err != nil {
		return err
	}

	_, err := s.db.Exec("UPDATE boards SET locked = ?, updated_at = ? WHERE id = ?",
		locked, time.Now().UTC(), boardID)
	if err != nil {
		return fmt.Errorf("failed to update board lock: %w", err)
	}

	return nil
}

// Delete removes a board with its columns and tasks. Owner-gated.
func (s *BoardService) Delete(boardID, userID string) error {
	if err := s.ensureOwner(boardID, userID); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks WHERE board_id = ?", boardID); err != nil {
		return fmt.Errorf("failed to delete board tasks: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM columns WHERE board_id = ?", boardID); err != nil {
		return fmt.Errorf("failed to delete board columns: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM boards WHERE id = ?", boardID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
