package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ColumnService handles database operations for a board's columns.
type ColumnService struct {
	db *sql.DB
}

func NewColumnService(db *sql.DB) *ColumnService {
	return &ColumnService{db: db}
}

// Create appends a new column at the end of the board. The order value is
// computed and the row inserted inside one transaction so concurrent
// appends to other boards cannot interleave with this board's sequence.
func (s *ColumnService) Create(boardID, title, color string) (*Column, error) {
	title, colorValue, err := ValidateColumnInput(title, color)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists string
	err = tx.QueryRow("SELECT id FROM boards WHERE id = ?", boardID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Resource: "Board"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query board: %w", err)
	}

	order, err := nextColumnOrder(tx, boardID)
	if err != nil {
		return nil, err
	}

	column := &Column{
		ID:        uuid.NewString(),
		BoardID:   boardID,
		Title:     title,
		Order:     order,
		Color:     colorValue,
		CreatedAt: time.Now().UTC(),
	}

	_, err = tx.Exec(`INSERT INTO columns (id, board_id, title, "order", color, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		column.ID, column.BoardID, column.Title, column.Order, column.Color, column.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert column: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return column, nil
}

// Update renames and recolors a column. The order value is never touched.
func (s *ColumnService) Update(columnID, title, color string) error {
	title, colorValue, err := ValidateColumnInput(title, color)
	if err != nil {
		return err
	}

	result, err := s.db.Exec(`UPDATE columns SET title = ?, color = ? WHERE id = ?`,
		title, colorValue, columnID)
	if err != nil {
		return fmt.Errorf("failed to update column: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Resource: "Column"}
	}

	return nil
}

// Get retrieves a single column by id.
func (s *ColumnService) Get(columnID string) (*Column, error) {
	row := s.db.QueryRow(`SELECT id, board_id, title, "order", color, created_at
		FROM columns WHERE id = ?`, columnID)

	var column Column
	err := row.Scan(&column.ID, &column.BoardID, &column.Title, &column.Order,
		&column.Color, &column.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Resource: "Column"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query column: %w", err)
	}

	return &column, nil
}

// List returns the board's columns sorted by order. Equal orders fall back
// to creation order so display stays stable.
func (s *ColumnService) List(boardID string) ([]Column, error) {
	rows, err := s.db.Query(`SELECT id, board_id, title, "order", color, created_at
		FROM columns WHERE board_id = ? ORDER BY "order" ASC, created_at ASC`, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	columns := []Column{}
	for rows.Next() {
		var column Column
		if err := rows.Scan(&column.ID, &column.BoardID, &column.Title, &column.Order,
			&column.Color, &column.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, column)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	return columns, nil
}

// Delete removes a column and all of its tasks as one transaction.
func (s *ColumnService) Delete(columnID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks WHERE column_id = ?", columnID); err != nil {
		return fmt.Errorf("failed to delete column tasks: %w", err)
	}

	result, err := tx.Exec("DELETE FROM columns WHERE id = ?", columnID)
	if err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Resource: "Column"}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
