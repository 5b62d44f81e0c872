package database

import (
	"database/sql"
	"fmt"
)

// Snapshot assembles the board with its columns in display order and each
// column's tasks in display order. Reads are point-in-time: each mutation
// commits as a single update, so a snapshot may reflect a committed
// in-flight change but never a partially applied one.
func (s *BoardService) Snapshot(boardID string) (*BoardSnapshot, error) {
	board, err := s.Get(boardID)
	if err != nil {
		return nil, err
	}

	snapshot := &BoardSnapshot{
		ID:          board.ID,
		Title:       board.Title,
		Description: board.Description,
		Locked:      board.Locked,
		Columns:     []ColumnSnapshot{},
	}

	columnRows, err := s.db.Query(`SELECT id, title, "order", color FROM columns
		WHERE board_id = ? ORDER BY "order" ASC, created_at ASC`, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer columnRows.Close()

	columnIndex := map[string]int{}
	for columnRows.Next() {
		var column ColumnSnapshot
		if err := columnRows.Scan(&column.ID, &column.Title, &column.Order, &column.Color); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		column.Tasks = []TaskSnapshot{}
		columnIndex[column.ID] = len(snapshot.Columns)
		snapshot.Columns = append(snapshot.Columns, column)
	}
	if err := columnRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	taskRows, err := s.db.Query(`SELECT t.id, t.column_id, t.title, t.description, t.priority, t."order",
			t.assignee_id, u.name, t.created_at, t.updated_at
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assignee_id
		WHERE t.board_id = ?
		ORDER BY t."order" ASC, t.created_at ASC`, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer taskRows.Close()

	for taskRows.Next() {
		var task TaskSnapshot
		var assigneeName sql.NullString
		if err := taskRows.Scan(&task.ID, &task.ColumnID, &task.Title, &task.Description,
			&task.Priority, &task.Order, &task.AssigneeID, &assigneeName,
			&task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		task.Author = assigneeName.String

		i, ok := columnIndex[task.ColumnID]
		if !ok {
			continue
		}
		snapshot.Columns[i].Tasks = append(snapshot.Columns[i].Tasks, task)
	}
	if err := taskRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	return snapshot, nil
}
