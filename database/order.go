package database

import (
	"database/sql"
	"fmt"
)

// NextOrder returns the order value for an item appended to a scope (a
// board's columns, or a column's tasks). The result is strictly greater
// than every existing value, so appends never collide. Orders are never
// renumbered or compacted; values may grow sparse but ordering holds.
func NextOrder(existing []int) int {
	next := 0
	for _, o := range existing {
		if o >= next {
			next = o + 1
		}
	}
	return next
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// nextColumnOrder computes the append position for a new column without
// loading the whole sequence.
func nextColumnOrder(q querier, boardID string) (int, error) {
	var next int
	row := q.QueryRow(`SELECT COALESCE(MAX("order"), -1) + 1 FROM columns WHERE board_id = ?`, boardID)
	if err := row.Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to compute column order: %w", err)
	}
	return next, nil
}

// nextTaskOrder computes the append position for a task in a column.
func nextTaskOrder(q querier, columnID string) (int, error) {
	var next int
	row := q.QueryRow(`SELECT COALESCE(MAX("order"), -1) + 1 FROM tasks WHERE column_id = ?`, columnID)
	if err := row.Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to compute task order: %w", err)
	}
	return next, nil
}
