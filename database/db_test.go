package database

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

// Test helpers

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := OpenDB(fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, email string) *User {
	t.Helper()
	user, err := NewUserService(db).Create(email, nil, "hashed-password")
	require.NoError(t, err)
	return user
}

func createTestBoard(t *testing.T, db *sql.DB, ownerID, title string) *Board {
	t.Helper()
	board, err := NewBoardService(db).Create(ownerID, title)
	require.NoError(t, err)
	return board
}

func createTestColumn(t *testing.T, db *sql.DB, boardID, title string) *Column {
	t.Helper()
	column, err := NewColumnService(db).Create(boardID, title, "")
	require.NoError(t, err)
	return column
}

func createTestTask(t *testing.T, db *sql.DB, boardID, columnID, title string) *Task {
	t.Helper()
	task, err := NewTaskService(db).Create(boardID, columnID, TaskInput{Title: title})
	require.NoError(t, err)
	return task
}
