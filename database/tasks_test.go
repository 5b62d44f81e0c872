package database

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Create(t *testing.T) {
	tests := []struct {
		name         string
		input        TaskInput
		wantErr      bool
		wantField    string
		wantPriority string
		wantDesc     *string
	}{
		{
			name:         "defaults to medium priority",
			input:        TaskInput{Title: "Write spec"},
			wantPriority: PriorityMedium,
		},
		{
			name:         "keeps a known priority",
			input:        TaskInput{Title: "Fix bug", Priority: PriorityCritical},
			wantPriority: PriorityCritical,
		},
		{
			name:         "coerces unknown priority to medium",
			input:        TaskInput{Title: "Fix bug", Priority: "urgent"},
			wantPriority: PriorityMedium,
		},
		{
			name:         "stores trimmed description",
			input:        TaskInput{Title: "Fix bug", Description: "  details  "},
			wantPriority: PriorityMedium,
			wantDesc:     strPtr("details"),
		},
		{
			name:         "empty description stored as null",
			input:        TaskInput{Title: "Fix bug", Description: "   "},
			wantPriority: PriorityMedium,
		},
		{
			name:      "empty title",
			input:     TaskInput{Title: "  "},
			wantErr:   true,
			wantField: "title",
		},
		{
			name:      "title too long",
			input:     TaskInput{Title: strings.Repeat("x", 201)},
			wantErr:   true,
			wantField: "title",
		},
		{
			name:      "description too long",
			input:     TaskInput{Title: "ok", Description: strings.Repeat("x", 15001)},
			wantErr:   true,
			wantField: "description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			user := createTestUser(t, db, "owner@example.com")
			board := createTestBoard(t, db, user.ID, "Demo")
			column := createTestColumn(t, db, board.ID, "Todo")

			task, err := NewTaskService(db).Create(board.ID, column.ID, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tt.wantField, validationErr.Field)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, board.ID, task.BoardID)
			assert.Equal(t, column.ID, task.ColumnID)
			assert.Equal(t, tt.wantPriority, task.Priority)
			assert.Equal(t, tt.wantDesc, task.Description)
			assert.Equal(t, 0, task.Order)
		})
	}
}

func TestTaskService_Create_ColumnFromOtherBoardRejected(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	board := createTestBoard(t, db, user.ID, "Demo")
	other := createTestBoard(t, db, user.ID, "Other")
	otherColumn := createTestColumn(t, db, other.ID, "Elsewhere")

	_, err := NewTaskService(db).Create(board.ID, otherColumn.ID, TaskInput{Title: "Stray"})
	assert.ErrorIs(t, err, ErrNotFound)

	// Nothing was persisted.
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM tasks").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestTaskService_Create_AssignsDistinctAscendingOrders(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	board := createTestBoard(t, db, user.ID, "Demo")
	column := createTestColumn(t, db, board.ID, "Todo")
	service := NewTaskService(db)

	for i := 0; i < 5; i++ {
		task, err := service.Create(board.ID, column.ID, TaskInput{Title: "Task"})
		require.NoError(t, err)
		assert.Equal(t, i, task.Order)
	}

	tasks, err := service.List(column.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 5)

	seen := map[int]bool{}
	for _, task := range tasks {
		assert.False(t, seen[task.Order], "order value %d assigned twice", task.Order)
		seen[task.Order] = true
	}
}

func TestTaskService_Move(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	board := createTestBoard(t, db, user.ID, "Demo")
	todo := createTestColumn(t, db, board.ID, "Todo")
	doing := createTestColumn(t, db, board.ID, "Doing")
	service := NewTaskService(db)

	task := createTestTask(t, db, board.ID, todo.ID, "Write spec")
	createTestTask(t, db, board.ID, todo.ID, "Other work")
	createTestTask(t, db, board.ID, doing.ID, "In flight")

	require.NoError(t, service.Move(task.ID, doing.ID))

	todoTasks, err := service.List(todo.ID)
	require.NoError(t, err)
	doingTasks, err := service.List(doing.ID)
	require.NoError(t, err)

	// Total count is preserved and the task lives in exactly one column.
	assert.Len(t, todoTasks, 1)
	assert.Len(t, doingTasks, 2)
	for _, remaining := range todoTasks {
		assert.NotEqual(t, task.ID, remaining.ID)
	}

	moved, err := service.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, doing.ID, moved.ColumnID)
	// Appended after the target's existing tasks.
	assert.Equal(t, 1, moved.Order)
}

func TestTaskService_Move_SameColumnIsNoOp(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	board := createTestBoard(t, db, user.ID, "Demo")
	todo := createTestColumn(t, db, board.ID, "Todo")
	service := NewTaskService(db)

	createTestTask(t, db, board.ID, todo.ID, "First")
	task := createTestTask(t, db, board.ID, todo.ID, "Second")

	require.NoError(t, service.Move(task.ID, todo.ID))

	unchanged, err := service.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, unchanged.ColumnID)
	assert.Equal(t, task.Order, unchanged.Order)
}

func TestTaskService_Move_CrossBoardRejected(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	board := createTestBoard(t, db, user.ID, "Demo")
	todo := createTestColumn(t, db, board.ID, "Todo")
	other := createTestBoard(t, db, user.ID, "Other")
	foreign := createTestColumn(t, db, other.ID, "Foreign")
	service := NewTaskService(db)

	task := createTestTask(t, db, board.ID, todo.ID, "Stays put")

	err := service.Move(task.ID, foreign.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Target column not found")

	unchanged, err := service.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, unchanged.ColumnID)
	assert.Equal(t, task.Order, unchanged.Order)
}

func TestTaskService_Move_MissingTaskOrColumn(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	board := createTestBoard(t, db, user.ID, "Demo")
	todo := createTestColumn(t, db, board.ID, "Todo")
	service := NewTaskService(db)

	err := service.Move("missing-task", todo.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	task := createTestTask(t, db, board.ID, todo.ID, "Orphan target")
	err = service.Move(task.ID, "missing-column")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskService_Update(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	board := createTestBoard(t, db, user.ID, "Demo")
	todo := createTestColumn(t, db, board.ID, "Todo")
	service := NewTaskService(db)

	task := createTestTask(t, db, board.ID, todo.ID, "Before")
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, service.Update(task.ID, TaskInput{
		Title:       "After",
		Description: "now with details",
		Priority:    PriorityHigh,
		AssigneeID:  &user.ID,
	}))

	updated, err := service.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "now with details", *updated.Description)
	assert.Equal(t, PriorityHigh, updated.Priority)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, user.ID, *updated.AssigneeID)
	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt))
	// Editing never moves the task.
	assert.Equal(t, task.ColumnID, updated.ColumnID)
	assert.Equal(t, task.Order, updated.Order)
}

func TestTaskService_Update_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := NewTaskService(db).Update("missing-task", TaskInput{Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskService_Delete(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	board := createTestBoard(t, db, user.ID, "Demo")
	todo := createTestColumn(t, db, board.ID, "Todo")
	service := NewTaskService(db)

	task := createTestTask(t, db, board.ID, todo.ID, "Short lived")

	require.NoError(t, service.Delete(task.ID))

	_, err := service.Get(task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = service.Delete(task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
