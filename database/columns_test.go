package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnService_Create(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		color     string
		wantErr   bool
		wantField string
		wantColor *string
	}{
		{
			name:  "valid title without color",
			title: "Todo",
		},
		{
			name:      "valid title with color",
			title:     "Done",
			color:     "#10b981",
			wantColor: strPtr("#10b981"),
		},
		{
			name:      "empty title",
			title:     "",
			wantErr:   true,
			wantField: "title",
		},
		{
			name:      "whitespace-only title",
			title:     "   ",
			wantErr:   true,
			wantField: "title",
		},
		{
			name:      "title too long",
			title:     strings.Repeat("x", 101),
			wantErr:   true,
			wantField: "title",
		},
		{
			name:      "bad color",
			title:     "Todo",
			color:     "#zzzzzz",
			wantErr:   true,
			wantField: "color",
		},
		{
			name:      "color missing hash prefix",
			title:     "Todo",
			color:     "10b981",
			wantErr:   true,
			wantField: "color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			user := createTestUser(t, db, "owner@example.com")
			board := createTestBoard(t, db, user.ID, "Demo")

			column, err := NewColumnService(db).Create(board.ID, tt.title, tt.color)
			if tt.wantErr {
				require.Error(t, err)
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tt.wantField, validationErr.Field)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, board.ID, column.BoardID)
			assert.Equal(t, tt.title, column.Title)
			assert.Equal(t, 0, column.Order)
			assert.Equal(t, tt.wantColor, column.Color)
		})
	}
}

func TestColumnService_Create_BoardNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := NewColumnService(db).Create("missing-board", "Todo", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestColumnService_Create_AssignsDistinctAscendingOrders(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	board := createTestBoard(t, db, user.ID, "Demo")
	service := NewColumnService(db)

	titles := []string{"Todo", "Doing", "Review", "Done"}
	for i, title := range titles {
		column, err := service.Create(board.ID, title, "")
		require.NoError(t, err)
		assert.Equal(t, i, column.Order)
	}

	columns, err := service.List(board.ID)
	require.NoError(t, err)
	require.Len(t, columns, len(titles))

	seen := map[int]bool{}
	for i, column := range columns {
		assert.Equal(t, titles[i], column.Title)
		assert.False(t, seen[column.Order], "order value %d assigned twice", column.Order)
		seen[column.Order] = true
	}
}

func TestColumnService_Update(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	board := createTestBoard(t, db, user.ID, "Demo")
	service := NewColumnService(db)

	createTestColumn(t, db, board.ID, "First")
	column, err := service.Create(board.ID, "Second", "#ff0000")
	require.NoError(t, err)

	require.NoError(t, service.Update(column.ID, "Renamed", "#00ff00"))

	updated, err := service.Get(column.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	require.NotNil(t, updated.Color)
	assert.Equal(t, "#00ff00", *updated.Color)
	// Renaming never moves the column.
	assert.Equal(t, column.Order, updated.Order)

	// Clearing the color stores null.
	require.NoError(t, service.Update(column.ID, "Renamed", ""))
	updated, err = service.Get(column.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.Color)
}

func TestColumnService_Update_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := NewColumnService(db).Update("missing-column", "Title", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestColumnService_Delete_CascadesTasks(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	board := createTestBoard(t, db, user.ID, "Demo")
	todo := createTestColumn(t, db, board.ID, "Todo")
	done := createTestColumn(t, db, board.ID, "Done")

	createTestTask(t, db, board.ID, todo.ID, "A")
	createTestTask(t, db, board.ID, todo.ID, "B")
	keeper := createTestTask(t, db, board.ID, done.ID, "C")

	columnService := NewColumnService(db)
	require.NoError(t, columnService.Delete(todo.ID))

	var taskCount int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM tasks").Scan(&taskCount))
	assert.Equal(t, 1, taskCount)

	remaining, err := NewTaskService(db).Get(keeper.ID)
	require.NoError(t, err)
	assert.Equal(t, done.ID, remaining.ColumnID)

	columns, err := columnService.List(board.ID)
	require.NoError(t, err)
	require.Len(t, columns, 1)
	assert.Equal(t, "Done", columns[0].Title)
}

func TestColumnService_Delete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := NewColumnService(db).Delete("missing-column")
	assert.ErrorIs(t, err, ErrNotFound)
}

func strPtr(s string) *string { return &s }
