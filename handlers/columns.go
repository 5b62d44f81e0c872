package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/todogether/todogether/database"
)

// ColumnHandler handles column endpoints.
type ColumnHandler struct {
	columnService *database.ColumnService
	boardService  *database.BoardService
}

func NewColumnHandler(columnService *database.ColumnService, boardService *database.BoardService) *ColumnHandler {
	return &ColumnHandler{
		columnService: columnService,
		boardService:  boardService,
	}
}

type columnRequest struct {
	Title string `json:"title"`
	Color string `json:"color"`
}

// List returns the board's columns in display order.
func (h *ColumnHandler) List(w http.ResponseWriter, r *http.Request) {
	boardID := mux.Vars(r)["boardId"]

	if _, err := h.boardService.Get(boardID); err != nil {
		respondStoreError(w, err)
		return
	}

	columns, err := h.columnService.List(boardID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, columns)
}

// Create appends a column to the board.
func (h *ColumnHandler) Create(w http.ResponseWriter, r *http.Request) {
	boardID := mux.Vars(r)["boardId"]

	if !requireUnlocked(w, h.boardService, boardID) {
		return
	}

	var req columnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request format", "")
		return
	}

	column, err := h.columnService.Create(boardID, req.Title, req.Color)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, column)
}

// Update renames and recolors a column.
func (h *ColumnHandler) Update(w http.ResponseWriter, r *http.Request) {
	columnID := mux.Vars(r)["columnId"]

	column, err := h.columnService.Get(columnID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !requireUnlocked(w, h.boardService, column.BoardID) {
		return
	}

	var req columnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request format", "")
		return
	}

	if err := h.columnService.Update(columnID, req.Title, req.Color); err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, nil)
}

// Delete removes a column and its tasks.
func (h *ColumnHandler) Delete(w http.ResponseWriter, r *http.Request) {
	columnID := mux.Vars(r)["columnId"]

	column, err := h.columnService.Get(columnID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !requireUnlocked(w, h.boardService, column.BoardID) {
		return
	}

	if err := h.columnService.Delete(columnID); err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, nil)
}
