package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/todogether/todogether/database"
	"github.com/todogether/todogether/guest"
)

// GuestHandler serves the local replica board for unauthenticated use. The
// endpoints mirror the account-backed surface but run against the guest
// store; the two data sets never mix.
type GuestHandler struct {
	store *guest.Store
}

func NewGuestHandler(store *guest.Store) *GuestHandler {
	return &GuestHandler{store: store}
}

// requireUnlocked rejects structural mutations while the guest board is
// locked. Same caller-side gate as the account-backed handlers.
func (h *GuestHandler) requireUnlocked(w http.ResponseWriter) bool {
	if h.store.Board().Locked {
		respondError(w, http.StatusConflict, "board is locked", "")
		return false
	}
	return true
}

// GetBoard returns the guest board snapshot.
func (h *GuestHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board := h.store.Board()
	respondSuccess(w, board)
}

// UpdateBoard renames the guest board and/or toggles its lock.
func (h *GuestHandler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title  *string `json:"title"`
		Locked *bool   `json:"locked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request format", "")
		return
	}

	if err := h.store.UpdateBoard(req.Title, req.Locked); err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, nil)
}

// ResetBoard discards the guest board and starts fresh.
func (h *GuestHandler) ResetBoard(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Reset(); err != nil {
		respondStoreError(w, err)
		return
	}
	respondSuccess(w, nil)
}

// CreateColumn appends a column to the guest board.
func (h *GuestHandler) CreateColumn(w http.ResponseWriter, r *http.Request) {
	if !h.requireUnlocked(w) {
		return
	}

	var req columnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request format", "")
		return
	}

	column, err := h.store.CreateColumn(req.Title, req.Color)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, column)
}

// UpdateColumn renames and recolors a guest column.
func (h *GuestHandler) UpdateColumn(w http.ResponseWriter, r *http.Request) {
	if !h.requireUnlocked(w) {
		return
	}
	columnID := mux.Vars(r)["columnId"]

	var req columnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request format", "")
		return
	}

	if err := h.store.UpdateColumn(columnID, req.Title, req.Color); err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, nil)
}

// DeleteColumn removes a guest column and its tasks.
func (h *GuestHandler) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	if !h.requireUnlocked(w) {
		return
	}
	columnID := mux.Vars(r)["columnId"]

	if err := h.store.DeleteColumn(columnID); err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, nil)
}

// CreateTask appends a task to a guest column.
func (h *GuestHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	if !h.requireUnlocked(w) {
		return
	}
	columnID := mux.Vars(r)["columnId"]

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request format", "")
		return
	}

	task, err := h.store.CreateTask(columnID, database.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, task)
}

// UpdateTask edits a guest task.
func (h *GuestHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	if !h.requireUnlocked(w) {
		return
	}
	taskID := mux.Vars(r)["taskId"]

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request format", "")
		return
	}

	if err := h.store.UpdateTask(taskID, database.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	}); err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, nil)
}

// DeleteTask removes a guest task.
func (h *GuestHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if !h.requireUnlocked(w) {
		return
	}
	taskID := mux.Vars(r)["taskId"]

	if err := h.store.DeleteTask(taskID); err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, nil)
}

// MoveTask reparents a guest task to another column.
func (h *GuestHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	if !h.requireUnlocked(w) {
		return
	}
	taskID := mux.Vars(r)["taskId"]

	var req struct {
		TargetColumnID string `json:"targetColumnId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request format", "")
		return
	}

	if err := h.store.MoveTask(taskID, req.TargetColumnID); err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, nil)
}
