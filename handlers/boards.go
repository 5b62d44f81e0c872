package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/todogether/todogether/database"
)

// BoardHandler handles board-level endpoints.
type BoardHandler struct {
	boardService *database.BoardService
}

func NewBoardHandler(boardService *database.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// List returns the acting user's boards, creating a first board when they
// have none yet.
func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not found", "")
		return
	}

	if err := h.boardService.EnsureDefault(userID); err != nil {
		respondStoreError(w, err)
		return
	}

	boards, err := h.boardService.ListForOwner(userID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, boards)
}

// Create creates a board owned by the acting user.
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not found", "")
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request format", "")
		return
	}

	board, err := h.boardService.Create(userID, req.Title)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, board)
}

// Get returns a full board snapshot: columns in order, each with its tasks
// in order. Reads work on locked boards too.
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	boardID := mux.Vars(r)["boardId"]

	snapshot, err := h.boardService.Snapshot(boardID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, snapshot)
}

// Update renames a board and/or toggles its lock. Owner-gated.
func (h *BoardHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not found", "")
		return
	}
	boardID := mux.Vars(r)["boardId"]

	var req struct {
		Title  *string `json:"title"`
		Locked *bool   `json:"locked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request format", "")
		return
	}

	if req.Title != nil {
		if err := h.boardService.UpdateTitle(boardID, userID, *req.Title); err != nil {
			respondStoreError(w, err)
			return
		}
	}
	if req.Locked != nil {
		if err := h.boardService.SetLocked(boardID, userID, *req.Locked); err != nil {
			respondStoreError(w, err)
			return
		}
	}

	respondSuccess(w, nil)
}

// Delete removes a board with everything in it. Owner-gated.
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not found", "")
		return
	}
	boardID := mux.Vars(r)["boardId"]

	if err := h.boardService.Delete(boardID, userID); err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, nil)
}
