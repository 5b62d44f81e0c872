package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/todogether/todogether/database"
)

// respondSuccess writes the success envelope.
func respondSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "success",
		"data":   data,
	})
}

// respondError writes the error envelope, including the offending field
// when there is one.
func respondError(w http.ResponseWriter, status int, message, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{
		"status": "error",
		"error":  message,
	}
	if field != "" {
		body["field"] = field
	}
	json.NewEncoder(w).Encode(body)
}

// respondStoreError converts a store error into the error envelope. Nothing
// from the store layer escapes as a raw failure.
func respondStoreError(w http.ResponseWriter, err error) {
	var validationErr *database.ValidationError
	if errors.As(err, &validationErr) {
		respondError(w, http.StatusBadRequest, validationErr.Message, validationErr.Field)
		return
	}
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, err.Error(), "")
		return
	}
	if errors.Is(err, database.ErrUnauthorized) {
		respondError(w, http.StatusForbidden, "unauthorized", "")
		return
	}
	log.Printf("Unexpected store error: %v", err)
	respondError(w, http.StatusInternalServerError, "server error", "")
}

// requireUnlocked loads the board and rejects the request when the board is
// locked. Lock enforcement lives here, not in the stores: a mutation on a
// locked board is refused before any state change.
func requireUnlocked(w http.ResponseWriter, boards *database.BoardService, boardID string) bool {
	board, err := boards.Get(boardID)
	if err != nil {
		respondStoreError(w, err)
		return false
	}
	if board.Locked {
		respondError(w, http.StatusConflict, "board is locked", "")
		return false
	}
	return true
}
