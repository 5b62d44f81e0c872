package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/todogether/todogether/database"
)

// TaskHandler handles task endpoints, including the cross-column move.
type TaskHandler struct {
	taskService  *database.TaskService
	boardService *database.BoardService
}

func NewTaskHandler(taskService *database.TaskService, boardService *database.BoardService) *TaskHandler {
	return &TaskHandler{
		taskService:  taskService,
		boardService: boardService,
	}
}

type taskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	AssigneeID  *string `json:"assigneeId"`
}

// Create appends a task to a column. The acting user, when authenticated,
// becomes the assignee.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	boardID := vars["boardId"]
	columnID := vars["columnId"]

	if !requireUnlocked(w, h.boardService, boardID) {
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request format", "")
		return
	}

	input := database.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	}
	if userID, ok := actingUserID(r); ok {
		input.AssigneeID = &userID
	}

	task, err := h.taskService.Create(boardID, columnID, input)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, task)
}

// Update edits a task's fields; its column and position stay put.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]

	task, err := h.taskService.Get(taskID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !requireUnlocked(w, h.boardService, task.BoardID) {
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request format", "")
		return
	}

	input := database.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
	}
	if err := h.taskService.Update(taskID, input); err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, nil)
}

// Delete removes a task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]

	task, err := h.taskService.Get(taskID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !requireUnlocked(w, h.boardService, task.BoardID) {
		return
	}

	if err := h.taskService.Delete(taskID); err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, nil)
}

// Move reparents a task to another column of the same board.
func (h *TaskHandler) Move(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]

	task, err := h.taskService.Get(taskID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if !requireUnlocked(w, h.boardService, task.BoardID) {
		return
	}

	var req struct {
		TargetColumnID string `json:"targetColumnId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request format", "")
		return
	}

	if err := h.taskService.Move(taskID, req.TargetColumnID); err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, nil)
}
