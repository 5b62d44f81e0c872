package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/todogether/todogether/database"
	"github.com/todogether/todogether/services"
)

// AuthHandler handles authentication-related endpoints
type AuthHandler struct {
	authService *services.AuthService
	userService *database.UserService
}

func NewAuthHandler(authService *services.AuthService, userService *database.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

type userPayload struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

func toUserPayload(user *database.User) userPayload {
	return userPayload{ID: user.ID, Email: user.Email, Name: user.Name}
}

// Signup registers a new account and returns a session token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request format", "")
		return
	}

	user, err := h.authService.SignUp(req.Email, req.Password, req.Name)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	token, err := h.authService.CreateJWT(user.ID, user.Email)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, map[string]any{
		"token": token,
		"user":  toUserPayload(user),
	})
}

// Login checks credentials and returns a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request format", "")
		return
	}

	user, token, err := h.authService.SignIn(req.Email, req.Password)
	if err != nil {
		var validationErr *database.ValidationError
		if errors.As(err, &validationErr) {
			respondError(w, http.StatusUnauthorized, validationErr.Message, "")
			return
		}
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, map[string]any{
		"token": token,
		"user":  toUserPayload(user),
	})
}

// VerifyToken checks if a token is valid and returns the identity.
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not found", "")
		return
	}

	user, err := h.userService.Get(userID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, toUserPayload(user))
}

// ListUsers returns all users for assignee selection.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List()
	if err != nil {
		respondStoreError(w, err)
		return
	}

	payload := make([]userPayload, len(users))
	for i := range users {
		payload[i] = toUserPayload(&users[i])
	}
	respondSuccess(w, payload)
}
