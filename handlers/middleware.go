package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/todogether/todogether/services"
)

type contextKey string

const (
	userIDContextKey contextKey = "userID"
	emailContextKey  contextKey = "email"
)

type AuthMiddleware struct {
	authService *services.AuthService
}

func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Auth requires a valid bearer token and stores the identity on the
// request context.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, email, err := m.identity(r)
		if err != nil {
			respondError(w, http.StatusUnauthorized, err.Error(), "")
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		ctx = context.WithValue(ctx, emailContextKey, email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth stores the identity when a valid token is present and lets
// the request through either way. Used where an acting user enriches the
// operation (task assignee) but guests are allowed.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			if userID, email, err := m.identity(r); err == nil {
				ctx := context.WithValue(r.Context(), userIDContextKey, userID)
				ctx = context.WithValue(ctx, emailContextKey, email)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

type authError string

func (e authError) Error() string { return string(e) }

func (m *AuthMiddleware) identity(r *http.Request) (string, string, error) {
	// Get token from Authorization header
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", "", authError("missing authorization header")
	}

	// Extract token from Bearer format
	authParts := strings.Split(authHeader, " ")
	if len(authParts) != 2 || authParts[0] != "Bearer" {
		return "", "", authError("invalid authorization format")
	}

	userID, email, err := m.authService.VerifyJWT(authParts[1])
	if err != nil {
		return "", "", authError("invalid token")
	}

	return userID, email, nil
}

// actingUserID returns the authenticated user id on the context, if any.
func actingUserID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(userIDContextKey).(string)
	return userID, ok && userID != ""
}
