package services

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/todogether/todogether/database"
)

const tokenLifetime = time.Hour * 24 * 7

// AuthService issues and verifies session tokens and handles credential
// sign-up and sign-in.
type AuthService struct {
	users     *database.UserService
	jwtSecret []byte
}

func NewAuthService(users *database.UserService) *AuthService {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-default-secret-key-change-in-production"
	}

	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
	}
}

// SignUp registers a new account. The email is lowercased; duplicates are
// rejected on the email field.
func (s *AuthService) SignUp(email, password, name string) (*database.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, &database.ValidationError{Field: "email", Message: "invalid email address"}
	}
	if len(password) < 8 {
		return nil, &database.ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var namePtr *string
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		namePtr = &trimmed
	}

	return s.users.Create(email, namePtr, string(hashed))
}

// SignIn checks credentials and returns the user with a fresh JWT. Bad
// email and bad password report the same error.
func (s *AuthService) SignIn(email, password string) (*database.User, string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, "", &database.ValidationError{Field: "email", Message: "invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", &database.ValidationError{Field: "email", Message: "invalid credentials"}
	}

	token, err := s.CreateJWT(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// CreateJWT generates a signed token carrying the user identity.
func (s *AuthService) CreateJWT(userID, email string) (string, error) {
	// Create token with claims
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	})

	// Sign the token
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// VerifyJWT verifies a token and returns the user id and email.
func (s *AuthService) VerifyJWT(tokenString string) (string, string, error) {
	// Parse the token
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to parse token: %w", err)
	}

	// Check if token is valid
	if !token.Valid {
		return "", "", errors.New("invalid token")
	}

	// Extract claims
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", "", errors.New("user_id claim missing")
	}

	email, ok := claims["email"].(string)
	if !ok {
		return "", "", errors.New("email claim missing")
	}

	return userID, email, nil
}
