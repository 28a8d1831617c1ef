// Package service holds the business logic between the HTTP layer and the
// store. Every operation takes the caller's identity as an explicit parameter
// so the logic is testable without a live HTTP or auth stack.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"expense-tracker-backend/internal/models"
	"expense-tracker-backend/internal/store"
)

// ErrInvalidCredentials is returned on any login mismatch. It deliberately
// does not reveal whether the username exists or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles user registration and credential verification.
type AuthService struct {
	users store.UserStore
}

// NewAuthService creates a new AuthService instance
func NewAuthService(users store.UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates a user with a bcrypt-hashed password. Returns
// store.ErrUsernameTaken when the username is already registered.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the username/password pair against the credential store.
// Both an unknown username and a wrong password map to ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
