// Package auth implements password login and bearer-token authentication
// for the backend API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/database"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/session"
)

// SessionTTL is how long an issued token stays valid.
const SessionTTL = 30 * 24 * time.Hour

var (
	// ErrInvalidCredentials is returned when email or password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service defines the authentication operations.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

type service struct {
	db       database.Service
	sessions session.Manager
}

// NewService creates the auth service.
func NewService(db database.Service, sessions session.Manager) Service {
	return &service{db: db, sessions: sessions}
}

// Login verifies the password and issues a bearer token.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	const q = `
		SELECT user_id, email, display_name, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	var u User
	err := s.db.QueryRow(ctx, q, email).
		Scan(&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, u.ID, u.DisplayName, SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &LoginResponse{Token: token, DisplayName: u.DisplayName}, nil
}

// Logout revokes the token.
func (s *service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}
