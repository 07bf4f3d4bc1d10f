// Package session manages the opaque bearer tokens the backend issues at
// login. Tokens live in the store with a TTL; the auth middleware validates
// every request against it.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned when no session matches the token.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrInvalidSession is returned when stored session data is corrupt.
	ErrInvalidSession = errors.New("invalid session")
)

// Manager issues and validates bearer tokens.
type Manager interface {
	Create(ctx context.Context, userID, displayName string, ttl time.Duration) (string, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

type manager struct {
	store Store
}

// NewManager creates a session manager over the given store.
func NewManager(store Store) Manager {
	return &manager{store: store}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Create issues a new opaque token for the user and stores the session
// record with the given TTL.
func (m *manager) Create(ctx context.Context, userID, displayName string, ttl time.Duration) (string, error) {
	token := uuid.New().String()

	now := time.Now()
	sess := &Session{
		Token:       token,
		UserID:      userID,
		DisplayName: displayName,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := m.store.Set(ctx, sessionKey(token), string(data), ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get resolves a token to its session, deleting it when expired.
func (m *manager) Get(ctx context.Context, token string) (*Session, error) {
	data, err := m.store.Get(ctx, sessionKey(token))
	if err != nil {
		return nil, ErrSessionNotFound
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, ErrInvalidSession
	}
	if time.Now().After(sess.ExpiresAt) {
		m.store.Delete(ctx, sessionKey(token))
		return nil, ErrSessionExpired
	}
	return &sess, nil
}

// Delete revokes a token.
func (m *manager) Delete(ctx context.Context, token string) error {
	return m.store.Delete(ctx, sessionKey(token))
}
