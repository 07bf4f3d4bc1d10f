package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManager_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(NewMemStore())

	token, err := mgr.Create(ctx, "u1", "Asha", time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	sess, err := mgr.Get(ctx, token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess.UserID != "u1" || sess.DisplayName != "Asha" {
		t.Errorf("unexpected session: %+v", sess)
	}
}

func TestManager_UnknownToken(t *testing.T) {
	mgr := NewManager(NewMemStore())
	if _, err := mgr.Get(context.Background(), "nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(NewMemStore())

	token, err := mgr.Create(ctx, "u1", "Asha", -time.Minute)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := mgr.Get(ctx, token); err == nil {
		t.Error("expected error for expired session")
	}
}

func TestManager_Delete(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(NewMemStore())

	token, _ := mgr.Create(ctx, "u1", "Asha", time.Hour)
	if err := mgr.Delete(ctx, token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := mgr.Get(ctx, token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
}
