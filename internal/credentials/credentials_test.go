package credentials

import (
	"context"
	"errors"
	"testing"
)

func TestFileStore_SaveTokenClear(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())

	if _, err := store.Token(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken on empty store, got %v", err)
	}

	if err := store.Save(ctx, "tok-123"); err != nil {
		t.Fatalf("save: %v", err)
	}
	token, err := store.Token(ctx)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("expected tok-123, got %q", token)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Token(ctx); !errors.Is(err, ErrNoToken) {
		t.Errorf("expected ErrNoToken after clear, got %v", err)
	}
}

func TestFileStore_ClearIdempotent(t *testing.T) {
	store := NewFileStore(t.TempDir())
	if err := store.Clear(context.Background()); err != nil {
		t.Errorf("clear on empty store: %v", err)
	}
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore("seed")

	token, err := store.Token(ctx)
	if err != nil || token != "seed" {
		t.Fatalf("expected seed token, got %q err %v", token, err)
	}

	store.Clear(ctx)
	if _, err := store.Token(ctx); !errors.Is(err, ErrNoToken) {
		t.Errorf("expected ErrNoToken, got %v", err)
	}
}
