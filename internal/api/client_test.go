package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/credentials"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_ToggleLikeSendsBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.Method != http.MethodPost || r.URL.Path != "/api/posts/toggle-like/p1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"ok","updatedLikesCount":7}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, credentials.NewMemStore("tok-1"), discardLogger())
	res, err := c.ToggleLike(context.Background(), "p1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if res.UpdatedLikesCount == nil || *res.UpdatedLikesCount != 7 {
		t.Errorf("expected updatedLikesCount 7, got %+v", res.UpdatedLikesCount)
	}
}

func TestClient_ToggleLikeWithoutAuthoritativeCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, credentials.NewMemStore("tok-1"), discardLogger())
	res, err := c.ToggleLike(context.Background(), "p1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if res.UpdatedLikesCount != nil {
		t.Errorf("expected nil count, got %d", *res.UpdatedLikesCount)
	}
}

func TestClient_MissingTokenShortCircuits(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, credentials.NewMemStore(""), discardLogger())
	_, err := c.ToggleLike(context.Background(), "p1")
	if !errors.Is(err, credentials.ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	if called {
		t.Error("request was issued despite missing credential")
	}
}

func TestClient_ServerErrorMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"account suspended"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, credentials.NewMemStore("tok-1"), discardLogger())
	_, err := c.AddComment(context.Background(), "p1", "hello")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusForbidden || apiErr.Message != "account suspended" {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}

func TestClient_AddCommentDecodesConfirmedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products/comments/p1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"c99","text":"Nice work","authorName":"Asha","pending":false}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, credentials.NewMemStore("tok-1"), discardLogger())
	comment, err := c.AddComment(context.Background(), "p1", "Nice work")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if comment.ID != "c99" || comment.Pending {
		t.Errorf("unexpected comment: %+v", comment)
	}
}

func TestClient_FeedDecodesPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/feed" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id":"p1","likeCount":3,"likedByMe":true,"author":{"id":"d1","name":"Asha"}}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, credentials.NewMemStore("tok-1"), discardLogger())
	posts, err := c.Feed(context.Background())
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "p1" || posts[0].LikeCount != 3 {
		t.Errorf("unexpected posts: %+v", posts)
	}
}

func TestClient_LoginReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("login must not require a token")
		}
		w.Write([]byte(`{"token":"tok-9","displayName":"Asha"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, credentials.NewMemStore(""), discardLogger())
	res, err := c.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token != "tok-9" {
		t.Errorf("expected tok-9, got %q", res.Token)
	}
}
