// Package api implements the HTTP client for the Designer Lock backend.
// Every authenticated call reads the bearer token from the credential store;
// if no token is stored the call is short-circuited before any request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/appstate"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/credentials"
)

const defaultTimeout = 15 * time.Second

// APIError carries a non-2xx response. Message is the server-provided error
// text when the body had one, empty otherwise.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
}

// ToggleLikeResult is the toggle-like response. UpdatedLikesCount is the
// authoritative counter when the backend includes it; older backends omit it
// and the client keeps its optimistic value.
type ToggleLikeResult struct {
	Message           string `json:"message"`
	Liked             *bool  `json:"liked,omitempty"`
	UpdatedLikesCount *int   `json:"updatedLikesCount,omitempty"`
}

// LoginResult is the login response.
type LoginResult struct {
	Token       string `json:"token"`
	DisplayName string `json:"displayName"`
}

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  credentials.Source
	logger  *slog.Logger
}

// NewClient creates an API client for the given base URL.
func NewClient(baseURL string, tokens credentials.Source, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// ToggleLike flips the caller's like on a post.
func (c *Client) ToggleLike(ctx context.Context, postID string) (*ToggleLikeResult, error) {
	var out ToggleLikeResult
	err := c.do(ctx, http.MethodPost, "/api/posts/toggle-like/"+postID, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AddComment submits a comment and returns the confirmed payload.
func (c *Client) AddComment(ctx context.Context, postID, text string) (*appstate.Comment, error) {
	body := map[string]string{"text": text}
	var out appstate.Comment
	if err := c.do(ctx, http.MethodPost, "/api/products/comments/"+postID, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Feed fetches the viewer's feed.
func (c *Client) Feed(ctx context.Context) ([]appstate.Post, error) {
	var out []appstate.Post
	if err := c.do(ctx, http.MethodGet, "/api/feed", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DesignerWorks fetches one designer's published posts.
func (c *Client) DesignerWorks(ctx context.Context, designerID string) ([]appstate.Post, error) {
	var out []appstate.Post
	if err := c.do(ctx, http.MethodGet, "/api/designers/works/"+designerID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Login exchanges credentials for a bearer token. It is the one call that
// does not require a stored token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal login body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out LoginResult
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do issues an authenticated request. A missing token aborts with
// credentials.ErrNoToken and a logged warning; no request goes out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.logger.Warn("skipping request, no stored credential", "method", method, "path", path)
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &payload); err == nil {
			if payload.Error != "" {
				apiErr.Message = payload.Error
			} else {
				apiErr.Message = payload.Message
			}
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	// A 2xx with an undecodable body still counts as success; the caller
	// keeps whatever optimistic state it already applied.
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("ignoring undecodable response body", "path", req.URL.Path, "err", err)
	}
	return nil
}
