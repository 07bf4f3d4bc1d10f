// Package optimistic applies like and comment mutations to the local post
// store before the backend confirms them, then reconciles with the server
// response or reverts on failure. It is the single implementation of this
// pattern; every surface showing posts goes through it.
package optimistic

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/api"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/appstate"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/credentials"
)

// ErrMutationInFlight is returned when a like-toggle is requested for a post
// that already has one outstanding. The new toggle is rejected, not queued.
var ErrMutationInFlight = errors.New("mutation already in flight for this post")

// optimisticAuthor labels comments not yet confirmed by the backend; the
// client does not hold the viewer's full display identity in this flow.
const optimisticAuthor = "You"

const (
	msgConnection = "Could not reach the server. Check your connection and try again."
	msgGeneric    = "Something went wrong. Please try again."
)

// Backend is the slice of the API client the coordinator needs.
type Backend interface {
	ToggleLike(ctx context.Context, postID string) (*api.ToggleLikeResult, error)
	AddComment(ctx context.Context, postID, text string) (*appstate.Comment, error)
}

// Notifier surfaces user-visible error messages. Implementations must not
// block; the coordinator calls it on the mutation path.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Coordinator runs optimistic mutations against the normalized post store.
type Coordinator struct {
	store    *appstate.Store
	backend  Backend
	tokens   credentials.Source
	notifier Notifier
	logger   *slog.Logger

	mu       sync.Mutex
	inflight map[string]bool
}

// NewCoordinator wires a coordinator over the given store and backend.
func NewCoordinator(store *appstate.Store, backend Backend, tokens credentials.Source, notifier Notifier, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		store:    store,
		backend:  backend,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger,
		inflight: make(map[string]bool),
	}
}

// ToggleLike flips the viewer's like on a post. The flipped flag and adjusted
// count become visible immediately; the backend response either confirms them
// (optionally overriding the count with the authoritative value) or the
// pre-toggle state is restored.
//
// One toggle per post may be outstanding at a time; concurrent calls for the
// same post are rejected with ErrMutationInFlight so rapid double-taps cannot
// drift the counter.
func (c *Coordinator) ToggleLike(ctx context.Context, postID string) error {
	if _, err := c.tokens.Token(ctx); err != nil {
		c.logger.Warn("toggle like skipped, no stored credential", "post_id", postID)
		return err
	}

	if !c.acquire(postID) {
		return ErrMutationInFlight
	}
	defer c.release(postID)

	prior, err := c.store.LikeSnapshot(postID)
	if err != nil {
		return err
	}

	nextLiked := !prior.Liked
	nextCount := prior.Count - 1
	if nextLiked {
		nextCount = prior.Count + 1
	}
	if nextCount < 0 {
		nextCount = 0
	}

	// Both fields change in one store update so no reader sees a torn frame.
	if err := c.store.SetLike(postID, nextLiked, nextCount); err != nil {
		return err
	}

	res, err := c.backend.ToggleLike(ctx, postID)
	if err != nil {
		if revertErr := c.store.SetLike(postID, prior.Liked, prior.Count); revertErr != nil {
			c.logger.Error("failed to revert like state", "post_id", postID, "err", revertErr)
		}
		c.logger.Warn("toggle like failed", "post_id", postID, "err", err)
		c.notifier.Notify(userMessage(err))
		return err
	}

	// The backend does not echo likedByMe; only the count is authoritative,
	// and only when present.
	if res.UpdatedLikesCount != nil {
		if err := c.store.SetLikeCount(postID, *res.UpdatedLikesCount); err != nil {
			return err
		}
	}
	return nil
}

// AddComment appends a pending comment to the post's thread, clears nothing
// on the caller's behalf, and reconciles once the backend answers: the
// pending entry is replaced in place on success or removed on failure,
// located by its correlation id regardless of what the UI shows by then.
//
// Whitespace-only text is a no-op: no state change, no network call.
func (c *Coordinator) AddComment(ctx context.Context, postID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if _, err := c.tokens.Token(ctx); err != nil {
		c.logger.Warn("add comment skipped, no stored credential", "post_id", postID)
		return err
	}

	pending := appstate.Comment{
		CorrelationID: uuid.New().String(),
		Text:          text,
		AuthorName:    optimisticAuthor,
		CreatedAt:     time.Now(),
		Pending:       true,
	}
	if err := c.store.AppendComment(postID, pending); err != nil {
		return err
	}

	confirmed, err := c.backend.AddComment(ctx, postID, text)
	if err != nil {
		if removeErr := c.store.RemoveComment(postID, pending.CorrelationID); removeErr != nil {
			c.logger.Error("failed to remove pending comment", "post_id", postID, "err", removeErr)
		}
		c.logger.Warn("add comment failed", "post_id", postID, "err", err)
		c.notifier.Notify(userMessage(err))
		return err
	}

	// A 2xx without the expected payload still counts as success; the
	// optimistic comment is kept and merely marked confirmed.
	if confirmed == nil || confirmed.ID == "" {
		local := pending
		local.Pending = false
		return c.store.ConfirmComment(postID, pending.CorrelationID, local)
	}
	return c.store.ConfirmComment(postID, pending.CorrelationID, *confirmed)
}

func (c *Coordinator) acquire(postID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[postID] {
		return false
	}
	c.inflight[postID] = true
	return true
}

func (c *Coordinator) release(postID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, postID)
}

// userMessage maps an error to the notification text shown to the user:
// the server's own message for rejected requests, a connectivity hint for
// transport failures.
func userMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return msgGeneric
	}
	return msgConnection
}
