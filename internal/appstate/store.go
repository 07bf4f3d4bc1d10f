// Package appstate holds the client's normalized post state. Every surface
// (feed, profile grid, detail view) reads through the same store, so a
// mutation applied once is visible everywhere; no screen keeps its own copy.
package appstate

import (
	"errors"
	"sort"
	"sync"
)

// ErrPostNotFound is returned when a post id is not loaded in the store.
var ErrPostNotFound = errors.New("post not found in store")

// Store is the single authoritative mapping from post id to Post.
// All getters return deep copies; callers never hold aliases into the store.
type Store struct {
	mu    sync.RWMutex
	posts map[string]*Post
}

// NewStore creates an empty post store.
func NewStore() *Store {
	return &Store{posts: make(map[string]*Post)}
}

// Put inserts or replaces a post.
func (s *Store) Put(post Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.ID] = post.clone()
}

// PutAll replaces the stored copy of every post in the slice. Used when a
// feed or profile fetch lands.
func (s *Store) PutAll(posts []Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range posts {
		s.posts[posts[i].ID] = posts[i].clone()
	}
}

// Get returns a copy of the post with the given id.
func (s *Store) Get(postID string) (Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[postID]
	if !ok {
		return Post{}, ErrPostNotFound
	}
	return *p.clone(), nil
}

// List returns copies of all posts, newest first.
func (s *Store) List() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, *p.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Len reports the number of loaded posts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// LikeSnapshot reads the like fields of a post as one consistent pair.
func (s *Store) LikeSnapshot(postID string) (LikeState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[postID]
	if !ok {
		return LikeState{}, ErrPostNotFound
	}
	return LikeState{Liked: p.LikedByMe, Count: p.LikeCount}, nil
}

// SetLike updates likedByMe and likeCount in a single critical section so no
// reader ever observes one field changed without the other. The count is
// floored at zero.
func (s *Store) SetLike(postID string, liked bool, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return ErrPostNotFound
	}
	if count < 0 {
		count = 0
	}
	p.LikedByMe = liked
	p.LikeCount = count
	return nil
}

// SetLikeCount overwrites only the counter, keeping likedByMe as-is. Used
// when the backend returns an authoritative count.
func (s *Store) SetLikeCount(postID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return ErrPostNotFound
	}
	if count < 0 {
		count = 0
	}
	p.LikeCount = count
	return nil
}

// AppendComment appends a comment to the end of the post's thread.
func (s *Store) AppendComment(postID string, c Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return ErrPostNotFound
	}
	p.Comments = append(p.Comments, c)
	return nil
}

// ConfirmComment replaces the pending comment carrying correlationID with the
// confirmed one, in place. Position in the thread is preserved; the thread
// never grows or shrinks here.
func (s *Store) ConfirmComment(postID, correlationID string, confirmed Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return ErrPostNotFound
	}
	for i := range p.Comments {
		if p.Comments[i].CorrelationID == correlationID {
			confirmed.CorrelationID = correlationID
			confirmed.Pending = false
			p.Comments[i] = confirmed
			return nil
		}
	}
	return ErrCommentNotFound
}

// RemoveComment deletes the pending comment carrying correlationID, closing
// out a failed optimistic insert. Order of the remaining comments is kept.
func (s *Store) RemoveComment(postID, correlationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return ErrPostNotFound
	}
	for i := range p.Comments {
		if p.Comments[i].CorrelationID == correlationID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return nil
		}
	}
	return ErrCommentNotFound
}

// ErrCommentNotFound is returned when no comment matches the correlation id.
var ErrCommentNotFound = errors.New("comment not found in store")
