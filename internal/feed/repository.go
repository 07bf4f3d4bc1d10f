package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/database"
)

var (
	// ErrPostNotFound is returned when the post id does not exist.
	ErrPostNotFound = errors.New("post not found")
	// ErrInvalidInput is returned for empty ids or bodies.
	ErrInvalidInput = errors.New("invalid input")
)

// postRow is a feed row before comments are attached.
type postRow struct {
	Post
	AuthorName string
	LikeCount  int
	LikedByMe  bool
}

// commentRow is a comment joined with its author's display name.
type commentRow struct {
	Comment
	AuthorName string
}

// Repository handles all database operations for the feed.
type Repository struct {
	db database.Service
}

// NewRepository creates a feed repository.
func NewRepository(db database.Service) *Repository {
	return &Repository{db: db}
}

const postSelect = `
	SELECT p.post_id, p.designer_id, u.display_name, p.caption, p.media_keys, p.created_at,
	       COUNT(DISTINCT l.user_id) AS like_count,
	       BOOL_OR(l.user_id = $1) IS TRUE AS liked_by_me
	FROM posts p
	JOIN users u ON u.user_id = p.designer_id
	LEFT JOIN likes l ON l.post_id = p.post_id
`

// ListFeed returns all posts newest first, with counters computed for the
// viewer.
func (r *Repository) ListFeed(ctx context.Context, viewerID string) ([]postRow, error) {
	q := postSelect + `
		GROUP BY p.post_id, u.display_name
		ORDER BY p.created_at DESC
	`
	return r.queryPosts(ctx, q, viewerID)
}

// ListByDesigner returns one designer's posts newest first.
func (r *Repository) ListByDesigner(ctx context.Context, viewerID, designerID string) ([]postRow, error) {
	q := postSelect + `
		WHERE p.designer_id = $2
		GROUP BY p.post_id, u.display_name
		ORDER BY p.created_at DESC
	`
	return r.queryPosts(ctx, q, viewerID, designerID)
}

func (r *Repository) queryPosts(ctx context.Context, q string, args ...any) ([]postRow, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	out := []postRow{}
	for rows.Next() {
		var p postRow
		if err := rows.Scan(
			&p.ID, &p.DesignerID, &p.AuthorName, &p.Caption, &p.MediaKeys, &p.CreatedAt,
			&p.LikeCount, &p.LikedByMe,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListComments returns the comments for the given posts in creation order.
func (r *Repository) ListComments(ctx context.Context, postIDs []string) (map[string][]commentRow, error) {
	if len(postIDs) == 0 {
		return map[string][]commentRow{}, nil
	}

	const q = `
		SELECT c.comment_id, c.post_id, c.user_id, u.display_name, c.body, c.created_at
		FROM comments c
		JOIN users u ON u.user_id = c.user_id
		WHERE c.post_id = ANY($1)
		ORDER BY c.created_at ASC, c.comment_id ASC
	`
	rows, err := r.db.Query(ctx, q, postIDs)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	out := map[string][]commentRow{}
	for rows.Next() {
		var c commentRow
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.AuthorName, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out[c.PostID] = append(out[c.PostID], c)
	}
	return out, rows.Err()
}

// GetPostDesigner returns the designer owning a post.
func (r *Repository) GetPostDesigner(ctx context.Context, postID string) (string, error) {
	const q = `SELECT designer_id FROM posts WHERE post_id = $1`
	var designerID string
	if err := r.db.QueryRow(ctx, q, postID).Scan(&designerID); err != nil {
		return "", ErrPostNotFound
	}
	return designerID, nil
}

// ToggleLike flips the user's like on a post inside one transaction and
// returns the resulting state with the authoritative count.
func (r *Repository) ToggleLike(ctx context.Context, userID, postID string) (liked bool, count int, err error) {
	if userID == "" || postID == "" {
		return false, 0, ErrInvalidInput
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("begin toggle: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE post_id = $1)`, postID).Scan(&exists); err != nil {
		return false, 0, fmt.Errorf("check post: %w", err)
	}
	if !exists {
		return false, 0, ErrPostNotFound
	}

	res, err := tx.Exec(ctx, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return false, 0, fmt.Errorf("delete like: %w", err)
	}

	if res.RowsAffected() == 0 {
		const ins = `
			INSERT INTO likes (post_id, user_id, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (post_id, user_id) DO NOTHING
		`
		if _, err := tx.Exec(ctx, ins, postID, userID, time.Now()); err != nil {
			return false, 0, fmt.Errorf("insert like: %w", err)
		}
		liked = true
	}

	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&count); err != nil {
		return false, 0, fmt.Errorf("count likes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, 0, fmt.Errorf("commit toggle: %w", err)
	}
	return liked, count, nil
}

// CreateComment inserts a comment and returns the stored row.
func (r *Repository) CreateComment(ctx context.Context, userID, postID, body string) (*Comment, error) {
	if userID == "" || postID == "" || body == "" {
		return nil, ErrInvalidInput
	}

	c := &Comment{
		ID:     uuid.New().String(),
		PostID: postID,
		UserID: userID,
		Body:   body,
	}

	const q = `
		INSERT INTO comments (comment_id, post_id, user_id, body, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`
	if err := r.db.QueryRow(ctx, q, c.ID, c.PostID, c.UserID, c.Body).Scan(&c.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return c, nil
}
