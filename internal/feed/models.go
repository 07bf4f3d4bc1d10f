package feed

import "time"

// Post is a designer's published work as stored.
type Post struct {
	ID         string    `json:"id" db:"post_id"`
	DesignerID string    `json:"designerId" db:"designer_id"`
	Caption    string    `json:"caption" db:"caption"`
	MediaKeys  []string  `json:"mediaKeys" db:"media_keys"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Comment is a stored comment row.
type Comment struct {
	ID        string    `json:"id" db:"comment_id"`
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// AuthorDTO identifies a post's designer on the wire.
type AuthorDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CommentDTO is a comment as the mobile client consumes it. Pending is
// always false server-side; the field exists so confirmed payloads slot
// straight into the client's optimistic-comment model.
type CommentDTO struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
	Pending    bool      `json:"pending"`
}

// PostDTO is a post as the mobile client consumes it: media resolved to
// URLs, engagement counters computed for the viewer.
type PostDTO struct {
	ID        string       `json:"id"`
	Media     []string     `json:"media"`
	Caption   string       `json:"caption"`
	LikeCount int          `json:"likeCount"`
	LikedByMe bool         `json:"likedByMe"`
	Comments  []CommentDTO `json:"comments"`
	Author    AuthorDTO    `json:"author"`
	CreatedAt time.Time    `json:"createdAt"`
}

// ToggleLikeResponse confirms a like toggle. UpdatedLikesCount is the
// authoritative counter after the toggle.
type ToggleLikeResponse struct {
	Message           string `json:"message"`
	Liked             bool   `json:"liked"`
	UpdatedLikesCount int    `json:"updatedLikesCount"`
}

// AddCommentRequest is the add-comment body.
type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
