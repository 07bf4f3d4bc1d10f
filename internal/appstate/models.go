package appstate

import "time"

// Author identifies the designer who published a post.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Comment is a single entry in a post's comment thread. A comment created
// locally carries Pending=true and a client-generated CorrelationID until the
// backend confirms it; confirmed comments carry the server-assigned ID.
type Comment struct {
	ID            string    `json:"id"`
	CorrelationID string    `json:"-"`
	Text          string    `json:"text"`
	AuthorName    string    `json:"authorName"`
	CreatedAt     time.Time `json:"createdAt"`
	Pending       bool      `json:"pending"`
}

// Post is the client's view of a published work: media, engagement counters
// and the comment thread in insertion order.
type Post struct {
	ID        string    `json:"id"`
	Media     []string  `json:"media"`
	Caption   string    `json:"caption"`
	LikeCount int       `json:"likeCount"`
	LikedByMe bool      `json:"likedByMe"`
	Comments  []Comment `json:"comments"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikeState is the pair of like fields that always change together.
type LikeState struct {
	Liked bool
	Count int
}

func (p *Post) clone() *Post {
	cp := *p
	cp.Media = append([]string(nil), p.Media...)
	cp.Comments = append([]Comment(nil), p.Comments...)
	return &cp
}
