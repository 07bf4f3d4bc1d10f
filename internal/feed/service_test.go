package feed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

type fakeRepo struct {
	posts    []postRow
	comments map[string][]commentRow

	toggleLiked bool
	toggleCount int
	toggleErr   error

	created   *Comment
	createErr error
}

func (f *fakeRepo) ListFeed(ctx context.Context, viewerID string) ([]postRow, error) {
	return f.posts, nil
}

func (f *fakeRepo) ListByDesigner(ctx context.Context, viewerID, designerID string) ([]postRow, error) {
	out := []postRow{}
	for _, p := range f.posts {
		if p.DesignerID == designerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListComments(ctx context.Context, postIDs []string) (map[string][]commentRow, error) {
	if f.comments == nil {
		return map[string][]commentRow{}, nil
	}
	return f.comments, nil
}

func (f *fakeRepo) GetPostDesigner(ctx context.Context, postID string) (string, error) {
	for _, p := range f.posts {
		if p.ID == postID {
			return p.DesignerID, nil
		}
	}
	return "", ErrPostNotFound
}

func (f *fakeRepo) ToggleLike(ctx context.Context, userID, postID string) (bool, int, error) {
	if f.toggleErr != nil {
		return false, 0, f.toggleErr
	}
	return f.toggleLiked, f.toggleCount, nil
}

func (f *fakeRepo) CreateComment(ctx context.Context, userID, postID, body string) (*Comment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.created != nil {
		return f.created, nil
	}
	return &Comment{ID: "c1", PostID: postID, UserID: userID, Body: body, CreatedAt: time.Now()}, nil
}

func testService(repo Repo) Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, nil, nil, logger)
}

func TestService_FeedAssemblesCommentsAndAuthor(t *testing.T) {
	repo := &fakeRepo{
		posts: []postRow{{
			Post:       Post{ID: "p1", DesignerID: "d1", Caption: "chair", MediaKeys: []string{"works/p1/1.jpg"}, CreatedAt: time.Now()},
			AuthorName: "Asha",
			LikeCount:  5,
			LikedByMe:  true,
		}},
		comments: map[string][]commentRow{
			"p1": {{Comment: Comment{ID: "c1", PostID: "p1", Body: "nice"}, AuthorName: "Ben"}},
		},
	}

	posts, err := testService(repo).Feed(context.Background(), "viewer")
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	p := posts[0]
	if p.Author.Name != "Asha" || p.LikeCount != 5 || !p.LikedByMe {
		t.Errorf("unexpected post: %+v", p)
	}
	if len(p.Comments) != 1 || p.Comments[0].AuthorName != "Ben" || p.Comments[0].Pending {
		t.Errorf("unexpected comments: %+v", p.Comments)
	}
	// Without storage configured the raw key is served.
	if len(p.Media) != 1 || p.Media[0] != "works/p1/1.jpg" {
		t.Errorf("unexpected media: %+v", p.Media)
	}
}

func TestService_ToggleLikeReturnsAuthoritativeCount(t *testing.T) {
	repo := &fakeRepo{
		posts:       []postRow{{Post: Post{ID: "p1", DesignerID: "d1"}}},
		toggleLiked: true,
		toggleCount: 7,
	}

	res, err := testService(repo).ToggleLike(context.Background(), "viewer", "p1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !res.Liked || res.UpdatedLikesCount != 7 {
		t.Errorf("unexpected response: %+v", res)
	}
}

func TestService_AddCommentRejectsWhitespace(t *testing.T) {
	repo := &fakeRepo{posts: []postRow{{Post: Post{ID: "p1", DesignerID: "d1"}}}}

	_, err := testService(repo).AddComment(context.Background(), "viewer", "Ben", "p1", "   ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_AddCommentUnknownPost(t *testing.T) {
	repo := &fakeRepo{}
	_, err := testService(repo).AddComment(context.Background(), "viewer", "Ben", "ghost", "hello")
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}

func TestService_AddCommentCarriesViewerName(t *testing.T) {
	repo := &fakeRepo{posts: []postRow{{Post: Post{ID: "p1", DesignerID: "d1"}}}}

	c, err := testService(repo).AddComment(context.Background(), "viewer", "Ben", "p1", " trimmed ")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if c.AuthorName != "Ben" || c.Text != "trimmed" || c.Pending {
		t.Errorf("unexpected comment: %+v", c)
	}
}
