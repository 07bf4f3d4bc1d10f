package appstate

import (
	"errors"
	"testing"
	"time"
)

func newTestPost(id string) Post {
	return Post{
		ID:        id,
		Media:     []string{"works/" + id + "/1.jpg"},
		Caption:   "sample",
		LikeCount: 5,
		LikedByMe: false,
		Author:    Author{ID: "d1", Name: "Asha"},
		CreatedAt: time.Now().UTC(),
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Put(newTestPost("p1"))

	got, err := s.Get("p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.LikeCount = 99
	got.Media[0] = "tampered"

	again, _ := s.Get("p1")
	if again.LikeCount != 5 {
		t.Errorf("store aliased like count, got %d", again.LikeCount)
	}
	if again.Media[0] != "works/p1/1.jpg" {
		t.Errorf("store aliased media slice, got %q", again.Media[0])
	}
}

func TestStore_SetLikeUpdatesBothFields(t *testing.T) {
	s := NewStore()
	s.Put(newTestPost("p1"))

	if err := s.SetLike("p1", true, 6); err != nil {
		t.Fatalf("set like: %v", err)
	}

	ls, err := s.LikeSnapshot("p1")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !ls.Liked || ls.Count != 6 {
		t.Errorf("expected liked=true count=6, got %+v", ls)
	}
}

func TestStore_SetLikeFloorsAtZero(t *testing.T) {
	s := NewStore()
	p := newTestPost("p1")
	p.LikeCount = 0
	s.Put(p)

	if err := s.SetLike("p1", false, -1); err != nil {
		t.Fatalf("set like: %v", err)
	}
	ls, _ := s.LikeSnapshot("p1")
	if ls.Count != 0 {
		t.Errorf("expected count floored at 0, got %d", ls.Count)
	}
}

func TestStore_SetLikeUnknownPost(t *testing.T) {
	s := NewStore()
	if err := s.SetLike("nope", true, 1); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}

func TestStore_ConfirmCommentReplacesInPlace(t *testing.T) {
	s := NewStore()
	s.Put(newTestPost("p1"))

	s.AppendComment("p1", Comment{ID: "c1", Text: "first"})
	s.AppendComment("p1", Comment{CorrelationID: "tmp-1", Text: "Nice work", AuthorName: "You", Pending: true})
	s.AppendComment("p1", Comment{ID: "c2", Text: "third"})

	err := s.ConfirmComment("p1", "tmp-1", Comment{ID: "c99", Text: "Nice work", AuthorName: "Asha"})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	p, _ := s.Get("p1")
	if len(p.Comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(p.Comments))
	}
	got := p.Comments[1]
	if got.ID != "c99" || got.Pending {
		t.Errorf("expected confirmed c99 at position 1, got %+v", got)
	}
}

func TestStore_RemoveCommentKeepsOrder(t *testing.T) {
	s := NewStore()
	s.Put(newTestPost("p1"))

	s.AppendComment("p1", Comment{ID: "c1", Text: "first"})
	s.AppendComment("p1", Comment{CorrelationID: "tmp-1", Text: "doomed", Pending: true})
	s.AppendComment("p1", Comment{ID: "c2", Text: "last"})

	if err := s.RemoveComment("p1", "tmp-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	p, _ := s.Get("p1")
	if len(p.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(p.Comments))
	}
	if p.Comments[0].ID != "c1" || p.Comments[1].ID != "c2" {
		t.Errorf("order disturbed: %+v", p.Comments)
	}
}

func TestStore_ConfirmCommentUnknownCorrelation(t *testing.T) {
	s := NewStore()
	s.Put(newTestPost("p1"))

	err := s.ConfirmComment("p1", "missing", Comment{ID: "c9"})
	if !errors.Is(err, ErrCommentNotFound) {
		t.Errorf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := NewStore()
	old := newTestPost("old")
	old.CreatedAt = time.Now().Add(-time.Hour)
	s.Put(old)
	s.Put(newTestPost("new"))

	posts := s.List()
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != "new" {
		t.Errorf("expected newest first, got %s", posts[0].ID)
	}
}
