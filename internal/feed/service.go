package feed

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/events"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/media"
)

// Repo is the slice of Repository the service consumes.
type Repo interface {
	ListFeed(ctx context.Context, viewerID string) ([]postRow, error)
	ListByDesigner(ctx context.Context, viewerID, designerID string) ([]postRow, error)
	ListComments(ctx context.Context, postIDs []string) (map[string][]commentRow, error)
	GetPostDesigner(ctx context.Context, postID string) (string, error)
	ToggleLike(ctx context.Context, userID, postID string) (liked bool, count int, err error)
	CreateComment(ctx context.Context, userID, postID, body string) (*Comment, error)
}

// Service is the feed business layer.
type Service interface {
	Feed(ctx context.Context, viewerID string) ([]PostDTO, error)
	DesignerWorks(ctx context.Context, viewerID, designerID string) ([]PostDTO, error)
	ToggleLike(ctx context.Context, viewerID, postID string) (*ToggleLikeResponse, error)
	AddComment(ctx context.Context, viewerID, viewerName, postID, text string) (*CommentDTO, error)
}

type service struct {
	repo     Repo
	media    media.Service
	producer *events.Producer
	logger   *slog.Logger
}

// NewService creates the feed service. media and producer may be nil; the
// feed then serves raw media keys and publishes no events.
func NewService(repo Repo, mediaSvc media.Service, producer *events.Producer, logger *slog.Logger) Service {
	return &service{repo: repo, media: mediaSvc, producer: producer, logger: logger}
}

func (s *service) Feed(ctx context.Context, viewerID string) ([]PostDTO, error) {
	rows, err := s.repo.ListFeed(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, rows)
}

func (s *service) DesignerWorks(ctx context.Context, viewerID, designerID string) ([]PostDTO, error) {
	if designerID == "" {
		return nil, ErrInvalidInput
	}
	rows, err := s.repo.ListByDesigner(ctx, viewerID, designerID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, rows)
}

func (s *service) ToggleLike(ctx context.Context, viewerID, postID string) (*ToggleLikeResponse, error) {
	liked, count, err := s.repo.ToggleLike(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}

	if s.producer != nil {
		if designerID, derr := s.repo.GetPostDesigner(ctx, postID); derr == nil {
			if perr := s.producer.PostLiked(postID, viewerID, designerID, liked); perr != nil {
				s.logger.Warn("like event not published", "post_id", postID, "err", perr)
			}
		}
	}

	return &ToggleLikeResponse{
		Message:           "ok",
		Liked:             liked,
		UpdatedLikesCount: count,
	}, nil
}

func (s *service) AddComment(ctx context.Context, viewerID, viewerName, postID, text string) (*CommentDTO, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidInput
	}

	designerID, err := s.repo.GetPostDesigner(ctx, postID)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.CreateComment(ctx, viewerID, postID, text)
	if err != nil {
		return nil, err
	}

	if s.producer != nil {
		if perr := s.producer.CommentAdded(postID, c.ID, viewerID, designerID); perr != nil {
			s.logger.Warn("comment event not published", "post_id", postID, "err", perr)
		}
	}

	return &CommentDTO{
		ID:         c.ID,
		Text:       c.Body,
		AuthorName: viewerName,
		CreatedAt:  c.CreatedAt,
		Pending:    false,
	}, nil
}

// assemble joins posts with their comments and resolves media keys to URLs.
func (s *service) assemble(ctx context.Context, rows []postRow) ([]PostDTO, error) {
	ids := make([]string, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}

	commentsByPost, err := s.repo.ListComments(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]PostDTO, 0, len(rows))
	for i := range rows {
		row := rows[i]

		dto := PostDTO{
			ID:        row.ID,
			Caption:   row.Caption,
			LikeCount: row.LikeCount,
			LikedByMe: row.LikedByMe,
			Author:    AuthorDTO{ID: row.DesignerID, Name: row.AuthorName},
			CreatedAt: row.CreatedAt,
			Comments:  []CommentDTO{},
			Media:     make([]string, 0, len(row.MediaKeys)),
		}

		for _, key := range row.MediaKeys {
			dto.Media = append(dto.Media, s.mediaURL(ctx, key))
		}
		for _, c := range commentsByPost[row.ID] {
			dto.Comments = append(dto.Comments, CommentDTO{
				ID:         c.ID,
				Text:       c.Body,
				AuthorName: c.AuthorName,
				CreatedAt:  c.CreatedAt,
			})
		}
		out = append(out, dto)
	}
	return out, nil
}

// mediaURL resolves a stored key to a presigned URL, falling back to the raw
// key when storage is unconfigured or presigning fails.
func (s *service) mediaURL(ctx context.Context, key string) string {
	if s.media == nil {
		return key
	}
	url, err := s.media.DownloadURL(ctx, key)
	if err != nil {
		s.logger.Warn("media presign failed", "key", key, "err", err)
		return key
	}
	return url
}
