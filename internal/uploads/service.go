package uploads

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/media"
)

var ErrInvalidUpload = errors.New("invalid upload request")

// Service issues presigned upload URLs for work media. Keys are
// generated server side so clients cannot overwrite existing objects.
type Service struct {
	media media.Service
}

func NewService(m media.Service) *Service {
	return &Service{media: m}
}

func validateFilename(name string) error {
	if name == "" {
		return fmt.Errorf("%w: filename is required", ErrInvalidUpload)
	}
	if len(name) > maxFilenameLength {
		return fmt.Errorf("%w: filename too long (max %d characters)", ErrInvalidUpload, maxFilenameLength)
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: filename contains invalid characters", ErrInvalidUpload)
	}
	if filepath.Ext(name) == "" {
		return fmt.Errorf("%w: filename must have an extension", ErrInvalidUpload)
	}
	return nil
}

func validateContentType(contentType string) error {
	if contentType == "" {
		return fmt.Errorf("%w: content type is required", ErrInvalidUpload)
	}
	if !allowedContentTypes[contentType] {
		return fmt.Errorf("%w: content type %s is not allowed", ErrInvalidUpload, contentType)
	}
	return nil
}

// Presign validates the request and returns an upload URL for a fresh
// object key under the designer's prefix.
func (s *Service) Presign(ctx context.Context, designerID string, req *PresignRequest) (*PresignResponse, error) {
	if err := validateFilename(req.Filename); err != nil {
		return nil, err
	}
	if err := validateContentType(req.ContentType); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("works/%s/%s%s", designerID, uuid.New().String(), filepath.Ext(req.Filename))
	url, err := s.media.UploadURL(ctx, key, req.ContentType)
	if err != nil {
		return nil, fmt.Errorf("generate upload url: %w", err)
	}

	return &PresignResponse{
		UploadURL: url,
		MediaKey:  key,
		ExpiresAt: time.Now().Add(media.UploadURLTTL).Unix(),
	}, nil
}
