// Package media serves post media from S3-compatible object storage.
// Posts persist media as object keys; the feed resolves keys to time-limited
// presigned download URLs, and designers upload new work through presigned
// upload URLs.
package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DownloadURLTTL is how long a feed media link stays valid. Longer than a
// scroll session so links do not die while a feed is on screen.
const DownloadURLTTL = 1 * time.Hour

// UploadURLTTL bounds how long an upload slot stays open.
const UploadURLTTL = 15 * time.Minute

// Service resolves media keys to URLs and manages the bucket.
type Service interface {
	// DownloadURL creates a presigned GET URL for a stored media key.
	DownloadURL(ctx context.Context, key string) (string, error)

	// UploadURL creates a presigned PUT URL for a new media key.
	UploadURL(ctx context.Context, key, contentType string) (string, error)

	// Delete removes a media object.
	Delete(ctx context.Context, key string) error

	// EnsureBucket creates the bucket if missing.
	EnsureBucket(ctx context.Context) error

	// Health checks bucket reachability.
	Health(ctx context.Context) error
}

type service struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	logger    *slog.Logger
}

// New builds a media service for an S3-compatible endpoint (MinIO in
// development, S3 proper in production) from MEDIA_* environment variables.
func New(ctx context.Context, logger *slog.Logger) (Service, error) {
	endpoint := os.Getenv("MEDIA_S3_ENDPOINT")
	accessKey := os.Getenv("MEDIA_S3_ACCESS_KEY")
	secretKey := os.Getenv("MEDIA_S3_SECRET_KEY")
	bucket := os.Getenv("MEDIA_S3_BUCKET")
	useSSL := os.Getenv("MEDIA_S3_USE_SSL") == "true"

	if endpoint == "" || accessKey == "" || secretKey == "" || bucket == "" {
		return nil, fmt.Errorf("MEDIA_S3_ENDPOINT, MEDIA_S3_ACCESS_KEY, MEDIA_S3_SECRET_KEY and MEDIA_S3_BUCKET are required")
	}

	protocol := "http"
	if useSSL {
		protocol = "https"
	}
	endpointURL := endpoint
	if !strings.Contains(endpoint, "://") {
		endpointURL = fmt.Sprintf("%s://%s", protocol, endpoint)
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(getEnvOr("MEDIA_S3_REGION", "us-east-1")),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	// Path-style addressing is required for MinIO.
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpointURL)
		o.UsePathStyle = true
	})

	svc := &service{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		logger:    logger,
	}

	if err := svc.EnsureBucket(ctx); err != nil {
		logger.Warn("could not ensure media bucket", "bucket", bucket, "err", err)
	}
	return svc, nil
}

func (s *service) DownloadURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("media key cannot be empty")
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = DownloadURLTTL
	})
	if err != nil {
		return "", fmt.Errorf("presign download for %s: %w", key, err)
	}
	return req.URL, nil
}

func (s *service) UploadURL(ctx context.Context, key, contentType string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("media key cannot be empty")
	}
	if contentType == "" {
		return "", fmt.Errorf("content type cannot be empty")
	}

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = UploadURLTTL
	})
	if err != nil {
		return "", fmt.Errorf("presign upload for %s: %w", key, err)
	}
	return req.URL, nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("media key cannot be empty")
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete media %s: %w", key, err)
	}
	return nil
}

func (s *service) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("created media bucket", "bucket", s.bucket)
	return nil
}

func (s *service) Health(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		return fmt.Errorf("media health check: %w", err)
	}
	return nil
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
