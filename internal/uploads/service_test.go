package uploads

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeMedia struct {
	lastKey         string
	lastContentType string
	err             error
}

func (f *fakeMedia) DownloadURL(ctx context.Context, key string) (string, error) {
	return "https://media.test/" + key, nil
}

func (f *fakeMedia) UploadURL(ctx context.Context, key, contentType string) (string, error) {
	f.lastKey = key
	f.lastContentType = contentType
	if f.err != nil {
		return "", f.err
	}
	return "https://media.test/upload/" + key, nil
}

func (f *fakeMedia) Delete(ctx context.Context, key string) error { return nil }
func (f *fakeMedia) EnsureBucket(ctx context.Context) error       { return nil }
func (f *fakeMedia) Health(ctx context.Context) error             { return nil }

func TestPresignGeneratesKeyUnderDesignerPrefix(t *testing.T) {
	m := &fakeMedia{}
	svc := NewService(m)

	resp, err := svc.Presign(context.Background(), "designer-1", &PresignRequest{
		Filename:    "hero-shot.png",
		ContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("Presign: %v", err)
	}

	if !strings.HasPrefix(resp.MediaKey, "works/designer-1/") {
		t.Errorf("media key %q not under designer prefix", resp.MediaKey)
	}
	if !strings.HasSuffix(resp.MediaKey, ".png") {
		t.Errorf("media key %q lost file extension", resp.MediaKey)
	}
	if m.lastContentType != "image/png" {
		t.Errorf("content type sent to storage = %q", m.lastContentType)
	}
	if resp.UploadURL == "" || resp.ExpiresAt == 0 {
		t.Errorf("incomplete response: %+v", resp)
	}
}

func TestPresignRejectsBadInput(t *testing.T) {
	svc := NewService(&fakeMedia{})

	cases := []struct {
		name string
		req  PresignRequest
	}{
		{"empty filename", PresignRequest{Filename: "", ContentType: "image/png"}},
		{"path traversal", PresignRequest{Filename: "../etc/passwd.png", ContentType: "image/png"}},
		{"no extension", PresignRequest{Filename: "hero", ContentType: "image/png"}},
		{"disallowed type", PresignRequest{Filename: "doc.pdf", ContentType: "application/pdf"}},
		{"empty type", PresignRequest{Filename: "a.png", ContentType: ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Presign(context.Background(), "designer-1", &tc.req); !errors.Is(err, ErrInvalidUpload) {
				t.Errorf("err = %v, want ErrInvalidUpload", err)
			}
		})
	}
}

func TestPresignPropagatesStorageError(t *testing.T) {
	svc := NewService(&fakeMedia{err: errors.New("bucket unreachable")})

	if _, err := svc.Presign(context.Background(), "designer-1", &PresignRequest{
		Filename:    "a.png",
		ContentType: "image/png",
	}); err == nil || errors.Is(err, ErrInvalidUpload) {
		t.Errorf("err = %v, want storage error", err)
	}
}
