package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"nomia/internal/storage"
)

// SignedURLTTL bounds every issued URL. Uploads and downloads are
// bounded by this expiry rather than a cancellation token.
const SignedURLTTL = time.Hour

// ErrReaderNil is returned when a direct upload is attempted without a body.
var ErrReaderNil = errors.New("reader is nil")

// SignedURLGrant is an ephemeral single-operation grant. It is produced
// on demand and never stored.
type SignedURLGrant struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UploadResult is returned by the server-side direct upload path.
type UploadResult struct {
	Key  string             `json:"key"`
	Info storage.ObjectInfo `json:"info"`
}

// UploadService issues presigned URLs and performs server-side object
// operations against the configured backend. Backend and network errors
// propagate unmodified; retries belong to the caller or the SDK.
type UploadService interface {
	// CreateUploadURL generates a fresh key for the filename and signs a
	// content-type-locked PUT for it.
	CreateUploadURL(ctx context.Context, fileName, contentType string, userID int64) (*SignedURLGrant, error)

	// RenewUploadURL re-signs a PUT for a caller-supplied key.
	RenewUploadURL(ctx context.Context, key, contentType string) (*SignedURLGrant, error)

	// CreateDownloadURL signs a GET for the key. When a CDN distribution
	// is configured the URL is signed against it (date-bound) instead of
	// the backend.
	CreateDownloadURL(ctx context.Context, key string) (*SignedURLGrant, error)

	// Upload is the server-side direct write path, used when the server
	// itself holds the file bytes.
	Upload(ctx context.Context, r io.Reader, fileName, contentType string, size int64, userID int64) (*UploadResult, error)

	// Download streams the object's bytes back through the server.
	Download(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error)

	// Delete removes the object. Absence of the object is not
	// distinguished from success.
	Delete(ctx context.Context, key string) error
}

type uploadService struct {
	store storage.ObjectStore
	cdn   *storage.CDNSigner
	now   func() time.Time
}

// NewUploadService constructs an UploadService. cdn may be nil when no
// distribution domain is configured.
func NewUploadService(store storage.ObjectStore, cdn *storage.CDNSigner) UploadService {
	return &uploadService{store: store, cdn: cdn, now: time.Now}
}

func (s *uploadService) CreateUploadURL(ctx context.Context, fileName, contentType string, userID int64) (*SignedURLGrant, error) {
	key, err := storage.GenerateKey(fileName, userID)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return s.presignPut(ctx, key, contentType)
}

func (s *uploadService) RenewUploadURL(ctx context.Context, key, contentType string) (*SignedURLGrant, error) {
	if key == "" {
		return nil, errors.New("key is required")
	}
	return s.presignPut(ctx, key, contentType)
}

func (s *uploadService) presignPut(ctx context.Context, key, contentType string) (*SignedURLGrant, error) {
	url, err := s.store.PresignPut(ctx, key, contentType, SignedURLTTL)
	if err != nil {
		return nil, err
	}
	return &SignedURLGrant{Key: key, URL: url, ExpiresAt: s.now().Add(SignedURLTTL)}, nil
}

func (s *uploadService) CreateDownloadURL(ctx context.Context, key string) (*SignedURLGrant, error) {
	if key == "" {
		return nil, errors.New("key is required")
	}

	expiresAt := s.now().Add(SignedURLTTL)

	if s.cdn != nil {
		url, err := s.cdn.SignGet(key, expiresAt)
		if err != nil {
			return nil, err
		}
		return &SignedURLGrant{Key: key, URL: url, ExpiresAt: expiresAt}, nil
	}

	url, err := s.store.PresignGet(ctx, key, SignedURLTTL)
	if err != nil {
		return nil, err
	}
	return &SignedURLGrant{Key: key, URL: url, ExpiresAt: expiresAt}, nil
}

func (s *uploadService) Upload(ctx context.Context, r io.Reader, fileName, contentType string, size int64, userID int64) (*UploadResult, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	key, err := storage.GenerateKey(fileName, userID)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	info, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": fileName,
		},
	})
	if err != nil {
		return nil, err
	}

	return &UploadResult{Key: key, Info: info}, nil
}

func (s *uploadService) Download(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	return s.store.Get(ctx, key)
}

func (s *uploadService) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}
