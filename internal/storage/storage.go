// Package storage contains the object storage abstraction and its
// backend implementations (database, S3-compatible, GCS). The backend
// is selected once at construction from configuration; callers hold a
// single ObjectStore for the life of the process.
package storage

import (
	"context"
	"database/sql"
	"io"
	"time"
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the
// implementation will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// ObjectStore is the storage backend capability consumed by the upload
// service. Presign methods return time-limited URLs granting a single
// operation without further authentication; backends without presign
// support (the database transport) return ErrInvalidTransport.
type ObjectStore interface {
	// PresignPut returns a signed URL authorizing a PUT of the object.
	// A non-empty contentType locks the eventual upload to that type.
	PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)
	// PresignGet returns a signed URL authorizing a GET of the object.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// Put uploads an object under the given key using streaming I/O.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing object is not
	// distinguished from success.
	Delete(ctx context.Context, key string) error
}

// Config carries everything backend construction may need. DB is only
// consulted by the database transport.
type Config struct {
	Transport string
	S3        S3Config
	GCS       GCSConfig
	DB        *sql.DB
}

// New selects and constructs the configured backend. Unknown transport
// values fall back to the database backend, matching the transport
// parsing rules.
func New(cfg Config) (ObjectStore, error) {
	switch ParseTransport(cfg.Transport) {
	case TransportS3:
		return NewS3(cfg.S3)
	case TransportGCS:
		return NewGCS(cfg.GCS)
	default:
		return NewDatabase(cfg.DB)
	}
}
