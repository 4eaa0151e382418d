package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config holds settings for the S3-compatible backend (AWS S3, MinIO,
// R2, etc.).
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	ForcePathStyle  bool
	UseSSL          bool
	AccessKeyID     string
	SecretAccessKey string
}

// s3Store implements ObjectStore against an S3-compatible backend.
// It is safe for concurrent use by multiple goroutines.
type s3Store struct {
	client *minio.Client
	bucket string
}

// NewS3 creates the S3-compatible backend. Required configuration is
// validated before any client or network activity, so misconfiguration
// fails fast with an error naming the missing field.
func NewS3(cfg S3Config) (ObjectStore, error) {
	if cfg.Bucket == "" {
		return nil, missingConfig("UPLOAD_BUCKET")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, missingConfig("UPLOAD_ACCESS_KEY_ID / UPLOAD_SECRET_ACCESS_KEY")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "s3." + cfg.Region + ".amazonaws.com"
	}

	// Path-style addressing is needed for MinIO and other S3-compatibles
	// that do not resolve bucket subdomains.
	lookup := minio.BucketLookupAuto
	if cfg.ForcePathStyle {
		lookup = minio.BucketLookupPath
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:       cfg.UseSSL,
		Region:       cfg.Region,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	return &s3Store{client: cli, bucket: cfg.Bucket}, nil
}

// PresignPut signs a PUT valid for the given expiry. A non-empty
// contentType is included in the signature so the upload is locked to
// that type.
func (s *s3Store) PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	if contentType == "" {
		u, err := s.client.PresignedPutObject(ctx, s.bucket, key, expiry)
		if err != nil {
			return "", err
		}
		return u.String(), nil
	}

	hdr := http.Header{}
	hdr.Set("Content-Type", contentType)
	u, err := s.client.PresignHeader(ctx, http.MethodPut, s.bucket, key, expiry, url.Values{}, hdr)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// PresignGet signs a GET valid for the given expiry.
func (s *s3Store) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Put uploads an object using streaming I/O only (no local disk).
func (s *s3Store) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	info, err := s.client.PutObject(ctx, s.bucket, key, r, opt.Size, minio.PutObjectOptions{
		ContentType:  opt.ContentType,
		UserMetadata: opt.Metadata,
	})
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ETag:         info.ETag,
		ContentType:  opt.ContentType,
		LastModified: time.Now(), // PutObject does not return LastModified
		Metadata:     opt.Metadata,
	}, nil
}

// Get downloads an object's content as a ReadCloser along with basic info.
func (s *s3Store) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	// Stat to populate info without reading content into memory.
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ObjectInfo{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, ObjectInfo{}, err
	}
	return obj, ObjectInfo{
		Key:          key,
		Size:         st.Size,
		ETag:         st.ETag,
		ContentType:  st.ContentType,
		LastModified: st.LastModified,
		Metadata:     st.UserMetadata,
	}, nil
}

// Delete removes an object by key.
func (s *s3Store) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

var _ ObjectStore = (*s3Store)(nil)
