package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gstorage "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSConfig mirrors config.GCSConfig for backend construction.
type GCSConfig struct {
	Bucket          string
	ProjectID       string
	ClientEmail     string
	PrivateKey      string
	CredentialsFile string
}

// gcsStore implements ObjectStore against Google Cloud Storage using V4
// signed URLs.
type gcsStore struct {
	client   *gstorage.Client
	bucket   string
	accessID string
	key      []byte
}

// NewGCS creates the GCS backend. Credentials come from an explicit
// service-account file, or from a client email + private key pair, in
// that order of preference.
func NewGCS(cfg GCSConfig) (ObjectStore, error) {
	if cfg.Bucket == "" {
		return nil, missingConfig("GCS_BUCKET")
	}

	var opts []option.ClientOption
	switch {
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	case cfg.ClientEmail != "" && cfg.PrivateKey != "":
		creds, err := json.Marshal(map[string]string{
			"type":         "service_account",
			"project_id":   cfg.ProjectID,
			"client_email": cfg.ClientEmail,
			"private_key":  normalizePEM(cfg.PrivateKey),
		})
		if err != nil {
			return nil, fmt.Errorf("encode gcs credentials: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	default:
		return nil, missingConfig("GCS_CLIENT_EMAIL / GCS_PRIVATE_KEY")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := gstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	return &gcsStore{
		client:   client,
		bucket:   cfg.Bucket,
		accessID: cfg.ClientEmail,
		key:      []byte(normalizePEM(cfg.PrivateKey)),
	}, nil
}

// normalizePEM converts escaped newlines from environment variables into
// real line breaks so PEM parsing succeeds.
func normalizePEM(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func (g *gcsStore) signedURL(key, method, contentType string, expiry time.Duration) (string, error) {
	opts := &gstorage.SignedURLOptions{
		Scheme:      gstorage.SigningSchemeV4,
		Method:      method,
		Expires:     time.Now().Add(expiry),
		ContentType: contentType,
	}
	if g.accessID != "" && len(g.key) > 0 {
		opts.GoogleAccessID = g.accessID
		opts.PrivateKey = g.key
	}
	return g.client.Bucket(g.bucket).SignedURL(key, opts)
}

func (g *gcsStore) PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	return g.signedURL(key, http.MethodPut, contentType, expiry)
}

func (g *gcsStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return g.signedURL(key, http.MethodGet, "", expiry)
}

func (g *gcsStore) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = opt.ContentType
	w.Metadata = opt.Metadata

	n, err := io.Copy(w, r)
	if err != nil {
		_ = w.Close()
		return ObjectInfo{}, err
	}
	if err := w.Close(); err != nil {
		return ObjectInfo{}, err
	}

	attrs := w.Attrs()
	info := ObjectInfo{
		Key:         key,
		Size:        n,
		ContentType: opt.ContentType,
		Metadata:    opt.Metadata,
	}
	if attrs != nil {
		info.ETag = attrs.Etag
		info.LastModified = attrs.Updated
	}
	return info, nil
}

func (g *gcsStore) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	obj := g.client.Bucket(g.bucket).Object(key)
	r, err := obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, gstorage.ErrObjectNotExist) {
			return nil, ObjectInfo{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, ObjectInfo{}, err
	}
	return r, ObjectInfo{
		Key:          key,
		Size:         r.Attrs.Size,
		ContentType:  r.Attrs.ContentType,
		LastModified: r.Attrs.LastModified,
	}, nil
}

// Delete removes an object. A missing object is treated as success.
func (g *gcsStore) Delete(ctx context.Context, key string) error {
	err := g.client.Bucket(g.bucket).Object(key).Delete(ctx)
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		return nil
	}
	return err
}

var _ ObjectStore = (*gcsStore)(nil)
