package storage

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"
)

// databaseStore implements ObjectStore on top of a Postgres table. It is
// the safe default transport for deployments without cloud storage.
// Presigning is not possible for rows in a database, so both presign
// operations fail with ErrInvalidTransport; uploads and downloads flow
// through the application instead.
type databaseStore struct {
	db *sql.DB
}

// NewDatabase creates the database-backed object store.
func NewDatabase(db *sql.DB) (ObjectStore, error) {
	if db == nil {
		return nil, missingConfig("DB_HOST")
	}
	return &databaseStore{db: db}, nil
}

func (d *databaseStore) PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	return "", ErrInvalidTransport
}

func (d *databaseStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "", ErrInvalidTransport
}

// Put stores the object bytes in the blob_storage table, replacing any
// existing row for the key.
func (d *databaseStore) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("read object body: %w", err)
	}

	const q = `
		INSERT INTO blob_storage (key, data, content_type, size, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key) DO UPDATE
		SET data = EXCLUDED.data, content_type = EXCLUDED.content_type,
		    size = EXCLUDED.size, created_at = EXCLUDED.created_at
	`
	now := time.Now().UTC()
	if _, err := d.db.ExecContext(ctx, q, key, data, opt.ContentType, int64(len(data)), now); err != nil {
		return ObjectInfo{}, err
	}

	return ObjectInfo{
		Key:          key,
		Size:         int64(len(data)),
		ContentType:  opt.ContentType,
		LastModified: now,
		Metadata:     opt.Metadata,
	}, nil
}

func (d *databaseStore) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	const q = `SELECT data, content_type, size, created_at FROM blob_storage WHERE key = $1`

	var (
		data        []byte
		contentType string
		size        int64
		createdAt   time.Time
	)
	err := d.db.QueryRowContext(ctx, q, key).Scan(&data, &contentType, &size, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ObjectInfo{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, ObjectInfo{}, err
	}

	info := ObjectInfo{
		Key:          key,
		Size:         size,
		ContentType:  contentType,
		LastModified: createdAt,
	}
	return io.NopCloser(bytes.NewReader(data)), info, nil
}

// Delete removes the row; a missing row is indistinguishable from success.
func (d *databaseStore) Delete(ctx context.Context, key string) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM blob_storage WHERE key = $1`, key)
	return err
}

var _ ObjectStore = (*databaseStore)(nil)
