package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nomia/internal/storage"
	storageMocks "nomia/internal/storage/mocks"
)

var keyPattern = regexp.MustCompile(`^21/[A-Za-z0-9]{12}/report\.pdf$`)

func TestUploadService_CreateUploadURL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	store := new(storageMocks.MockObjectStore)
	store.On("PresignPut", ctx, mock.MatchedBy(func(key string) bool {
		return keyPattern.MatchString(key)
	}), "application/pdf", SignedURLTTL).Return("https://bucket.example.com/signed-put", nil)

	svc := &uploadService{store: store, now: func() time.Time { return now }}

	grant, err := svc.CreateUploadURL(ctx, "Report.PDF", "application/pdf", 21)

	require.NoError(t, err)
	assert.Regexp(t, keyPattern, grant.Key)
	assert.Equal(t, "https://bucket.example.com/signed-put", grant.URL)
	assert.Equal(t, now.Add(SignedURLTTL), grant.ExpiresAt)
	store.AssertExpectations(t)
}

func TestUploadService_RenewUploadURL(t *testing.T) {
	ctx := context.Background()

	t.Run("re-signs the given key unchanged", func(t *testing.T) {
		store := new(storageMocks.MockObjectStore)
		store.On("PresignPut", ctx, "21/abc123def456/report.pdf", "application/pdf", SignedURLTTL).
			Return("https://bucket.example.com/signed-put", nil)

		grant, err := NewUploadService(store, nil).RenewUploadURL(ctx, "21/abc123def456/report.pdf", "application/pdf")

		require.NoError(t, err)
		assert.Equal(t, "21/abc123def456/report.pdf", grant.Key)
	})

	t.Run("empty key rejected", func(t *testing.T) {
		store := new(storageMocks.MockObjectStore)

		_, err := NewUploadService(store, nil).RenewUploadURL(ctx, "", "application/pdf")

		assert.Error(t, err)
		store.AssertNotCalled(t, "PresignPut", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("backend errors propagate", func(t *testing.T) {
		store := new(storageMocks.MockObjectStore)
		store.On("PresignPut", ctx, "k", "", SignedURLTTL).
			Return("", storage.ErrInvalidTransport)

		_, err := NewUploadService(store, nil).RenewUploadURL(ctx, "k", "")

		assert.ErrorIs(t, err, storage.ErrInvalidTransport)
	})
}

func TestUploadService_CreateDownloadURL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("backend presign when no distribution", func(t *testing.T) {
		store := new(storageMocks.MockObjectStore)
		store.On("PresignGet", ctx, "21/abc123def456/report.pdf", SignedURLTTL).
			Return("https://bucket.example.com/signed-get", nil)

		svc := &uploadService{store: store, now: func() time.Time { return now }}
		grant, err := svc.CreateDownloadURL(ctx, "21/abc123def456/report.pdf")

		require.NoError(t, err)
		assert.Equal(t, "https://bucket.example.com/signed-get", grant.URL)
		assert.Equal(t, now.Add(SignedURLTTL), grant.ExpiresAt)
	})

	t.Run("distribution takes over signing", func(t *testing.T) {
		store := new(storageMocks.MockObjectStore)
		cdn, err := storage.NewCDNSigner("cdn.example.com", "KEYPAIRID", testSigningKeyPEM(t))
		require.NoError(t, err)

		svc := &uploadService{store: store, cdn: cdn, now: func() time.Time { return now }}
		grant, err := svc.CreateDownloadURL(ctx, "21/abc123def456/report.pdf")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(grant.URL, "https://cdn.example.com/21/abc123def456/report.pdf"))
		assert.Contains(t, grant.URL, "Signature=")
		store.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty key rejected", func(t *testing.T) {
		_, err := NewUploadService(new(storageMocks.MockObjectStore), nil).CreateDownloadURL(ctx, "")
		assert.Error(t, err)
	})
}

func TestUploadService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("writes with metadata and returns key", func(t *testing.T) {
		store := new(storageMocks.MockObjectStore)
		store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return keyPattern.MatchString(key)
		}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.ContentType == "application/pdf" &&
				opt.Size == 4 &&
				opt.Metadata["original-filename"] == "Report.PDF"
		})).Return(storage.ObjectInfo{Size: 4, ContentType: "application/pdf"}, nil)

		result, err := NewUploadService(store, nil).Upload(ctx, strings.NewReader("%PDF"), "Report.PDF", "application/pdf", 4, 21)

		require.NoError(t, err)
		assert.Regexp(t, keyPattern, result.Key)
		assert.Equal(t, int64(4), result.Info.Size)
		store.AssertExpectations(t)
	})

	t.Run("nil reader rejected", func(t *testing.T) {
		_, err := NewUploadService(new(storageMocks.MockObjectStore), nil).Upload(ctx, nil, "a.pdf", "application/pdf", 0, 1)
		assert.ErrorIs(t, err, ErrReaderNil)
	})
}

func TestUploadService_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("streams from the store", func(t *testing.T) {
		store := new(storageMocks.MockObjectStore)
		store.On("Get", ctx, "k").
			Return(io.NopCloser(strings.NewReader("%PDF")), storage.ObjectInfo{Size: 4, ContentType: "application/pdf"}, nil)

		rc, info, err := NewUploadService(store, nil).Download(ctx, "k")

		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(data))
		assert.Equal(t, "application/pdf", info.ContentType)
	})

	t.Run("missing object", func(t *testing.T) {
		store := new(storageMocks.MockObjectStore)
		store.On("Get", ctx, "k").
			Return(nil, storage.ObjectInfo{}, storage.ErrNotFound)

		_, _, err := NewUploadService(store, nil).Download(ctx, "k")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestUploadService_Delete(t *testing.T) {
	ctx := context.Background()

	store := new(storageMocks.MockObjectStore)
	store.On("Delete", ctx, "k").Return(nil)

	err := NewUploadService(store, nil).Delete(ctx, "k")

	require.NoError(t, err)
	store.AssertExpectations(t)

	store.On("Delete", ctx, "broken").Return(errors.New("backend down"))
	assert.Error(t, NewUploadService(store, nil).Delete(ctx, "broken"))
}

func testSigningKeyPEM(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	return string(pem.EncodeToMemory(block))
}
