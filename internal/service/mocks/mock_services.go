package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"nomia/internal/model"
	"nomia/internal/service"
	"nomia/internal/storage"
)

type MockLimitsService struct {
	mock.Mock
}

func (m *MockLimitsService) ComputeLimits(ctx context.Context, userID, teamID int64) (*model.QuotaResult, error) {
	args := m.Called(ctx, userID, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuotaResult), args.Error(1)
}

type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) Ensure(ctx context.Context, userID int64) (*model.CreditBalance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CreditBalance), args.Error(1)
}

func (m *MockCreditService) Credits(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockCreditService) Deduct(ctx context.Context, userID int64, amount int) (*model.CreditBalance, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CreditBalance), args.Error(1)
}

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) CreateUploadURL(ctx context.Context, fileName, contentType string, userID int64) (*service.SignedURLGrant, error) {
	args := m.Called(ctx, fileName, contentType, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SignedURLGrant), args.Error(1)
}

func (m *MockUploadService) RenewUploadURL(ctx context.Context, key, contentType string) (*service.SignedURLGrant, error) {
	args := m.Called(ctx, key, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SignedURLGrant), args.Error(1)
}

func (m *MockUploadService) CreateDownloadURL(ctx context.Context, key string) (*service.SignedURLGrant, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SignedURLGrant), args.Error(1)
}

func (m *MockUploadService) Upload(ctx context.Context, r io.Reader, fileName, contentType string, size int64, userID int64) (*service.UploadResult, error) {
	args := m.Called(ctx, r, fileName, contentType, size, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockUploadService) Download(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockUploadService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) List(ctx context.Context, userID int64, opts service.TeamListOptions) (*service.TeamListResult, error) {
	args := m.Called(ctx, userID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TeamListResult), args.Error(1)
}
