package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"nomia/internal/model"
)

type MockCreditRepository struct {
	mock.Mock
}

func (m *MockCreditRepository) EnsureExists(ctx context.Context, userID int64, initialCredits int) error {
	args := m.Called(ctx, userID, initialCredits)
	return args.Error(0)
}

func (m *MockCreditRepository) ResetExpired(ctx context.Context, userID int64, initialCredits int, now time.Time) error {
	args := m.Called(ctx, userID, initialCredits, now)
	return args.Error(0)
}

func (m *MockCreditRepository) FindByUserID(ctx context.Context, userID int64) (*model.CreditBalance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CreditBalance), args.Error(1)
}

func (m *MockCreditRepository) Deduct(ctx context.Context, userID int64, amount int) (*model.CreditBalance, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CreditBalance), args.Error(1)
}
