package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nomia/internal/model"
	"nomia/internal/repository"
)

// InitialUserCredits is the grant issued on first access and restored by
// the lazy expiry reset.
const InitialUserCredits = 10

var (
	// ErrLedgerUnavailable means the credits table is missing or the
	// persistence layer is misconfigured; operators should run
	// migrations. Distinct from an ordinary fetch failure.
	ErrLedgerUnavailable = errors.New("user credits ledger unavailable, run database migrations")
)

// CreditService owns per-user credit balances: lazy creation, lazy
// expiry reset, and atomic deduction.
type CreditService interface {
	// Ensure returns the user's balance, creating it with the initial
	// grant on first access and applying the expiry reset when due.
	Ensure(ctx context.Context, userID int64) (*model.CreditBalance, error)

	// Credits returns the user's current credit count.
	Credits(ctx context.Context, userID int64) (int, error)

	// Deduct subtracts amount (floored at zero) and returns the updated
	// balance. The balance row is created first if missing.
	Deduct(ctx context.Context, userID int64, amount int) (*model.CreditBalance, error)
}

type creditService struct {
	repo repository.CreditRepository
	now  func() time.Time
}

// NewCreditService constructs a CreditService backed by the given repository.
func NewCreditService(repo repository.CreditRepository) CreditService {
	return &creditService{repo: repo, now: time.Now}
}

func (s *creditService) Ensure(ctx context.Context, userID int64) (*model.CreditBalance, error) {
	if err := s.repo.EnsureExists(ctx, userID, InitialUserCredits); err != nil {
		return nil, classifyLedgerErr(err)
	}

	// Expiry is checked lazily on access, not by a background sweep.
	// The conditional update is idempotent, so a race between two
	// readers both observing expiry resolves as last writer wins.
	if err := s.repo.ResetExpired(ctx, userID, InitialUserCredits, s.now()); err != nil {
		return nil, classifyLedgerErr(err)
	}

	balance, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, classifyLedgerErr(err)
	}
	return balance, nil
}

func (s *creditService) Credits(ctx context.Context, userID int64) (int, error) {
	balance, err := s.Ensure(ctx, userID)
	if err != nil {
		return 0, err
	}
	return balance.Credits, nil
}

func (s *creditService) Deduct(ctx context.Context, userID int64, amount int) (*model.CreditBalance, error) {
	if amount < 0 {
		return nil, fmt.Errorf("deduct amount must be non-negative, got %d", amount)
	}
	if _, err := s.Ensure(ctx, userID); err != nil {
		return nil, err
	}

	balance, err := s.repo.Deduct(ctx, userID, amount)
	if err != nil {
		return nil, classifyLedgerErr(err)
	}
	return balance, nil
}

func classifyLedgerErr(err error) error {
	if errors.Is(err, repository.ErrUnavailable) {
		return fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}
	return err
}
