package repository

import (
	"context"
	"time"

	"nomia/internal/model"
)

// CreditRepository defines data access for per-user credit balances
// using SQL queries only. No business logic here — strictly persistence
// operations. Deduct must be a single atomic read-modify-write so
// concurrent deductions never lose updates.
type CreditRepository interface {
	// EnsureExists inserts a balance row with the given initial credits
	// if none exists for the user. Idempotent; never duplicates a row.
	EnsureExists(ctx context.Context, userID int64, initialCredits int) error

	// ResetExpired restores credits to the initial grant and clears the
	// expiry timestamp, but only when the stored expiry is at or before
	// now. A no-op otherwise.
	ResetExpired(ctx context.Context, userID int64, initialCredits int, now time.Time) error

	// FindByUserID returns the balance row for the user.
	FindByUserID(ctx context.Context, userID int64) (*model.CreditBalance, error)

	// Deduct atomically subtracts amount from the balance, flooring at
	// zero, and returns the updated row.
	Deduct(ctx context.Context, userID int64, amount int) (*model.CreditBalance, error)
}
