package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"nomia/internal/model"
	"nomia/internal/repository"
)

// pgUndefinedTable is the Postgres error code raised when a relation
// does not exist. It lets us distinguish "ledger not migrated" from a
// generic query failure without matching on message text.
const pgUndefinedTable = "42P01"

// CreditPostgres is a PostgreSQL implementation of repository.CreditRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type CreditPostgres struct {
	db *sql.DB
}

// NewCreditPostgres creates a new CreditPostgres repository.
func NewCreditPostgres(db *sql.DB) *CreditPostgres {
	return &CreditPostgres{db: db}
}

var _ repository.CreditRepository = (*CreditPostgres)(nil)

// EnsureExists inserts the balance row if missing. ON CONFLICT makes the
// get-or-create race-free: two concurrent calls insert exactly one row.
func (r *CreditPostgres) EnsureExists(ctx context.Context, userID int64, initialCredits int) error {
	const q = `
		INSERT INTO user_credits (user_id, credits, is_active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, q, userID, initialCredits); err != nil {
		return classify(err)
	}
	return nil
}

// ResetExpired performs the lazy expiry reset in a single conditional
// update. Two concurrent resets are idempotent (last writer wins).
func (r *CreditPostgres) ResetExpired(ctx context.Context, userID int64, initialCredits int, now time.Time) error {
	const q = `
		UPDATE user_credits
		SET credits = $2, expires_at = NULL, is_active = TRUE
		WHERE user_id = $1 AND expires_at IS NOT NULL AND expires_at <= $3
	`
	if _, err := r.db.ExecContext(ctx, q, userID, initialCredits, now); err != nil {
		return classify(err)
	}
	return nil
}

// FindByUserID fetches the balance row for a user.
func (r *CreditPostgres) FindByUserID(ctx context.Context, userID int64) (*model.CreditBalance, error) {
	const q = `
		SELECT user_id, credits, is_active, expires_at
		FROM user_credits
		WHERE user_id = $1
	`
	var b model.CreditBalance
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&b.UserID, &b.Credits, &b.IsActive, &b.ExpiresAt)
	if err != nil {
		return nil, classify(err)
	}
	return &b, nil
}

// Deduct subtracts amount in one UPDATE so concurrent deductions
// serialize on the row and never lose updates. GREATEST floors the
// balance at zero.
func (r *CreditPostgres) Deduct(ctx context.Context, userID int64, amount int) (*model.CreditBalance, error) {
	const q = `
		UPDATE user_credits
		SET credits = GREATEST(credits - $2, 0)
		WHERE user_id = $1
		RETURNING user_id, credits, is_active, expires_at
	`
	var b model.CreditBalance
	err := r.db.QueryRowContext(ctx, q, userID, amount).Scan(&b.UserID, &b.Credits, &b.IsActive, &b.ExpiresAt)
	if err != nil {
		return nil, classify(err)
	}
	return &b, nil
}

// classify maps the undefined-table error onto repository.ErrUnavailable
// and passes everything else through unchanged.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
		return fmt.Errorf("%w: %s", repository.ErrUnavailable, pgErr.Message)
	}
	return err
}
