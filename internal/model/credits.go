package model

import "time"

// CreditBalance represents one user's remaining signing credits.
// A row is created lazily on first access and never goes negative.
// ExpiresAt, when set and in the past, causes the next read to reset
// the balance to the initial grant.
type CreditBalance struct {
	UserID    int64      `json:"userId"`
	Credits   int        `json:"credits"`
	IsActive  bool       `json:"isActive"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the balance carries an expiry that has passed.
func (b *CreditBalance) Expired(now time.Time) bool {
	return b.ExpiresAt != nil && !b.ExpiresAt.After(now)
}
