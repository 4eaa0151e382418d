package postgres

import (
	"context"
	"database/sql"

	"nomia/internal/model"
	"nomia/internal/repository"
)

// SessionPostgres resolves bearer tokens against the sessions table.
type SessionPostgres struct {
	db *sql.DB
}

// NewSessionPostgres creates a new SessionPostgres repository.
func NewSessionPostgres(db *sql.DB) *SessionPostgres {
	return &SessionPostgres{db: db}
}

var _ repository.SessionRepository = (*SessionPostgres)(nil)

// FindUserByToken returns the user owning a non-expired session token.
func (r *SessionPostgres) FindUserByToken(ctx context.Context, token string) (*model.User, error) {
	const q = `
		SELECT u.id, u.email, u.name
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = $1 AND s.expires_at > now()
	`
	var u model.User
	if err := r.db.QueryRowContext(ctx, q, token).Scan(&u.ID, &u.Email, &u.Name); err != nil {
		return nil, err
	}
	return &u, nil
}
