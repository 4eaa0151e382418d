package repository

import (
	"context"

	"nomia/internal/model"
)

// PageQuery bounds a listing query to one page.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult carries one page of items along with the unbounded total.
type PageResult[T any] struct {
	Items []T
	Total int
}

// OrganisationRepository defines read access to organisations, their
// claims, subscriptions and teams.
type OrganisationRepository interface {
	// FindByTeamAndUser returns the organisation that owns teamID and
	// counts userID among its members, with its claim and subscription
	// loaded. Returns sql.ErrNoRows when no such organisation exists or
	// it has no claim.
	FindByTeamAndUser(ctx context.Context, teamID, userID int64) (*model.Organisation, error)

	// CountDirectTemplates returns the number of template-type envelopes
	// in the organisation that are exposed via a direct link.
	CountDirectTemplates(ctx context.Context, organisationID string) (int, error)

	// FindTeams returns the page of teams whose organisation counts
	// userID among its members, ordered by name descending.
	// organisationID narrows
	// the listing to one organisation and query filters by a
	// case-insensitive name match; either may be empty.
	FindTeams(ctx context.Context, userID int64, organisationID, query string, page PageQuery) (*PageResult[model.Team], error)
}

// SessionRepository resolves a session token to its user. Expired or
// unknown tokens return sql.ErrNoRows.
type SessionRepository interface {
	FindUserByToken(ctx context.Context, token string) (*model.User, error)
}
