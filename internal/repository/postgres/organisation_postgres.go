package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"nomia/internal/model"
	"nomia/internal/repository"
)

// OrganisationPostgres is a PostgreSQL implementation of
// repository.OrganisationRepository.
type OrganisationPostgres struct {
	db *sql.DB
}

// NewOrganisationPostgres creates a new OrganisationPostgres repository.
func NewOrganisationPostgres(db *sql.DB) *OrganisationPostgres {
	return &OrganisationPostgres{db: db}
}

var _ repository.OrganisationRepository = (*OrganisationPostgres)(nil)

// FindByTeamAndUser loads the organisation owning the team with the user
// as a member, joined with its claim and optional subscription. The
// inner join on the claim means an organisation without one behaves as
// not found, which is what callers expect.
func (r *OrganisationPostgres) FindByTeamAndUser(ctx context.Context, teamID, userID int64) (*model.Organisation, error) {
	const q = `
		SELECT o.id, o.name, o.claim_id,
		       c.envelope_item_count, c.flags,
		       s.id, s.status
		FROM organisations o
		JOIN organisation_claims c ON c.id = o.claim_id
		LEFT JOIN subscriptions s ON s.organisation_id = o.id
		WHERE EXISTS (
			SELECT 1 FROM teams t
			WHERE t.organisation_id = o.id AND t.id = $1
		)
		AND EXISTS (
			SELECT 1 FROM organisation_members m
			WHERE m.organisation_id = o.id AND m.user_id = $2
		)
	`
	var (
		org      model.Organisation
		flagsRaw []byte
		subID    sql.NullString
		subState sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, teamID, userID).Scan(
		&org.ID,
		&org.Name,
		&org.ClaimID,
		&org.Claim.EnvelopeItemCount,
		&flagsRaw,
		&subID,
		&subState,
	)
	if err != nil {
		return nil, err
	}

	org.Claim.ID = org.ClaimID
	if len(flagsRaw) > 0 {
		if err := json.Unmarshal(flagsRaw, &org.Claim.Flags); err != nil {
			return nil, fmt.Errorf("decode claim flags: %w", err)
		}
	}
	if subID.Valid {
		org.Subscription = &model.Subscription{
			ID:     subID.String,
			Status: model.SubscriptionStatus(subState.String),
		}
	}
	return &org, nil
}

// CountDirectTemplates counts template envelopes with a direct link
// across all of the organisation's teams.
func (r *OrganisationPostgres) CountDirectTemplates(ctx context.Context, organisationID string) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM envelopes e
		JOIN teams t ON t.id = e.team_id
		WHERE t.organisation_id = $1
		  AND e.type = 'TEMPLATE'
		  AND EXISTS (
			SELECT 1 FROM envelope_direct_links dl
			WHERE dl.envelope_id = e.id
		  )
	`
	var count int
	if err := r.db.QueryRowContext(ctx, q, organisationID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// FindTeams pages through the teams visible to the user via organisation
// membership. Filters are optional: an empty organisationID spans all of
// the user's organisations and an empty query matches every name.
func (r *OrganisationPostgres) FindTeams(ctx context.Context, userID int64, organisationID, query string, page repository.PageQuery) (*repository.PageResult[model.Team], error) {
	const from = `
		FROM teams t
		JOIN organisation_members m
		  ON m.organisation_id = t.organisation_id AND m.user_id = $1
		WHERE ($2 = '' OR t.organisation_id = $2)
		  AND ($3 = '' OR t.name ILIKE '%' || $3 || '%')
	`

	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) `+from, userID, organisationID, query).Scan(&total)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.organisation_id, t.name, t.url `+from+` ORDER BY t.name DESC LIMIT $4 OFFSET $5`,
		userID, organisationID, query, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]model.Team, 0, page.Limit)
	for rows.Next() {
		var team model.Team
		if err := rows.Scan(&team.ID, &team.OrganisationID, &team.Name, &team.URL); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Team]{Items: teams, Total: total}, nil
}
