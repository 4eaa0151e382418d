package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"nomia/internal/model"
	"nomia/internal/repository"
)

func TestOrganisationPostgres_FindByTeamAndUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOrganisationPostgres(db)
	ctx := context.Background()

	columns := []string{"id", "name", "claim_id", "envelope_item_count", "flags", "sub_id", "sub_status"}

	t.Run("found with subscription and flags", func(t *testing.T) {
		rows := sqlmock.NewRows(columns).
			AddRow("org_1", "Acme", "paid", 10, []byte(`{"unlimitedDocuments":true,"allowCustomBranding":false}`), "sub_1", "ACTIVE")

		mock.ExpectQuery("SELECT (.+) FROM organisations o").
			WithArgs(int64(7), int64(1)).
			WillReturnRows(rows)

		org, err := repo.FindByTeamAndUser(ctx, 7, 1)

		assert.NoError(t, err)
		assert.Equal(t, "org_1", org.ID)
		assert.Equal(t, "paid", org.ClaimID)
		assert.Equal(t, "paid", org.Claim.ID)
		assert.Equal(t, 10, org.Claim.EnvelopeItemCount)
		assert.True(t, org.Claim.Flags.UnlimitedDocuments)
		assert.False(t, org.Claim.Flags.AllowCustomBranding)
		assert.NotNil(t, org.Subscription)
		assert.Equal(t, model.SubscriptionActive, org.Subscription.Status)
	})

	t.Run("found without subscription", func(t *testing.T) {
		rows := sqlmock.NewRows(columns).
			AddRow("org_1", "Acme", "free", 5, []byte(`{}`), nil, nil)

		mock.ExpectQuery("SELECT (.+) FROM organisations o").
			WithArgs(int64(7), int64(1)).
			WillReturnRows(rows)

		org, err := repo.FindByTeamAndUser(ctx, 7, 1)

		assert.NoError(t, err)
		assert.Nil(t, org.Subscription)
		assert.False(t, org.Claim.Flags.UnlimitedDocuments)
	})

	t.Run("empty flags column", func(t *testing.T) {
		rows := sqlmock.NewRows(columns).
			AddRow("org_1", "Acme", "free", 5, nil, nil, nil)

		mock.ExpectQuery("SELECT (.+) FROM organisations o").
			WithArgs(int64(7), int64(1)).
			WillReturnRows(rows)

		org, err := repo.FindByTeamAndUser(ctx, 7, 1)

		assert.NoError(t, err)
		assert.False(t, org.Claim.Flags.UnlimitedDocuments)
	})

	t.Run("malformed flags", func(t *testing.T) {
		rows := sqlmock.NewRows(columns).
			AddRow("org_1", "Acme", "free", 5, []byte(`not-json`), nil, nil)

		mock.ExpectQuery("SELECT (.+) FROM organisations o").
			WithArgs(int64(7), int64(1)).
			WillReturnRows(rows)

		org, err := repo.FindByTeamAndUser(ctx, 7, 1)

		assert.Error(t, err)
		assert.Nil(t, org)
	})

	t.Run("not a member or no claim", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM organisations o").
			WithArgs(int64(7), int64(2)).
			WillReturnError(sql.ErrNoRows)

		org, err := repo.FindByTeamAndUser(ctx, 7, 2)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, org)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganisationPostgres_CountDirectTemplates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOrganisationPostgres(db)
	ctx := context.Background()

	t.Run("counts linked templates", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"count"}).AddRow(3)

		mock.ExpectQuery("SELECT COUNT").
			WithArgs("org_1").
			WillReturnRows(rows)

		count, err := repo.CountDirectTemplates(ctx, "org_1")

		assert.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").
			WithArgs("org_1").
			WillReturnError(sql.ErrConnDone)

		_, err := repo.CountDirectTemplates(ctx, "org_1")

		assert.Error(t, err)
	})
}

func TestOrganisationPostgres_FindTeams(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewOrganisationPostgres(db)
	ctx := context.Background()

	columns := []string{"id", "organisation_id", "name", "url"}
	page := repository.PageQuery{Limit: 10, Offset: 0}

	t.Run("lists member teams", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT(.+) FROM teams t").
			WithArgs(int64(1), "", "").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		mock.ExpectQuery("SELECT (.+) FROM teams t").
			WithArgs(int64(1), "", "", 10, 0).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(int64(9), "org_1", "Sales", "sales").
				AddRow(int64(7), "org_1", "Legal", "legal"))

		res, err := repo.FindTeams(ctx, 1, "", "", page)

		assert.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, model.Team{ID: 9, OrganisationID: "org_1", Name: "Sales", URL: "sales"}, res.Items[0])
	})

	t.Run("passes filters through", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT(.+) FROM teams t").
			WithArgs(int64(1), "org_2", "sal").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery("SELECT (.+) FROM teams t").
			WithArgs(int64(1), "org_2", "sal", 5, 5).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(int64(9), "org_2", "Sales", "sales"))

		res, err := repo.FindTeams(ctx, 1, "org_2", "sal", repository.PageQuery{Limit: 5, Offset: 5})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
	})

	t.Run("no teams", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT(.+) FROM teams t").
			WithArgs(int64(2), "", "").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery("SELECT (.+) FROM teams t").
			WithArgs(int64(2), "", "", 10, 0).
			WillReturnRows(sqlmock.NewRows(columns))

		res, err := repo.FindTeams(ctx, 2, "", "", page)

		assert.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	})

	t.Run("count query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT(.+) FROM teams t").
			WithArgs(int64(1), "", "").
			WillReturnError(sql.ErrConnDone)

		res, err := repo.FindTeams(ctx, 1, "", "", page)

		assert.Error(t, err)
		assert.Nil(t, res)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionPostgres_FindUserByToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewSessionPostgres(db)
	ctx := context.Background()

	t.Run("valid session", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "name"}).
			AddRow(int64(1), "user@example.com", "Test User")

		mock.ExpectQuery("SELECT (.+) FROM sessions s").
			WithArgs("token-1").
			WillReturnRows(rows)

		user, err := repo.FindUserByToken(ctx, "token-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "user@example.com", user.Email)
	})

	t.Run("expired or unknown token", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM sessions s").
			WithArgs("stale").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.FindUserByToken(ctx, "stale")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, user)
	})
}
