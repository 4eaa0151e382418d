package migration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id    BIGSERIAL PRIMARY KEY,
  email TEXT      NOT NULL UNIQUE,
  name  TEXT      NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_table_sessions",
		SQL: `CREATE TABLE IF NOT EXISTS sessions (
  token      TEXT        PRIMARY KEY,
  user_id    BIGINT      NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  expires_at TIMESTAMPTZ NOT NULL
);`,
	},
	{
		Name: "create_table_user_credits",
		SQL: `CREATE TABLE IF NOT EXISTS user_credits (
  user_id    BIGINT      PRIMARY KEY,
  credits    INTEGER     NOT NULL CHECK (credits >= 0),
  is_active  BOOLEAN     NOT NULL DEFAULT TRUE,
  expires_at TIMESTAMPTZ
);`,
	},
	{
		Name: "create_table_organisation_claims",
		SQL: `CREATE TABLE IF NOT EXISTS organisation_claims (
  id                  TEXT    PRIMARY KEY,
  envelope_item_count INTEGER NOT NULL DEFAULT 0 CHECK (envelope_item_count >= 0),
  flags               JSONB   NOT NULL DEFAULT '{}'::jsonb
);`,
	},
	{
		Name: "create_table_organisations",
		SQL: `CREATE TABLE IF NOT EXISTS organisations (
  id       TEXT PRIMARY KEY,
  name     TEXT NOT NULL,
  claim_id TEXT NOT NULL REFERENCES organisation_claims (id)
);`,
	},
	{
		Name: "create_table_subscriptions",
		SQL: `CREATE TABLE IF NOT EXISTS subscriptions (
  id              TEXT PRIMARY KEY,
  organisation_id TEXT NOT NULL UNIQUE REFERENCES organisations (id) ON DELETE CASCADE,
  status          TEXT NOT NULL DEFAULT 'ACTIVE'
);`,
	},
	{
		Name: "create_table_teams",
		SQL: `CREATE TABLE IF NOT EXISTS teams (
  id              BIGSERIAL PRIMARY KEY,
  organisation_id TEXT      NOT NULL REFERENCES organisations (id) ON DELETE CASCADE,
  name            TEXT      NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_table_organisation_members",
		SQL: `CREATE TABLE IF NOT EXISTS organisation_members (
  organisation_id TEXT   NOT NULL REFERENCES organisations (id) ON DELETE CASCADE,
  user_id         BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  PRIMARY KEY (organisation_id, user_id)
);`,
	},
	{
		Name: "create_table_envelopes",
		SQL: `CREATE TABLE IF NOT EXISTS envelopes (
  id         TEXT        PRIMARY KEY,
  team_id    BIGINT      NOT NULL REFERENCES teams (id) ON DELETE CASCADE,
  type       TEXT        NOT NULL CHECK (type IN ('DOCUMENT', 'TEMPLATE')),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_envelope_direct_links",
		SQL: `CREATE TABLE IF NOT EXISTS envelope_direct_links (
  envelope_id TEXT PRIMARY KEY REFERENCES envelopes (id) ON DELETE CASCADE,
  token       TEXT NOT NULL UNIQUE
);`,
	},
	{
		Name: "create_table_blob_storage",
		SQL: `CREATE TABLE IF NOT EXISTS blob_storage (
  key          TEXT        PRIMARY KEY,
  data         BYTEA       NOT NULL,
  content_type TEXT        NOT NULL DEFAULT '',
  size         BIGINT      NOT NULL CHECK (size >= 0),
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_envelopes_team_type",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_envelopes_team_type ON envelopes (team_id, type);`,
	},
}

// EnsureMigrated checks if the 'user_credits' sentinel table exists and
// runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("component", "database").
		Str("db_host", dbHost).
		Logger()

	start := time.Now()

	var exists bool
	query := "SELECT to_regclass('public.user_credits') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("event", "db_migration_failed").Send()
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logger.Info().
			Str("event", "db_migration_skip").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	logger.Info().Str("event", "db_migration_start").Send()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logger.Error().Err(err).
				Str("event", "db_migration_failed").
				Str("migration_step", step.Name).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Send()
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logger.Info().
			Str("event", "db_migration_step").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Send()
	}

	logger.Info().
		Str("event", "db_migration_success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Send()

	return nil
}
