package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateCatalogSessionsTable, downCreateCatalogSessionsTable)
}

func upCreateCatalogSessionsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS catalog_sessions (
			id BIGSERIAL PRIMARY KEY,
			mentor_id BIGINT NOT NULL,
			title VARCHAR(200) NOT NULL,
			description TEXT,
			starts_at TIMESTAMP WITH TIME ZONE NOT NULL,
			duration_minutes INT NOT NULL CHECK (duration_minutes > 0),
			capacity INT NOT NULL DEFAULT 1 CHECK (capacity > 0),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_catalog_sessions_starts_at ON catalog_sessions (starts_at);
		CREATE INDEX IF NOT EXISTS idx_catalog_sessions_mentor ON catalog_sessions (mentor_id);
	`)
	return err
}

func downCreateCatalogSessionsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS catalog_sessions;`)
	return err
}
