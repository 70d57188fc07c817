package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateCreditTables, downCreateCreditTables)
}

func upCreateCreditTables(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS mentee_credits (
			mentee_id BIGINT PRIMARY KEY,
			remaining INT NOT NULL DEFAULT 0 CHECK (remaining >= 0),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS credit_ledger (
			id BIGSERIAL PRIMARY KEY,
			mentee_id BIGINT NOT NULL,
			booking_id BIGINT REFERENCES bookings(id),
			delta INT NOT NULL,
			reason VARCHAR(20) NOT NULL CHECK (reason IN ('reserve', 'refund', 'grant')),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_credit_ledger_booking ON credit_ledger (booking_id);
		CREATE INDEX IF NOT EXISTS idx_credit_ledger_mentee ON credit_ledger (mentee_id);
	`)
	return err
}

func downCreateCreditTables(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DROP TABLE IF EXISTS credit_ledger;
		DROP TABLE IF EXISTS mentee_credits;
	`)
	return err
}
