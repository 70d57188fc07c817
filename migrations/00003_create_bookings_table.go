package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateBookingsTable, downCreateBookingsTable)
}

func upCreateBookingsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS bookings (
			id BIGSERIAL PRIMARY KEY,
			mentor_id BIGINT NOT NULL,
			mentee_id BIGINT NOT NULL,
			booking_date DATE,
			slot_start TIME,
			slot_end TIME,
			catalog_session_id BIGINT REFERENCES catalog_sessions(id),
			starts_at TIMESTAMP WITH TIME ZONE NOT NULL,
			ends_at TIMESTAMP WITH TIME ZONE NOT NULL,
			message TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'confirmed', 'rejected', 'cancelled', 'completed')),
			rejection_reason TEXT,
			meeting_ref VARCHAR(64),
			joined_at TIMESTAMP WITH TIME ZONE,
			cancelled_by BIGINT,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
			CONSTRAINT bookings_slot_ref CHECK (
				(catalog_session_id IS NULL AND booking_date IS NOT NULL AND slot_start IS NOT NULL AND slot_end IS NOT NULL)
				OR (catalog_session_id IS NOT NULL AND booking_date IS NULL AND slot_start IS NULL AND slot_end IS NULL)
			)
		);

		CREATE UNIQUE INDEX IF NOT EXISTS bookings_active_slot_uniq
			ON bookings (mentor_id, booking_date, slot_start)
			WHERE status IN ('pending', 'confirmed') AND catalog_session_id IS NULL;

		CREATE INDEX IF NOT EXISTS idx_bookings_mentor ON bookings (mentor_id, starts_at);
		CREATE INDEX IF NOT EXISTS idx_bookings_mentee ON bookings (mentee_id, starts_at);
		CREATE INDEX IF NOT EXISTS idx_bookings_catalog_session ON bookings (catalog_session_id) WHERE catalog_session_id IS NOT NULL;
	`)
	return err
}

func downCreateBookingsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS bookings;`)
	return err
}
