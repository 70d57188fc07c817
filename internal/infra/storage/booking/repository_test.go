package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil, "test")
	return NewRepository(wrapped), wrapped, mock
}

func txContext(t *testing.T, db *dbmetrics.DB, mock sqlmock.Sqlmock) context.Context {
	t.Helper()

	mock.ExpectBegin()
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	return dbmetrics.WithTx(context.Background(), tx)
}

func candidate(t *testing.T) *domain.Booking {
	t.Helper()

	slot, err := domain.ParseTimeSlot("10:00-11:00")
	require.NoError(t, err)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return &domain.Booking{
		MentorID:    7,
		MenteeID:    42,
		BookingDate: &date,
		Slot:        &slot,
		StartsAt:    date.Add(10 * time.Hour),
		EndsAt:      date.Add(11 * time.Hour),
		Status:      domain.StatusPending,
	}
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns)
}

func TestRepository_InsertIfNoConflict_AdHoc(t *testing.T) {
	repo, db, mock := newRepo(t)
	ctx := txContext(t, db, mock)
	now := time.Now()

	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
		WithArgs("booking:7:2026-03-02:10:00").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE .*catalog_session_id IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO bookings \(mentor_id,mentee_id,booking_date,slot_start,slot_end,catalog_session_id,starts_at,ends_at,message,status\) .* RETURNING id, created_at, updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(15), now, now))

	created, err := repo.InsertIfNoConflict(ctx, candidate(t))
	require.NoError(t, err)
	assert.Equal(t, int64(15), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertIfNoConflict_ActiveBookingExists(t *testing.T) {
	repo, db, mock := newRepo(t)
	ctx := txContext(t, db, mock)

	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := repo.InsertIfNoConflict(ctx, candidate(t))
	require.ErrorIs(t, err, ErrSlotConflict)
	assert.ErrorIs(t, err, domain.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertIfNoConflict_UniqueViolation(t *testing.T) {
	repo, db, mock := newRepo(t)
	ctx := txContext(t, db, mock)

	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_active_slot_uniq"})

	_, err := repo.InsertIfNoConflict(ctx, candidate(t))
	require.ErrorIs(t, err, ErrSlotConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertIfNoConflict_CatalogFull(t *testing.T) {
	repo, db, mock := newRepo(t)
	ctx := txContext(t, db, mock)

	sessionID := int64(3)
	b := &domain.Booking{
		MentorID:         7,
		MenteeID:         42,
		CatalogSessionID: &sessionID,
		StartsAt:         time.Date(2026, 3, 5, 18, 0, 0, 0, time.UTC),
		EndsAt:           time.Date(2026, 3, 5, 19, 0, 0, 0, time.UTC),
		Status:           domain.StatusPending,
	}

	mock.ExpectQuery(`SELECT capacity FROM catalog_sessions WHERE id = \$1 FOR UPDATE`).
		WithArgs(sessionID).
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE catalog_session_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := repo.InsertIfNoConflict(ctx, b)
	require.ErrorIs(t, err, ErrCapacityExhausted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertIfNoConflict_CatalogMissing(t *testing.T) {
	repo, db, mock := newRepo(t)
	ctx := txContext(t, db, mock)

	sessionID := int64(3)
	mock.ExpectQuery(`SELECT capacity FROM catalog_sessions`).WillReturnError(sql.ErrNoRows)

	_, err := repo.InsertIfNoConflict(ctx, &domain.Booking{CatalogSessionID: &sessionID})
	require.ErrorIs(t, err, ErrCatalogSessionNotFound)
}

func TestRepository_InsertIfNoConflict_RequiresTransaction(t *testing.T) {
	repo, _, _ := newRepo(t)

	_, err := repo.InsertIfNoConflict(context.Background(), candidate(t))
	require.ErrorIs(t, err, ErrTransactionRequired)
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Now()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, mentor_id, .* FROM bookings WHERE id = \$1$`).
		WithArgs(int64(15)).
		WillReturnRows(bookingRows().AddRow(
			int64(15), int64(7), int64(42), date, "10:00:00", "11:00:00", nil,
			date.Add(10*time.Hour), date.Add(11*time.Hour), "хочу разобрать код",
			"confirmed", nil, "room-1", nil, nil, now, now,
		))

	b, err := repo.GetByID(context.Background(), 15)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, b.Status)
	require.NotNil(t, b.Slot)
	assert.Equal(t, "10:00-11:00", b.Slot.String())
	assert.True(t, b.IsAdHoc())
	require.NotNil(t, b.MeetingRef)
	assert.Equal(t, "room-1", *b.MeetingRef)
	assert.Nil(t, b.JoinedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_LocksInTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)
	ctx := txContext(t, db, mock)

	mock.ExpectQuery(`FROM bookings WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(15)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(ctx, 15)
	require.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ApplyStatusChange_StatusGuard(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\), meeting_ref = \$2 WHERE id = \$3 AND status = \$4`).
		WithArgs(domain.StatusConfirmed, "room-abc", int64(15), domain.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ref := "room-abc"
	_, err := repo.ApplyStatusChange(context.Background(), 15, domain.StatusPending, domain.StatusChange{
		Status:     domain.StatusConfirmed,
		MeetingRef: &ref,
	})
	require.ErrorIs(t, err, ErrStatusChanged)
	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkJoined(t *testing.T) {
	repo, _, mock := newRepo(t)
	at := time.Date(2026, 3, 2, 9, 55, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE bookings SET joined_at = COALESCE\(joined_at, \$1\) WHERE id = \$2 AND status = \$3`).
		WithArgs(at, int64(15), domain.StatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkJoined(context.Background(), 15, at))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkJoined_NotConfirmed(t *testing.T) {
	repo, _, mock := newRepo(t)
	at := time.Date(2026, 3, 2, 9, 55, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE bookings SET joined_at = COALESCE\(joined_at, \$1\) WHERE id = \$2 AND status = \$3`).
		WithArgs(at, int64(15), domain.StatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkJoined(context.Background(), 15, at)
	assert.ErrorIs(t, err, ErrNotJoinable)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_ByRole(t *testing.T) {
	repo, _, mock := newRepo(t)
	status := domain.StatusPending

	mock.ExpectQuery(`FROM bookings WHERE mentee_id = \$1 AND status = \$2 ORDER BY starts_at DESC, id DESC`).
		WithArgs(int64(42), status).
		WillReturnRows(bookingRows())

	list, err := repo.List(context.Background(), domain.BookingsFilter{UserID: 42, Role: domain.RoleMentee, Status: &status})
	require.NoError(t, err)
	assert.Empty(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}
