package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/pkg/ptr"
)

func adHocBooking(t *testing.T, menteeID int64) *domain.Booking {
	t.Helper()
	slot, err := domain.ParseTimeSlot("10:00-11:00")
	require.NoError(t, err)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return &domain.Booking{
		MentorID:    7,
		MenteeID:    menteeID,
		BookingDate: &date,
		Slot:        &slot,
		StartsAt:    date.Add(10 * time.Hour),
		EndsAt:      date.Add(11 * time.Hour),
		Status:      domain.StatusPending,
	}
}

func TestBookingRepository_ConcurrentInsertSameSlot(t *testing.T) {
	db := NewDB()
	repo := NewBookingRepository(db)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(menteeID int64) {
			defer wg.Done()
			err := db.Do(context.Background(), func(ctx context.Context) error {
				_, err := repo.InsertIfNoConflict(ctx, adHocBooking(t, menteeID))
				return err
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, domain.ErrConflict):
				conflicts.Add(1)
			}
		}(int64(100 + i))
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(49), conflicts.Load())
}

func TestBookingRepository_SlotFreedAfterTerminalStatus(t *testing.T) {
	db := NewDB()
	repo := NewBookingRepository(db)
	ctx := context.Background()

	created, err := repo.InsertIfNoConflict(ctx, adHocBooking(t, 1))
	require.NoError(t, err)

	_, err = repo.InsertIfNoConflict(ctx, adHocBooking(t, 2))
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = repo.ApplyStatusChange(ctx, created.ID, domain.StatusPending, domain.StatusChange{
		Status:          domain.StatusRejected,
		RejectionReason: ptr.Ptr("расписание изменилось"),
	})
	require.NoError(t, err)

	_, err = repo.InsertIfNoConflict(ctx, adHocBooking(t, 2))
	require.NoError(t, err)
}

func TestBookingRepository_ApplyStatusChangeGuard(t *testing.T) {
	db := NewDB()
	repo := NewBookingRepository(db)
	ctx := context.Background()

	created, err := repo.InsertIfNoConflict(ctx, adHocBooking(t, 1))
	require.NoError(t, err)

	_, err = repo.ApplyStatusChange(ctx, created.ID, domain.StatusConfirmed, domain.StatusChange{Status: domain.StatusCompleted})
	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)

	_, err = repo.ApplyStatusChange(ctx, 999, domain.StatusPending, domain.StatusChange{Status: domain.StatusCancelled})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingRepository_MarkJoinedRequiresConfirmed(t *testing.T) {
	db := NewDB()
	repo := NewBookingRepository(db)
	ctx := context.Background()
	at := time.Date(2026, 3, 2, 9, 55, 0, 0, time.UTC)

	created, err := repo.InsertIfNoConflict(ctx, adHocBooking(t, 1))
	require.NoError(t, err)

	err = repo.MarkJoined(ctx, created.ID, at)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = repo.ApplyStatusChange(ctx, created.ID, domain.StatusPending, domain.StatusChange{
		Status: domain.StatusConfirmed, MeetingRef: ptr.Ptr("room-abc"),
	})
	require.NoError(t, err)
	require.NoError(t, repo.MarkJoined(ctx, created.ID, at))

	_, err = repo.ApplyStatusChange(ctx, created.ID, domain.StatusConfirmed, domain.StatusChange{Status: domain.StatusCancelled})
	require.NoError(t, err)
	err = repo.MarkJoined(ctx, created.ID, at.Add(time.Minute))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.JoinedAt)
	assert.Equal(t, at, *stored.JoinedAt)
}

func TestCreditRepository_RefundWithoutAccount(t *testing.T) {
	db := NewDB()
	credits := NewCreditRepository(db)
	ctx := context.Background()

	err := credits.Refund(ctx, 42, 15)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	balance, err := credits.Balance(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
	assert.Empty(t, db.ledger)
}

func TestDB_RollbackRestoresState(t *testing.T) {
	db := NewDB()
	bookings := NewBookingRepository(db)
	credits := NewCreditRepository(db)
	ctx := context.Background()

	_, err := credits.Grant(ctx, 1, 2)
	require.NoError(t, err)

	errLater := errors.New("later step failed")
	err = db.Do(ctx, func(ctx context.Context) error {
		created, err := bookings.InsertIfNoConflict(ctx, adHocBooking(t, 1))
		if err != nil {
			return err
		}
		if err := credits.Reserve(ctx, 1, created.ID); err != nil {
			return err
		}
		return errLater
	})
	require.ErrorIs(t, err, errLater)

	balance, err := credits.Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, balance)

	list, err := bookings.List(ctx, domain.BookingsFilter{UserID: 1, Role: domain.RoleAny})
	require.NoError(t, err)
	assert.Empty(t, list)

	entries, err := credits.EntriesByBooking(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCatalogRepository_Capacity(t *testing.T) {
	db := NewDB()
	catalog := NewCatalogRepository(db)
	bookings := NewBookingRepository(db)
	ctx := context.Background()

	session, err := catalog.Create(ctx, &domain.CatalogSession{
		MentorID:        7,
		Title:           "Go code review",
		StartsAt:        time.Date(2026, 3, 5, 18, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Capacity:        2,
	})
	require.NoError(t, err)

	seat := func(menteeID int64) error {
		_, err := bookings.InsertIfNoConflict(ctx, &domain.Booking{
			MentorID:         7,
			MenteeID:         menteeID,
			CatalogSessionID: &session.ID,
			StartsAt:         session.StartsAt,
			EndsAt:           session.EndsAt(),
			Status:           domain.StatusPending,
		})
		return err
	}

	require.NoError(t, seat(1))
	require.NoError(t, seat(2))
	assert.ErrorIs(t, seat(3), domain.ErrConflict)

	got, err := catalog.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFull())
	assert.Equal(t, 2, got.ActiveBookings)
}

func TestAvailabilityRepository_Replace(t *testing.T) {
	db := NewDB()
	repo := NewAvailabilityRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, 7)
	require.ErrorIs(t, err, domain.ErrNotFound)

	slot, err := domain.ParseTimeSlot("10:00-11:00")
	require.NoError(t, err)

	_, err = repo.Replace(ctx, &domain.MentorAvailability{
		MentorID: 7,
		Weekly:   domain.WeeklyAvailability{time.Monday: {slot, slot}},
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []domain.TimeSlot{slot}, got.Weekly[time.Monday])
	assert.Empty(t, got.Weekly[time.Tuesday])
}
