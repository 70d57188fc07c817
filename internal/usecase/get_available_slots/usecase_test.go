package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-MentoringService/internal/integrations/mentorprofile"
	"github.com/m04kA/SMC-MentoringService/internal/service/availability"
	availabilityModels "github.com/m04kA/SMC-MentoringService/internal/service/availability/models"
	"github.com/m04kA/SMC-MentoringService/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type mentors map[int64]domain.MentorStatus

func (m mentors) GetMentor(_ context.Context, id int64) (*domain.Mentor, error) {
	status, ok := m[id]
	if !ok {
		return nil, mentorprofile.ErrMentorNotFound
	}
	return &domain.Mentor{ID: id, Status: status}, nil
}

// понедельник 2026-03-02, 10:30 UTC
var now = time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)

func newUseCase(t *testing.T) (*UseCase, *memory.DB, *memory.BookingRepository) {
	t.Helper()
	db := memory.NewDB()
	bookings := memory.NewBookingRepository(db)
	availabilityService := availability.NewService(memory.NewAvailabilityRepository(db), logger.NewNop())

	_, err := availabilityService.Set(context.Background(), &availabilityModels.SetAvailabilityRequest{
		UserID: 7, MentorID: 7,
		Weekly: map[string][]string{"monday": {"14:00-15:00", "10:00-11:00", "11:00-12:00"}},
	})
	require.NoError(t, err)

	uc := NewUseCase(bookings, availabilityService, mentors{7: domain.MentorApproved, 8: domain.MentorRejected}, time.UTC, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc, db, bookings
}

func TestGetAvailableSlots_MarksTakenAndStarted(t *testing.T) {
	uc, db, bookings := newUseCase(t)

	slot, err := domain.ParseTimeSlot("14:00-15:00")
	require.NoError(t, err)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Do(context.Background(), func(ctx context.Context) error {
		_, err := bookings.InsertIfNoConflict(ctx, &domain.Booking{
			MentorID: 7, MenteeID: 42, BookingDate: &date, Slot: &slot,
			StartsAt: date.Add(14 * time.Hour), EndsAt: date.Add(15 * time.Hour),
			Status: domain.StatusPending,
		})
		return err
	}))

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: date})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	got := map[string]bool{}
	for _, s := range resp.Slots {
		got[s.Slot.String()] = s.Available
	}
	assert.Equal(t, map[string]bool{
		"10:00-11:00": false, // уже началось
		"11:00-12:00": true,
		"14:00-15:00": false, // занято
	}, got)
	assert.Equal(t, "10:00-11:00", resp.Slots[0].Slot.String(), "slots are ordered")
}

func TestGetAvailableSlots_NoOfferOnWeekday(t *testing.T) {
	uc, _, _ := newUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestGetAvailableSlots_Errors(t *testing.T) {
	uc, _, _ := newUseCase(t)
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(context.Background(), &Request{MentorID: 8, Date: date})
	assert.ErrorIs(t, err, domain.ErrNotBookable)

	_, err = uc.Execute(context.Background(), &Request{MentorID: 9, Date: date})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Execute(context.Background(), &Request{MentorID: 0, Date: date})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
