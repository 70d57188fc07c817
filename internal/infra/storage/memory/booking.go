package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/booking"
)

// BookingRepository бронирования в памяти с теми же гарантиями, что и PostgreSQL-реализация
type BookingRepository struct {
	db *DB
}

// NewBookingRepository создает репозиторий бронирований поверх db
func NewBookingRepository(db *DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// InsertIfNoConflict проверяет конфликт слота или вместимость сессии и вставляет бронирование
func (r *BookingRepository) InsertIfNoConflict(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	j, release := r.db.enter(ctx)
	defer release()

	if booking.IsAdHoc() {
		for _, b := range r.db.bookings {
			if b.IsAdHoc() && b.IsActive() && b.MentorID == booking.MentorID &&
				sameDate(*b.BookingDate, *booking.BookingDate) && b.Slot.Start == booking.Slot.Start {
				return nil, bookingRepo.ErrSlotConflict
			}
		}
	} else {
		session, ok := r.db.sessions[*booking.CatalogSessionID]
		if !ok {
			return nil, bookingRepo.ErrCatalogSessionNotFound
		}
		if r.db.activeForSession(session.ID) >= session.Capacity {
			return nil, bookingRepo.ErrCapacityExhausted
		}
	}

	r.db.nextBookingID++
	now := r.db.now()

	stored := *booking
	stored.ID = r.db.nextBookingID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.db.bookings[stored.ID] = &stored

	id := stored.ID
	record(j, func() { delete(r.db.bookings, id) })

	out := stored
	return &out, nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	_, release := r.db.enter(ctx)
	defer release()

	b, ok := r.db.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	out := *b
	return &out, nil
}

// List получает бронирования пользователя по роли и статусу, новые первыми
func (r *BookingRepository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	_, release := r.db.enter(ctx)
	defer release()

	bookings := make([]*domain.Booking, 0)
	for _, b := range r.db.bookings {
		switch filter.Role {
		case domain.RoleMentor:
			if b.MentorID != filter.UserID {
				continue
			}
		case domain.RoleMentee:
			if b.MenteeID != filter.UserID {
				continue
			}
		default:
			if !b.IsParticipant(filter.UserID) {
				continue
			}
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		out := *b
		bookings = append(bookings, &out)
	}

	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].StartsAt.Equal(bookings[j].StartsAt) {
			return bookings[i].StartsAt.After(bookings[j].StartsAt)
		}
		return bookings[i].ID > bookings[j].ID
	})

	return bookings, nil
}

// ListActiveByMentorDate получает активные бронирования слотов ментора на дату
func (r *BookingRepository) ListActiveByMentorDate(ctx context.Context, mentorID int64, date time.Time) ([]*domain.Booking, error) {
	_, release := r.db.enter(ctx)
	defer release()

	bookings := make([]*domain.Booking, 0)
	for _, b := range r.db.bookings {
		if b.MentorID == mentorID && b.IsAdHoc() && b.IsActive() && sameDate(*b.BookingDate, date) {
			out := *b
			bookings = append(bookings, &out)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Slot.Less(*bookings[j].Slot) })

	return bookings, nil
}

// ApplyStatusChange переводит бронирование из expected в change.Status
func (r *BookingRepository) ApplyStatusChange(ctx context.Context, id int64, expected domain.BookingStatus, change domain.StatusChange) (*domain.Booking, error) {
	j, release := r.db.enter(ctx)
	defer release()

	b, ok := r.db.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	if b.Status != expected {
		return nil, bookingRepo.ErrStatusChanged
	}

	previous := *b
	updated := *b
	updated.Status = change.Status
	if change.RejectionReason != nil {
		updated.RejectionReason = change.RejectionReason
	}
	if change.MeetingRef != nil {
		updated.MeetingRef = change.MeetingRef
	}
	if change.CancelledBy != nil {
		updated.CancelledBy = change.CancelledBy
	}
	updated.UpdatedAt = r.db.now()
	r.db.bookings[id] = &updated

	record(j, func() { r.db.bookings[id] = &previous })

	out := updated
	return &out, nil
}

// MarkJoined фиксирует время первого допуска к встрече
func (r *BookingRepository) MarkJoined(ctx context.Context, id int64, at time.Time) error {
	j, release := r.db.enter(ctx)
	defer release()

	b, ok := r.db.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != domain.StatusConfirmed {
		return bookingRepo.ErrNotJoinable
	}
	if b.JoinedAt != nil {
		return nil
	}

	previous := *b
	updated := *b
	updated.JoinedAt = &at
	r.db.bookings[id] = &updated

	record(j, func() { r.db.bookings[id] = &previous })
	return nil
}

func (db *DB) activeForSession(sessionID int64) int {
	count := 0
	for _, b := range db.bookings {
		if b.CatalogSessionID != nil && *b.CatalogSessionID == sessionID && b.IsActive() {
			count++
		}
	}
	return count
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
