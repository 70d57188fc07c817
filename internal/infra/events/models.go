package events

import (
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// Типы событий бронирования
const (
	BookingCreated   = "booking.created"
	BookingConfirmed = "booking.confirmed"
	BookingRejected  = "booking.rejected"
	BookingCancelled = "booking.cancelled"
	BookingCompleted = "booking.completed"
	BookingJoined    = "booking.joined"
)

// BookingEvent событие изменения бронирования
type BookingEvent struct {
	EventType        string    `json:"event_type"`
	BookingID        int64     `json:"booking_id"`
	MentorID         int64     `json:"mentor_id"`
	MenteeID         int64     `json:"mentee_id"`
	ActorID          int64     `json:"actor_id"`
	Status           string    `json:"status"`
	CatalogSessionID *int64    `json:"catalog_session_id,omitempty"`
	StartsAt         time.Time `json:"starts_at"`
	EndsAt           time.Time `json:"ends_at"`
	RejectionReason  *string   `json:"rejection_reason,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// EventTypeForStatus тип события, соответствующий новому статусу бронирования
func EventTypeForStatus(status domain.BookingStatus) string {
	switch status {
	case domain.StatusConfirmed:
		return BookingConfirmed
	case domain.StatusRejected:
		return BookingRejected
	case domain.StatusCancelled:
		return BookingCancelled
	case domain.StatusCompleted:
		return BookingCompleted
	default:
		return BookingCreated
	}
}

func newBookingEvent(eventType string, b *domain.Booking, actorID int64, now time.Time) BookingEvent {
	return BookingEvent{
		EventType:        eventType,
		BookingID:        b.ID,
		MentorID:         b.MentorID,
		MenteeID:         b.MenteeID,
		ActorID:          actorID,
		Status:           string(b.Status),
		CatalogSessionID: b.CatalogSessionID,
		StartsAt:         b.StartsAt,
		EndsAt:           b.EndsAt,
		RejectionReason:  b.RejectionReason,
		OccurredAt:       now,
	}
}
