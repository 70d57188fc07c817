package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// IsValid reports whether s is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible from s
func (s BookingStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

// IsActive reports whether a booking in status s holds its slot or seat
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking is a mentee's reservation of a mentor's time.
// Exactly one of (BookingDate, Slot) or CatalogSessionID is set.
type Booking struct {
	ID       int64
	MentorID int64
	MenteeID int64

	// Ad-hoc reservation of a weekly availability slot
	BookingDate *time.Time
	Slot        *TimeSlot

	// Reservation of a seat in a catalog session
	CatalogSessionID *int64

	// Absolute window of the meeting, resolved at creation
	StartsAt time.Time
	EndsAt   time.Time

	Message         *string
	Status          BookingStatus
	RejectionReason *string
	MeetingRef      *string
	JoinedAt        *time.Time
	CancelledBy     *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking holds its slot
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsTerminal returns true if the booking reached a final status
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// IsAdHoc returns true for weekly-slot bookings
func (b *Booking) IsAdHoc() bool {
	return b.CatalogSessionID == nil
}

// IsParticipant returns true if userID is the mentor or the mentee of the booking
func (b *Booking) IsParticipant(userID int64) bool {
	return b.MentorID == userID || b.MenteeID == userID
}

// IsMentor returns true if userID is the booking's mentor
func (b *Booking) IsMentor(userID int64) bool {
	return b.MentorID == userID
}

// CanJoin applies the join-window gate at now
func (b *Booking) CanJoin(now time.Time) bool {
	return CanJoin(now, b.StartsAt, b.EndsAt, b.Status)
}

// IsPast returns true once the meeting window has ended
func (b *Booking) IsPast(now time.Time) bool {
	return IsPast(now, b.EndsAt)
}

// HasJoined returns true if a join authorization was ever issued for the booking
func (b *Booking) HasJoined() bool {
	return b.JoinedAt != nil
}

// StatusChange describes a transition applied to a stored booking
type StatusChange struct {
	Status          BookingStatus
	RejectionReason *string
	MeetingRef      *string
	CancelledBy     *int64
}

// BookingRole selects which side of the booking the caller is on
type BookingRole string

const (
	RoleMentor BookingRole = "mentor"
	RoleMentee BookingRole = "mentee"
	RoleAny    BookingRole = "any"
)

// IsValid reports whether r is a known role
func (r BookingRole) IsValid() bool {
	return r == RoleMentor || r == RoleMentee || r == RoleAny
}

// BookingView selects bookings by their position relative to now
type BookingView string

const (
	ViewAll      BookingView = "all"
	ViewUpcoming BookingView = "upcoming"
	ViewPast     BookingView = "past"
)

// IsValid reports whether v is a known view
func (v BookingView) IsValid() bool {
	return v == ViewAll || v == ViewUpcoming || v == ViewPast
}

// BookingsFilter фильтр списка бронирований пользователя
type BookingsFilter struct {
	UserID int64          // Обязательный параметр
	Role   BookingRole    // Сторона бронирования, RoleAny - обе
	Status *BookingStatus // Фильтр по статусу (опционально)
}

// Matches returns true if the view admits a booking at now
func (v BookingView) Matches(b *Booking, now time.Time) bool {
	switch v {
	case ViewUpcoming:
		return !b.IsPast(now)
	case ViewPast:
		return b.IsPast(now)
	default:
		return true
	}
}
