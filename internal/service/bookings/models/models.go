package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidRole возвращается при некорректной роли
	ErrInvalidRole = errors.New("invalid booking role")

	// ErrInvalidView возвращается при некорректном представлении
	ErrInvalidView = errors.New("invalid booking view")
)

// Request модели

// ListBookingsRequest запрос на получение бронирований пользователя
type ListBookingsRequest struct {
	UserID int64   `json:"userId"`
	Role   string  `json:"role,omitempty"`   // mentor | mentee | any (по умолчанию any)
	Status *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
	View   string  `json:"view,omitempty"`   // all | upcoming | past (по умолчанию all)
}

// Response модели

// BookingResponse ответ с данными бронирования
// CanJoin и IsPast вычисляются в момент чтения, хранимый статус не меняется
type BookingResponse struct {
	ID               int64     `json:"id"`
	MentorID         int64     `json:"mentorId"`
	MenteeID         int64     `json:"menteeId"`
	BookingDate      *string   `json:"bookingDate,omitempty"` // "2026-03-02"
	Slot             *string   `json:"slot,omitempty"`        // "10:00-11:00"
	CatalogSessionID *int64    `json:"catalogSessionId,omitempty"`
	StartsAt         time.Time `json:"startsAt"`
	EndsAt           time.Time `json:"endsAt"`
	Message          *string   `json:"message,omitempty"`
	Status           string    `json:"status"`
	RejectionReason  *string   `json:"rejectionReason,omitempty"`
	MeetingRef       *string   `json:"meetingRef,omitempty"`
	CanJoin          bool      `json:"canJoin"`
	IsPast           bool      `json:"isPast"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO на момент now
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:               b.ID,
		MentorID:         b.MentorID,
		MenteeID:         b.MenteeID,
		CatalogSessionID: b.CatalogSessionID,
		StartsAt:         b.StartsAt,
		EndsAt:           b.EndsAt,
		Message:          b.Message,
		Status:           string(b.Status),
		RejectionReason:  b.RejectionReason,
		MeetingRef:       b.MeetingRef,
		CanJoin:          b.CanJoin(now),
		IsPast:           b.IsPast(now),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}

	if b.BookingDate != nil {
		date := b.BookingDate.Format(domain.DateFormat)
		resp.BookingDate = &date
	}
	if b.Slot != nil {
		slot := b.Slot.String()
		resp.Slot = &slot
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, now); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	return resp
}

// ToDomainBookingsFilter конвертирует request в domain фильтр и представление
func (r *ListBookingsRequest) ToDomainBookingsFilter() (domain.BookingsFilter, domain.BookingView, error) {
	filter := domain.BookingsFilter{UserID: r.UserID, Role: domain.RoleAny}
	view := domain.ViewAll

	if r.Role != "" {
		filter.Role = domain.BookingRole(r.Role)
		if !filter.Role.IsValid() {
			return filter, view, ErrInvalidRole
		}
	}

	if r.View != "" {
		view = domain.BookingView(r.View)
		if !view.IsValid() {
			return filter, view, ErrInvalidView
		}
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, view, err
		}
		filter.Status = &status
	}

	return filter, view, nil
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
