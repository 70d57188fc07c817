package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	createBooking "github.com/m04kA/SMC-MentoringService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-MentoringService/pkg/ptr"
)

// CreateBookingRequest HTTP request model
// Указывается либо (bookingDate, slot), либо catalogSessionId
type CreateBookingRequest struct {
	MentorID         int64   `json:"mentorId" validate:"omitempty,gt=0"`
	BookingDate      *string `json:"bookingDate,omitempty" validate:"omitempty,datetime=2006-01-02"` // "2026-03-02"
	Slot             *string `json:"slot,omitempty"`                                                 // "10:00-11:00"
	CatalogSessionID *int64  `json:"catalogSessionId,omitempty" validate:"omitempty,gt=0"`
	Message          *string `json:"message,omitempty" validate:"omitempty,max=4000"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64   `json:"id"`
	MentorID         int64   `json:"mentorId"`
	MenteeID         int64   `json:"menteeId"`
	BookingDate      *string `json:"bookingDate,omitempty"`
	Slot             *string `json:"slot,omitempty"`
	CatalogSessionID *int64  `json:"catalogSessionId,omitempty"`
	StartsAt         string  `json:"startsAt"`
	EndsAt           string  `json:"endsAt"`
	Message          *string `json:"message,omitempty"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(menteeID int64) (*createBooking.Request, error) {
	req := &createBooking.Request{
		MenteeID:         menteeID,
		MentorID:         r.MentorID,
		CatalogSessionID: r.CatalogSessionID,
		Message:          r.Message,
	}

	// Парсим дату
	if r.BookingDate != nil {
		date, err := time.Parse(domain.DateFormat, *r.BookingDate)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	// Парсим слот
	if r.Slot != nil {
		slot, err := domain.ParseTimeSlot(*r.Slot)
		if err != nil {
			return nil, err
		}
		req.Slot = &slot
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	result := &BookingResponse{
		ID:               resp.ID,
		MentorID:         resp.MentorID,
		MenteeID:         resp.MenteeID,
		CatalogSessionID: resp.CatalogSessionID,
		StartsAt:         resp.StartsAt.Format(time.RFC3339),
		EndsAt:           resp.EndsAt.Format(time.RFC3339),
		Message:          resp.Message,
		Status:           resp.Status,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.BookingDate != nil {
		result.BookingDate = ptr.Ptr(resp.BookingDate.Format(domain.DateFormat))
	}
	if resp.Slot != nil {
		result.Slot = ptr.Ptr(resp.Slot.String())
	}

	return result
}
