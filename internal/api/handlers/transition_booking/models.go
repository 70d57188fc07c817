package transition_booking

import (
	"time"

	transitionBooking "github.com/m04kA/SMC-MentoringService/internal/usecase/transition_booking"
)

// TransitionBookingRequest тело запроса; причина нужна только для отказа
type TransitionBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	MentorID        int64   `json:"mentorId"`
	MenteeID        int64   `json:"menteeId"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
	MeetingRef      *string `json:"meetingRef,omitempty"`
	CancelledBy     *int64  `json:"cancelledBy,omitempty"`
	StartsAt        string  `json:"startsAt"`
	EndsAt          string  `json:"endsAt"`
	CreditRefunded  bool    `json:"creditRefunded"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionBookingRequest) ToUseCaseRequest(bookingID, userID int64, action transitionBooking.Action) *transitionBooking.Request {
	return &transitionBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		Action:    action,
		Reason:    r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		MentorID:        resp.MentorID,
		MenteeID:        resp.MenteeID,
		Status:          resp.Status,
		RejectionReason: resp.RejectionReason,
		MeetingRef:      resp.MeetingRef,
		CancelledBy:     resp.CancelledBy,
		StartsAt:        resp.StartsAt.Format(time.RFC3339),
		EndsAt:          resp.EndsAt.Format(time.RFC3339),
		CreditRefunded:  resp.CreditRefunded,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
