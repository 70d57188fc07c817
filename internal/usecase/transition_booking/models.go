package transition_booking

import (
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// Action действие над бронированием
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionReject   Action = "reject"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

// target статус, в который переводит действие
func (a Action) target() (domain.BookingStatus, bool) {
	switch a {
	case ActionConfirm:
		return domain.StatusConfirmed, true
	case ActionReject:
		return domain.StatusRejected, true
	case ActionCancel:
		return domain.StatusCancelled, true
	case ActionComplete:
		return domain.StatusCompleted, true
	}
	return "", false
}

// Request модель запроса на изменение статуса бронирования
type Request struct {
	BookingID int64   // ID бронирования
	UserID    int64   // ID пользователя, выполняющего действие
	Action    Action  // confirm | reject | cancel | complete
	Reason    *string // Причина отказа (только для reject)
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID              int64     // ID бронирования
	MentorID        int64     // ID ментора
	MenteeID        int64     // ID менти
	Status          string    // Новый статус
	RejectionReason *string   // Причина отказа
	MeetingRef      *string   // Ссылка на комнату встречи (после подтверждения)
	CancelledBy     *int64    // Кто отменил
	StartsAt        time.Time // Начало встречи
	EndsAt          time.Time // Конец встречи
	CreditRefunded  bool      // Кредит возвращён менти
	UpdatedAt       time.Time // Время обновления
}

func fromDomain(b *domain.Booking, refunded bool) *Response {
	return &Response{
		ID:              b.ID,
		MentorID:        b.MentorID,
		MenteeID:        b.MenteeID,
		Status:          string(b.Status),
		RejectionReason: b.RejectionReason,
		MeetingRef:      b.MeetingRef,
		CancelledBy:     b.CancelledBy,
		StartsAt:        b.StartsAt,
		EndsAt:          b.EndsAt,
		CreditRefunded:  refunded,
		UpdatedAt:       b.UpdatedAt,
	}
}
