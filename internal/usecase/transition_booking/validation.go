package transition_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Причина отказа проверяется до обращения к хранилищу
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if _, ok := req.Action.target(); !ok {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	if req.Action == ActionReject {
		reason := ""
		if req.Reason != nil {
			reason = strings.TrimSpace(*req.Reason)
		}
		length := utf8.RuneCountInString(reason)
		if length < domain.MinRejectionReasonLength || length > domain.MaxRejectionReasonLength {
			return fmt.Errorf("%w: reason must be %d-%d characters, got %d",
				ErrInvalidReason, domain.MinRejectionReasonLength, domain.MaxRejectionReasonLength, length)
		}
		req.Reason = &reason
	}

	return nil
}

// authorize проверяет, что пользователь может выполнить действие над бронированием
func authorize(b *domain.Booking, userID int64, action Action) error {
	switch action {
	case ActionConfirm, ActionReject:
		if !b.IsMentor(userID) {
			return ErrNotMentor
		}
	default:
		if !b.IsParticipant(userID) {
			return ErrNotParticipant
		}
	}
	return nil
}

// checkTransition проверяет допустимость перехода из текущего статуса
func checkTransition(b *domain.Booking, action Action, target domain.BookingStatus, now time.Time) error {
	if b.IsTerminal() {
		return ErrAlreadyDecided
	}

	switch action {
	case ActionCancel:
		if !now.Before(b.EndsAt) {
			return ErrCancelWindowClosed
		}
	case ActionComplete:
		if b.Status == domain.StatusPending {
			return ErrNotConfirmed
		}
	}

	if !domain.CanTransition(b.Status, target) {
		return ErrAlreadyDecided
	}
	return nil
}

// buildChange собирает изменение статуса для действия
func buildChange(req *Request, target domain.BookingStatus) domain.StatusChange {
	change := domain.StatusChange{Status: target}

	switch req.Action {
	case ActionConfirm:
		ref := "room-" + uuid.NewString()
		change.MeetingRef = &ref
	case ActionReject:
		change.RejectionReason = req.Reason
	case ActionCancel:
		cancelledBy := req.UserID
		change.CancelledBy = &cancelledBy
	}

	return change
}

// refundDue определяет, возвращается ли кредит при переходе
// Отказ возвращает всегда; отмена - если никто из участников не получал допуск к встрече
func refundDue(before *domain.Booking, action Action) bool {
	switch action {
	case ActionReject:
		return true
	case ActionCancel:
		return before.Status == domain.StatusPending || !before.HasJoined()
	}
	return false
}
