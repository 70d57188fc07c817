package transition_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentoringService/internal/api/handlers"
	"github.com/m04kA/SMC-MentoringService/internal/api/middleware"
	transitionBooking "github.com/m04kA/SMC-MentoringService/internal/usecase/transition_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgNotMentor          = "решение по бронированию принимает только ментор"
	msgNotParticipant     = "доступ запрещен"
	msgAlreadyDecided     = "бронирование уже обработано"
	msgCancelWindowClosed = "встреча уже закончилась"
	msgNotConfirmed       = "бронирование не подтверждено"
	msgInvalidReason      = "причина отказа должна содержать от 10 до 500 символов"
	msgInvalidInput       = "некорректные данные запроса"
)

// Handler обрабатывает одно действие над бронированием (confirm, reject, cancel, complete)
type Handler struct {
	useCase TransitionBookingUseCase
	action  transitionBooking.Action
	logger  Logger
}

func NewHandler(useCase TransitionBookingUseCase, action transitionBooking.Action, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		action:  action,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/%s - Invalid booking ID: %v", h.action, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/%s - Missing user ID", h.action)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело опционально для всех действий, кроме отказа
	var req TransitionBookingRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /bookings/{id}/%s - Invalid request body: %v", h.action, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, userID, h.action))
	if err != nil {
		switch {
		case errors.Is(err, transitionBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/%s - Booking not found: booking_id=%d", h.action, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionBooking.ErrNotMentor):
			h.logger.Warn("PATCH /bookings/{id}/%s - Not mentor: booking_id=%d, user_id=%d", h.action, bookingID, userID)
			handlers.RespondForbidden(w, msgNotMentor)

		case errors.Is(err, transitionBooking.ErrNotParticipant):
			h.logger.Warn("PATCH /bookings/{id}/%s - Not participant: booking_id=%d, user_id=%d", h.action, bookingID, userID)
			handlers.RespondForbidden(w, msgNotParticipant)

		case errors.Is(err, transitionBooking.ErrCancelWindowClosed):
			h.logger.Warn("PATCH /bookings/{id}/%s - Meeting ended: booking_id=%d", h.action, bookingID)
			handlers.RespondForbidden(w, msgCancelWindowClosed)

		case errors.Is(err, transitionBooking.ErrNotConfirmed):
			h.logger.Warn("PATCH /bookings/{id}/%s - Not confirmed: booking_id=%d", h.action, bookingID)
			handlers.RespondForbidden(w, msgNotConfirmed)

		case errors.Is(err, transitionBooking.ErrAlreadyDecided):
			h.logger.Warn("PATCH /bookings/{id}/%s - Already decided: booking_id=%d", h.action, bookingID)
			handlers.RespondConflict(w, msgAlreadyDecided)

		case errors.Is(err, transitionBooking.ErrInvalidReason):
			h.logger.Warn("PATCH /bookings/{id}/%s - Invalid reason: booking_id=%d", h.action, bookingID)
			handlers.RespondBadRequest(w, msgInvalidReason)

		case errors.Is(err, transitionBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/%s - Invalid input: booking_id=%d, error=%v", h.action, bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/%s - Failed to change booking: booking_id=%d, error=%v",
				h.action, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/%s - Booking moved to %s: booking_id=%d, user_id=%d, refunded=%t",
		h.action, result.Status, bookingID, userID, result.CreditRefunded)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
