package join_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentoringService/internal/api/handlers"
	"github.com/m04kA/SMC-MentoringService/internal/api/middleware"
	joinSession "github.com/m04kA/SMC-MentoringService/internal/usecase/join_session"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgNotParticipant     = "доступ запрещен"
	msgJoinWindowClosed   = "подключение к встрече сейчас недоступно"
)

type Handler struct {
	useCase JoinSessionUseCase
	logger  Logger
}

func NewHandler(useCase JoinSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/join
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/join - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/join - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req JoinSessionRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /bookings/{id}/join - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &joinSession.Request{
		BookingID:   bookingID,
		UserID:      userID,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		switch {
		case errors.Is(err, joinSession.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/join - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, joinSession.ErrNotParticipant):
			h.logger.Warn("POST /bookings/{id}/join - Not participant: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgNotParticipant)

		case errors.Is(err, joinSession.ErrJoinWindowClosed):
			h.logger.Warn("POST /bookings/{id}/join - Join window closed: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgJoinWindowClosed)

		case errors.Is(err, joinSession.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/join - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/{id}/join - Failed to join: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/join - Join authorized: booking_id=%d, identity=%s", bookingID, result.Identity)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
