package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentoringService/internal/api/handlers"
	"github.com/m04kA/SMC-MentoringService/internal/api/middleware"
	"github.com/m04kA/SMC-MentoringService/internal/domain"
	createBooking "github.com/m04kA/SMC-MentoringService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotFormat  = "некорректный формат даты или слота, ожидается YYYY-MM-DD и HH:MM-HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgMentorNotFound     = "ментор не найден"
	msgMentorNotApproved  = "ментор не принимает бронирования"
	msgSlotNotOffered     = "ментор не предлагает этот слот в выбранный день"
	msgSlotInPast         = "слот уже начался"
	msgSessionNotFound    = "сессия каталога не найдена"
	msgSessionStarted     = "сессия каталога уже началась"
	msgSlotNotAvailable   = "выбранный слот уже занят"
	msgInsufficientCredit = "недостаточно кредитов для бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и слота)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, mentor_id=%d", userID, req.MentorID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrInsufficientCredit):
			h.logger.Warn("POST /bookings - Insufficient credit: user_id=%d", userID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgInsufficientCredit)

		case errors.Is(err, createBooking.ErrMentorNotFound):
			h.logger.Warn("POST /bookings - Mentor not found: mentor_id=%d", req.MentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, createBooking.ErrCatalogSessionNotFound):
			h.logger.Warn("POST /bookings - Catalog session not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, createBooking.ErrMentorNotApproved):
			h.logger.Warn("POST /bookings - Mentor not approved: mentor_id=%d", req.MentorID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgMentorNotApproved)

		case errors.Is(err, createBooking.ErrSlotNotOffered):
			h.logger.Warn("POST /bookings - Slot not offered: user_id=%d, mentor_id=%d", userID, req.MentorID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgSlotNotOffered)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in past: user_id=%d, mentor_id=%d", userID, req.MentorID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgSlotInPast)

		case errors.Is(err, createBooking.ErrSessionStarted):
			h.logger.Warn("POST /bookings - Catalog session started: user_id=%d", userID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgSessionStarted)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, mentor_id=%d, error=%v",
				userID, req.MentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, mentor_id=%d",
		result.ID, userID, result.MentorID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
