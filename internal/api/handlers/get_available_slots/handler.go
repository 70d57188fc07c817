package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentoringService/internal/api/handlers"
	"github.com/m04kA/SMC-MentoringService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-MentoringService/internal/usecase/get_available_slots"
)

const (
	msgInvalidMentorID   = "некорректный ID ментора"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast        = "дата в прошлом"
	msgMentorNotFound    = "ментор не найден"
	msgMentorNotApproved = "ментор не принимает бронирования"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors/{mentorId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathInt64(r, "mentorId")
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/available-slots - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /mentors/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Публичный endpoint: userID только для логов, если есть
	userID, _ := middleware.GetUserID(r.Context())

	useCaseReq, err := ToUseCaseRequest(userID, mentorID, dateStr)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrMentorNotFound):
			h.logger.Warn("GET /mentors/{id}/available-slots - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, getAvailableSlots.ErrMentorNotApproved):
			h.logger.Warn("GET /mentors/{id}/available-slots - Mentor not approved: mentor_id=%d", mentorID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgMentorNotApproved)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /mentors/{id}/available-slots - Date in past: mentor_id=%d, date=%s", mentorID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /mentors/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /mentors/{id}/available-slots - Failed to get slots: mentor_id=%d, error=%v",
				mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /mentors/{id}/available-slots - Slots retrieved successfully: mentor_id=%d, slots_count=%d",
		mentorID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
