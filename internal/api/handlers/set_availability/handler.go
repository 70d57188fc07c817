package set_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentoringService/internal/api/handlers"
	"github.com/m04kA/SMC-MentoringService/internal/api/middleware"
	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/internal/service/availability"
)

const (
	msgInvalidMentorID    = "некорректный ID ментора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "расписание может менять только сам ментор"
	msgInvalidSlot        = "слоты должны быть часовыми, с 09:00 до 21:00, дни недели - monday..sunday"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/mentors/{mentorId}/availability
// Полностью заменяет недельное расписание ментора
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathInt64(r, "mentorId")
	if err != nil {
		h.logger.Warn("PUT /mentors/{id}/availability - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /mentors/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /mentors/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Сервис сам проверит, что расписание меняет ментор
	result, err := h.service.Set(r.Context(), req.ToServiceRequest(userID, mentorID))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /mentors/{id}/availability - Access denied: mentor_id=%d, user_id=%d", mentorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PUT /mentors/{id}/availability - Invalid schedule: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("PUT /mentors/{id}/availability - Failed to set availability: mentor_id=%d, error=%v",
				mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /mentors/{id}/availability - Availability replaced: mentor_id=%d", mentorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
