package get_availability

import (
	"net/http"

	"github.com/m04kA/SMC-MentoringService/internal/api/handlers"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
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

// Handle GET /api/v1/mentors/{mentorId}/availability
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathInt64(r, "mentorId")
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/availability - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	result, err := h.service.Get(r.Context(), mentorID)
	if err != nil {
		h.logger.Error("GET /mentors/{id}/availability - Failed to get availability: mentor_id=%d, error=%v",
			mentorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /mentors/{id}/availability - Availability retrieved: mentor_id=%d", mentorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
