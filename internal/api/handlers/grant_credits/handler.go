package grant_credits

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentoringService/internal/api/handlers"
	"github.com/m04kA/SMC-MentoringService/internal/service/credits"
	"github.com/m04kA/SMC-MentoringService/internal/service/credits/models"
)

const (
	msgInvalidMenteeID    = "некорректный ID менти"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAmount      = "количество кредитов должно быть положительным"
)

type Handler struct {
	service CreditService
	logger  Logger
}

func NewHandler(service CreditService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Grant POST /internal/mentees/{menteeId}/credits
// Внутренний endpoint для сервиса оплаты
func (h *Handler) Grant(w http.ResponseWriter, r *http.Request) {
	menteeID, err := handlers.PathInt64(r, "menteeId")
	if err != nil {
		h.logger.Warn("POST /internal/mentees/{id}/credits - Invalid mentee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMenteeID)
		return
	}

	var req GrantCreditsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/mentees/{id}/credits - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Grant(r.Context(), &models.GrantCreditsRequest{MenteeID: menteeID, Amount: req.Amount})
	if err != nil {
		if errors.Is(err, credits.ErrInvalidInput) {
			h.logger.Warn("POST /internal/mentees/{id}/credits - Invalid input: mentee_id=%d, error=%v", menteeID, err)
			handlers.RespondBadRequest(w, msgInvalidAmount)
			return
		}
		h.logger.Error("POST /internal/mentees/{id}/credits - Failed to grant credits: mentee_id=%d, error=%v", menteeID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/mentees/{id}/credits - Credits granted: mentee_id=%d, amount=%d, balance=%d",
		menteeID, req.Amount, result.Balance)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Balance GET /internal/mentees/{menteeId}/credits
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	menteeID, err := handlers.PathInt64(r, "menteeId")
	if err != nil {
		h.logger.Warn("GET /internal/mentees/{id}/credits - Invalid mentee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMenteeID)
		return
	}

	result, err := h.service.Balance(r.Context(), menteeID)
	if err != nil {
		h.logger.Error("GET /internal/mentees/{id}/credits - Failed to get balance: mentee_id=%d, error=%v", menteeID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
