package catalog_sessions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-MentoringService/internal/api/handlers"
	"github.com/m04kA/SMC-MentoringService/internal/api/middleware"
	"github.com/m04kA/SMC-MentoringService/internal/service/catalog"
	"github.com/m04kA/SMC-MentoringService/internal/service/catalog/models"
)

const (
	msgInvalidSessionID   = "некорректный ID сессии"
	msgInvalidMentorID    = "некорректный ID ментора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "сессия каталога не найдена"
	msgMentorNotFound     = "ментор не найден"
	msgMentorNotApproved  = "публиковать сессии могут только одобренные менторы"
	msgInvalidInput       = "некорректные данные сессии"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/catalog-sessions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /catalog-sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /catalog-sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrMentorNotFound):
			h.logger.Warn("POST /catalog-sessions - Mentor not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, catalog.ErrMentorNotApproved):
			h.logger.Warn("POST /catalog-sessions - Mentor not approved: user_id=%d", userID)
			handlers.RespondForbidden(w, msgMentorNotApproved)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /catalog-sessions - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /catalog-sessions - Failed to create session: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /catalog-sessions - Session created: session_id=%d, mentor_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Get GET /api/v1/catalog-sessions/{sessionId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, err := handlers.PathInt64(r, "sessionId")
	if err != nil {
		h.logger.Warn("GET /catalog-sessions/{id} - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	result, err := h.service.GetByID(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, catalog.ErrSessionNotFound) {
			h.logger.Warn("GET /catalog-sessions/{id} - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /catalog-sessions/{id} - Failed to get session: session_id=%d, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// List GET /api/v1/catalog-sessions
// Query params: mentorId (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := &models.ListSessionsRequest{}

	if raw := r.URL.Query().Get("mentorId"); raw != "" {
		mentorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || mentorID <= 0 {
			h.logger.Warn("GET /catalog-sessions - Invalid mentor ID: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidMentorID)
			return
		}
		req.MentorID = &mentorID
	}

	result, err := h.service.ListUpcoming(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /catalog-sessions - Failed to list sessions: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /catalog-sessions - Sessions retrieved: count=%d", len(result.Sessions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
