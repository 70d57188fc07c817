package live_channel

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-MentoringService/internal/api/handlers"
	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/internal/infra/rtc"
	bookingRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MentoringService/internal/live"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingToken     = "отсутствует токен допуска"
	msgInvalidToken     = "недействительный токен допуска"
	msgTokenExpired     = "срок действия токена истёк"
	msgWrongBooking     = "токен выдан для другого бронирования"
	msgBookingNotFound  = "бронирование не найдено"
	msgNotJoinable      = "встреча недоступна для подключения"
	msgInvalidMessage   = "сообщение пустое или слишком длинное"
	msgRateLimited      = "слишком много сообщений, попробуйте позже"
)

const (
	writeTimeout = 10 * time.Second
	readLimit    = 16 << 10
)

type Handler struct {
	hub          LiveHub
	verifier     TokenVerifier
	bookingRepo  BookingRepository
	upgrader     websocket.Upgrader
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(hub LiveHub, verifier TokenVerifier, bookingRepo BookingRepository, logger Logger) *Handler {
	return &Handler{
		hub:         hub,
		verifier:    verifier,
		bookingRepo: bookingRepo,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Доступ проверяется токеном, а не источником
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/live?token=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/live - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		h.logger.Warn("GET /bookings/{id}/live - Missing token: booking_id=%d", bookingID)
		handlers.RespondUnauthorized(w, msgMissingToken)
		return
	}

	// Проверяем токен допуска, выданный при подключении к встрече
	grant, err := h.verifier.Verify(token, h.timeProvider.Now())
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/live - Token rejected: booking_id=%d, error=%v", bookingID, err)
		if errors.Is(err, rtc.ErrTokenExpired) {
			handlers.RespondUnauthorized(w, msgTokenExpired)
			return
		}
		handlers.RespondUnauthorized(w, msgInvalidToken)
		return
	}
	if grant.BookingID != bookingID {
		h.logger.Warn("GET /bookings/{id}/live - Token for booking=%d used for booking=%d", grant.BookingID, bookingID)
		handlers.RespondForbidden(w, msgWrongBooking)
		return
	}

	userID, err := domain.ParseParticipantIdentity(grant.Identity)
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/live - Invalid identity in token: %v", err)
		handlers.RespondUnauthorized(w, msgInvalidToken)
		return
	}

	// Токен действует до конца встречи, поэтому бронирование проверяется при каждом подключении
	booking, err := h.bookingRepo.GetByID(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			h.logger.Warn("GET /bookings/{id}/live - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)
			return
		}
		h.logger.Error("GET /bookings/{id}/live - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}
	if !booking.IsParticipant(userID) || !booking.CanJoin(h.timeProvider.Now()) {
		h.logger.Warn("GET /bookings/{id}/live - Booking not joinable: booking_id=%d, user_id=%d, status=%s",
			bookingID, userID, booking.Status)
		handlers.RespondForbidden(w, msgNotJoinable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		h.logger.Warn("GET /bookings/{id}/live - Upgrade failed: booking_id=%d, error=%v", bookingID, err)
		return
	}

	sub := newSubscriber(conn, writeTimeout)
	handle, err := h.hub.Join(bookingID, live.Participant{
		Identity:    grant.Identity,
		UserID:      userID,
		DisplayName: grant.Name,
	}, grant.ExpiresAt, sub)
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/live - Join failed: booking_id=%d, identity=%s, error=%v",
			bookingID, grant.Identity, err)
		sub.Close()
		return
	}
	defer h.hub.Leave(handle)

	h.logger.Info("GET /bookings/{id}/live - Participant connected: booking_id=%d, identity=%s", bookingID, grant.Identity)
	h.readLoop(conn, sub, handle)
	h.logger.Info("GET /bookings/{id}/live - Participant disconnected: booking_id=%d, identity=%s", bookingID, grant.Identity)
}

// readLoop читает сообщения участника до закрытия соединения или истечения допуска
func (h *Handler) readLoop(conn *websocket.Conn, sub *wsSubscriber, handle *live.Handle) {
	conn.SetReadLimit(readLimit)

	for {
		var in InboundMessage
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("live: read failed: booking_id=%d, identity=%s, error=%v",
					handle.BookingID, handle.Identity, err)
			}
			return
		}

		_, err := h.hub.Send(handle, in.Text)
		switch {
		case err == nil:
		case errors.Is(err, live.ErrInvalidMessage):
			_ = sub.writeJSON(ErrorFrame{Type: "error", Message: msgInvalidMessage})
		case errors.Is(err, live.ErrRateLimited):
			_ = sub.writeJSON(ErrorFrame{Type: "error", Message: msgRateLimited})
		default:
			// Допуск истёк или подключение заменено новым
			h.logger.Info("live: closing connection: booking_id=%d, identity=%s, reason=%v",
				handle.BookingID, handle.Identity, err)
			return
		}
	}
}
