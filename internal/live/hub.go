package live

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/pkg/metrics"
)

// Hub хранит live-сессии бронирований в памяти процесса
// Сессия создаётся при первом Join и удаляется, когда ушёл последний участник,
// бронирование перешло в конечный статус (Terminate) или истекло окно встречи (Sweep).
// Каждое подключение получает события через собственную очередь и горутину доставки,
// поэтому медленный получатель не блокирует отправителя и порядок сообщений одного отправителя сохраняется.
type Hub struct {
	mu       sync.Mutex
	sessions map[int64]*session

	cfg          Config
	timeProvider TimeProvider
	metrics      *metrics.Metrics
	logger       Logger
}

type session struct {
	bookingID  int64
	peers      map[string]*peer
	transcript []domain.ChatMessage
}

type peer struct {
	participant Participant
	expiresAt   time.Time
	sub         Subscriber
	queue       chan Event
	limiter     *rate.Limiter
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewHub создает хаб live-сессий
func NewHub(cfg Config, m *metrics.Metrics, logger Logger) *Hub {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.DeliveryAttempts <= 0 {
		cfg.DeliveryAttempts = 3
	}
	return &Hub{
		sessions:     make(map[int64]*session),
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		metrics:      m,
		logger:       logger,
	}
}

// Join подключает участника к сессии бронирования, создавая её при необходимости
// Повторный Join с той же identity заменяет прежнее подключение
func (h *Hub) Join(bookingID int64, participant Participant, expiresAt time.Time, sub Subscriber) (*Handle, error) {
	now := h.timeProvider.Now()
	if !now.Before(expiresAt) {
		return nil, ErrAuthorizationExpired
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[bookingID]
	if !ok {
		s = &session{bookingID: bookingID, peers: make(map[string]*peer)}
		h.sessions[bookingID] = s
		h.metrics.LiveSessionOpened()
		h.logger.Info("Live: session opened for booking_id=%d", bookingID)
	}

	old, reconnect := s.peers[participant.Identity]
	if reconnect {
		h.stopPeer(old, false)
		h.logger.Info("Live: %s reconnected to booking_id=%d", participant.Identity, bookingID)
	}

	p := h.newPeer(participant, expiresAt, sub)
	s.peers[participant.Identity] = p
	go h.pump(bookingID, p)

	if !reconnect {
		h.broadcast(s, participant.Identity, Event{
			Type:        EventPresenceJoined,
			BookingID:   bookingID,
			Identity:    participant.Identity,
			DisplayName: participant.DisplayName,
			At:          now,
		})
		h.logger.Info("Live: %s joined booking_id=%d", participant.Identity, bookingID)
	}

	return &Handle{BookingID: bookingID, Identity: participant.Identity, peer: p}, nil
}

// Send рассылает сообщение всем участникам сессии, кроме отправителя
// Не ждёт доставки: ошибки доставки отдельному получателю логируются и не возвращаются
func (h *Hub) Send(handle *Handle, text string) (*domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" || (h.cfg.MessageMaxLength > 0 && utf8.RuneCountInString(text) > h.cfg.MessageMaxLength) {
		return nil, ErrInvalidMessage
	}

	now := h.timeProvider.Now()

	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[handle.BookingID]
	if !ok || s.peers[handle.Identity] != handle.peer {
		return nil, ErrNotJoined
	}
	p := handle.peer
	if !now.Before(p.expiresAt) {
		return nil, ErrAuthorizationExpired
	}
	if !p.limiter.AllowN(now, 1) {
		return nil, ErrRateLimited
	}

	msg := domain.ChatMessage{
		ID:          uuid.NewString(),
		BookingID:   handle.BookingID,
		Sender:      p.participant.Identity,
		DisplayName: p.participant.DisplayName,
		Text:        text,
		SentAt:      now,
	}

	s.transcript = append(s.transcript, msg)
	if h.cfg.TranscriptLimit > 0 && len(s.transcript) > h.cfg.TranscriptLimit {
		s.transcript = s.transcript[len(s.transcript)-h.cfg.TranscriptLimit:]
	}

	h.broadcast(s, p.participant.Identity, Event{
		Type:      EventMessage,
		BookingID: handle.BookingID,
		Message:   &msg,
		At:        now,
	})

	return &msg, nil
}

// Leave отключает участника; пустая сессия удаляется
func (h *Hub) Leave(handle *Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[handle.BookingID]
	if !ok || s.peers[handle.Identity] != handle.peer {
		return
	}

	delete(s.peers, handle.Identity)
	h.stopPeer(handle.peer, false)
	h.logger.Info("Live: %s left booking_id=%d", handle.Identity, handle.BookingID)

	if len(s.peers) == 0 {
		h.discard(s)
		return
	}

	h.broadcast(s, handle.Identity, Event{
		Type:        EventPresenceLeft,
		BookingID:   handle.BookingID,
		Identity:    handle.Identity,
		DisplayName: handle.peer.participant.DisplayName,
		At:          h.timeProvider.Now(),
	})
}

// Terminate закрывает сессию бронирования, уведомив участников событием session.ended
func (h *Hub) Terminate(bookingID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.sessions[bookingID]; ok {
		h.end(s)
	}
}

// Sweep закрывает сессии, у всех участников которых истёк срок допуска
// Возвращает число закрытых сессий
func (h *Hub) Sweep(now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	closed := 0
	for _, s := range h.sessions {
		expired := true
		for _, p := range s.peers {
			if now.Before(p.expiresAt) {
				expired = false
				break
			}
		}
		if expired {
			h.end(s)
			closed++
		}
	}
	return closed
}

// Close закрывает все сессии (при остановке сервиса)
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, s := range h.sessions {
		h.end(s)
	}
}

// Transcript последние сообщения сессии
func (h *Hub) Transcript(bookingID int64) []domain.ChatMessage {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[bookingID]
	if !ok {
		return nil
	}
	out := make([]domain.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Participants подключённые участники сессии, упорядоченные по identity
func (h *Hub) Participants(bookingID int64) []Participant {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[bookingID]
	if !ok {
		return nil
	}
	out := make([]Participant, 0, len(s.peers))
	for _, p := range s.peers {
		out = append(out, p.participant)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identity < out[j].Identity })
	return out
}

// SessionCount число открытых сессий
func (h *Hub) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *Hub) newPeer(participant Participant, expiresAt time.Time, sub Subscriber) *peer {
	limit := rate.Inf
	if h.cfg.RatePerSecond > 0 {
		limit = rate.Limit(h.cfg.RatePerSecond)
	}
	burst := h.cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &peer{
		participant: participant,
		expiresAt:   expiresAt,
		sub:         sub,
		queue:       make(chan Event, h.cfg.QueueSize),
		limiter:     rate.NewLimiter(limit, burst),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// end рассылает session.ended и удаляет сессию; вызывается под h.mu
func (h *Hub) end(s *session) {
	event := Event{Type: EventSessionEnded, BookingID: s.bookingID, At: h.timeProvider.Now()}
	for _, p := range s.peers {
		h.enqueue(s.bookingID, p, event)
		h.stopPeer(p, true)
	}
	s.peers = map[string]*peer{}
	h.discard(s)
}

// discard удаляет сессию из хаба; вызывается под h.mu
func (h *Hub) discard(s *session) {
	delete(h.sessions, s.bookingID)
	h.metrics.LiveSessionClosed()
	h.logger.Info("Live: session closed for booking_id=%d", s.bookingID)
}

// broadcast ставит событие в очереди всех участников, кроме except; вызывается под h.mu
func (h *Hub) broadcast(s *session, except string, event Event) {
	for identity, p := range s.peers {
		if identity == except {
			continue
		}
		h.enqueue(s.bookingID, p, event)
	}
}

func (h *Hub) enqueue(bookingID int64, p *peer, event Event) {
	select {
	case p.queue <- event:
	default:
		h.metrics.ChatDropped()
		h.logger.Warn("Live: queue full for %s in booking_id=%d, %s event dropped",
			p.participant.Identity, bookingID, event.Type)
	}
}

// stopPeer закрывает очередь подключения; вызывается под h.mu
// drain=true - доставить уже поставленные в очередь события, иначе прервать доставку
func (h *Hub) stopPeer(p *peer, drain bool) {
	if !drain {
		p.cancel()
	}
	close(p.queue)
}

// pump доставляет события одного подключения по порядку
func (h *Hub) pump(bookingID int64, p *peer) {
	defer func() {
		p.cancel()
		p.sub.Close()
	}()

	for event := range p.queue {
		if p.ctx.Err() != nil {
			return
		}
		h.deliver(bookingID, p, event)
	}
}

// deliver делает до DeliveryAttempts попыток доставки, затем событие отбрасывается
func (h *Hub) deliver(bookingID int64, p *peer, event Event) {
	var err error
	for attempt := 1; attempt <= h.cfg.DeliveryAttempts; attempt++ {
		if err = p.sub.Deliver(p.ctx, event); err == nil {
			h.metrics.ChatDelivered()
			return
		}
		if attempt == h.cfg.DeliveryAttempts {
			break
		}

		select {
		case <-p.ctx.Done():
			return
		case <-time.After(h.cfg.RetryDelay):
		}
	}

	h.metrics.ChatDropped()
	h.logger.Warn("Live: %s event to %s in booking_id=%d dropped after %d attempts: %v",
		event.Type, p.participant.Identity, bookingID, h.cfg.DeliveryAttempts, err)
}
