package live_channel

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-MentoringService/internal/live"
)

// wsSubscriber доставляет события live-канала в WebSocket соединение
type wsSubscriber struct {
	conn         *websocket.Conn
	writeTimeout time.Duration

	mu     sync.Mutex
	closed bool
}

func newSubscriber(conn *websocket.Conn, writeTimeout time.Duration) *wsSubscriber {
	return &wsSubscriber{conn: conn, writeTimeout: writeTimeout}
}

// Deliver пишет событие в соединение
func (s *wsSubscriber) Deliver(ctx context.Context, event live.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.writeJSON(event)
}

// Close отправляет close frame и закрывает соединение
func (s *wsSubscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	deadline := time.Now().Add(s.writeTimeout)
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	_ = s.conn.Close()
}

func (s *wsSubscriber) writeJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return websocket.ErrCloseSent
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		return err
	}
	return s.conn.WriteJSON(v)
}
