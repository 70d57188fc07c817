package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

var (
	// ErrConnect ошибка подключения к NATS
	ErrConnect = errors.New("events: failed to connect to nats")
	// ErrPublish ошибка публикации события
	ErrPublish = errors.New("events: failed to publish event")
)

// Publisher публикует доменные события бронирований в NATS
// Тема события: <prefix>.<event_type>, например mentoring.booking.confirmed
type Publisher struct {
	conn   Conn
	prefix string
	log    Logger
	close  func()
}

// NewPublisher создает издателя поверх готового соединения
func NewPublisher(conn Conn, prefix string, log Logger) *Publisher {
	return &Publisher{conn: conn, prefix: prefix, log: log, close: func() {}}
}

// NewNatsPublisher подключается к NATS и создает издателя
func NewNatsPublisher(url, prefix, clientName string, log Logger) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name(clientName),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	p := NewPublisher(nc, prefix, log)
	p.close = func() {
		if err := nc.Drain(); err != nil {
			log.Warn("NATS drain failed: %v", err)
		}
	}
	return p, nil
}

// PublishBooking публикует событие бронирования
func (p *Publisher) PublishBooking(ctx context.Context, eventType string, b *domain.Booking, actorID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(newBookingEvent(eventType, b, actorID, time.Now().UTC()))
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, eventType, err)
	}

	subject := p.subject(eventType)
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("%w: subject=%s: %v", ErrPublish, subject, err)
	}

	p.log.Info("Published event to NATS on subject '%s' for booking_id=%d", subject, b.ID)
	return nil
}

// Close сбрасывает буфер и закрывает соединение
func (p *Publisher) Close() {
	p.close()
}

func (p *Publisher) subject(eventType string) string {
	if p.prefix == "" {
		return eventType
	}
	return p.prefix + "." + eventType
}

// NopPublisher используется, когда публикация событий выключена
type NopPublisher struct{}

func (NopPublisher) PublishBooking(context.Context, string, *domain.Booking, int64) error {
	return nil
}

func (NopPublisher) Close() {}
