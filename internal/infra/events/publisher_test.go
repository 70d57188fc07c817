package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/pkg/logger"
)

type fakeConn struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func TestPublisher_PublishBooking(t *testing.T) {
	conn := &fakeConn{}
	p := NewPublisher(conn, "mentoring", logger.NewNop())

	b := &domain.Booking{
		ID:       15,
		MentorID: 7,
		MenteeID: 42,
		Status:   domain.StatusConfirmed,
		StartsAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
	}

	require.NoError(t, p.PublishBooking(context.Background(), EventTypeForStatus(b.Status), b, 7))
	require.Len(t, conn.subjects, 1)
	assert.Equal(t, "mentoring.booking.confirmed", conn.subjects[0])

	var event BookingEvent
	require.NoError(t, json.Unmarshal(conn.payloads[0], &event))
	assert.Equal(t, BookingConfirmed, event.EventType)
	assert.Equal(t, int64(15), event.BookingID)
	assert.Equal(t, "confirmed", event.Status)
	assert.Nil(t, event.CatalogSessionID)
}

func TestPublisher_PublishError(t *testing.T) {
	conn := &fakeConn{err: errors.New("nats: connection closed")}
	p := NewPublisher(conn, "", logger.NewNop())

	err := p.PublishBooking(context.Background(), BookingCreated, &domain.Booking{ID: 1}, 1)
	assert.ErrorIs(t, err, ErrPublish)
}
