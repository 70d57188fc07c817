package live

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/pkg/logger"
)

type fixedTime struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fixedTime) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

type recorder struct {
	mu       sync.Mutex
	events   []Event
	calls    int
	failAll  bool
	closed   bool
	closedCh chan struct{}
}

func newRecorder() *recorder {
	return &recorder{closedCh: make(chan struct{})}
}

func (r *recorder) Deliver(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.failAll {
		return errors.New("socket write failed")
	}
	r.events = append(r.events, event)
	return nil
}

func (r *recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.closed = true
		close(r.closedCh)
	}
}

func (r *recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *recorder) Messages() []string {
	var texts []string
	for _, e := range r.Events() {
		if e.Type == EventMessage {
			texts = append(texts, e.Message.Text)
		}
	}
	return texts
}

func (r *recorder) waitClosed(t *testing.T) {
	t.Helper()
	select {
	case <-r.closedCh:
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber was not closed")
	}
}

var start = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func newTestHub(cfg Config) (*Hub, *fixedTime) {
	clock := &fixedTime{now: start}
	h := NewHub(cfg, nil, logger.NewNop())
	h.timeProvider = clock
	return h, clock
}

func defaultConfig() Config {
	return Config{
		QueueSize:        256,
		DeliveryAttempts: 3,
		RetryDelay:       time.Millisecond,
		TranscriptLimit:  100,
		MessageMaxLength: 2000,
	}
}

func mentor() Participant { return Participant{Identity: "user:7", UserID: 7, DisplayName: "Mentor"} }
func mentee() Participant { return Participant{Identity: "user:42", UserID: 42, DisplayName: "Mentee"} }

func TestHub_SendFansOutToOthersOnly(t *testing.T) {
	h, _ := newTestHub(defaultConfig())
	end := start.Add(time.Hour)

	mentorSub, menteeSub := newRecorder(), newRecorder()
	mentorHandle, err := h.Join(1, mentor(), end, mentorSub)
	require.NoError(t, err)
	_, err = h.Join(1, mentee(), end, menteeSub)
	require.NoError(t, err)

	msg, err := h.Send(mentorHandle, "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Text)
	assert.Equal(t, "user:7", msg.Sender)
	assert.NotEmpty(t, msg.ID)

	require.Eventually(t, func() bool { return len(menteeSub.Messages()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"hello"}, menteeSub.Messages())

	// отправителю своё сообщение не приходит, только presence о втором участнике
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, mentorSub.Messages())
	events := mentorSub.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventPresenceJoined, events[0].Type)
	assert.Equal(t, "user:42", events[0].Identity)
}

func TestHub_PreservesPerSenderOrder(t *testing.T) {
	h, _ := newTestHub(defaultConfig())
	end := start.Add(time.Hour)

	sender, err := h.Join(1, mentor(), end, newRecorder())
	require.NoError(t, err)
	receiver := newRecorder()
	_, err = h.Join(1, mentee(), end, receiver)
	require.NoError(t, err)

	var want []string
	for i := 0; i < 100; i++ {
		text := fmt.Sprintf("msg-%03d", i)
		want = append(want, text)
		_, err := h.Send(sender, text)
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool { return len(receiver.Messages()) == 100 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, want, receiver.Messages())
	assert.Len(t, h.Transcript(1), 100)
}

func TestHub_InvalidMessage(t *testing.T) {
	cfg := defaultConfig()
	cfg.MessageMaxLength = 5
	h, _ := newTestHub(cfg)

	handle, err := h.Join(1, mentor(), start.Add(time.Hour), newRecorder())
	require.NoError(t, err)

	_, err = h.Send(handle, "   ")
	assert.ErrorIs(t, err, ErrInvalidMessage)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = h.Send(handle, "안녕하세요!")
	assert.ErrorIs(t, err, ErrInvalidMessage)

	_, err = h.Send(handle, "안녕하세요")
	assert.NoError(t, err)
}

func TestHub_ExpiredAuthorization(t *testing.T) {
	h, clock := newTestHub(defaultConfig())
	end := start.Add(time.Hour)

	_, err := h.Join(1, mentor(), start, newRecorder())
	assert.ErrorIs(t, err, ErrAuthorizationExpired)

	handle, err := h.Join(1, mentor(), end, newRecorder())
	require.NoError(t, err)

	clock.Set(end)
	_, err = h.Send(handle, "too late")
	assert.ErrorIs(t, err, ErrAuthorizationExpired)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestHub_LeaveDiscardsEmptySession(t *testing.T) {
	h, _ := newTestHub(defaultConfig())
	end := start.Add(time.Hour)

	mentorSub, menteeSub := newRecorder(), newRecorder()
	mentorHandle, err := h.Join(1, mentor(), end, mentorSub)
	require.NoError(t, err)
	menteeHandle, err := h.Join(1, mentee(), end, menteeSub)
	require.NoError(t, err)
	assert.Len(t, h.Participants(1), 2)

	h.Leave(menteeHandle)
	menteeSub.waitClosed(t)
	assert.Equal(t, []Participant{mentor()}, h.Participants(1))

	require.Eventually(t, func() bool {
		events := mentorSub.Events()
		return len(events) == 2 && events[1].Type == EventPresenceLeft
	}, time.Second, 5*time.Millisecond)

	_, err = h.Send(menteeHandle, "after leave")
	assert.ErrorIs(t, err, ErrNotJoined)

	h.Leave(mentorHandle)
	mentorSub.waitClosed(t)
	assert.Equal(t, 0, h.SessionCount())
	assert.Nil(t, h.Transcript(1))
}

func TestHub_ReconnectReplacesConnection(t *testing.T) {
	h, _ := newTestHub(defaultConfig())
	end := start.Add(time.Hour)

	mentorSub := newRecorder()
	_, err := h.Join(1, mentor(), end, mentorSub)
	require.NoError(t, err)

	first := newRecorder()
	oldHandle, err := h.Join(1, mentee(), end, first)
	require.NoError(t, err)

	second := newRecorder()
	newHandle, err := h.Join(1, mentee(), end, second)
	require.NoError(t, err)
	first.waitClosed(t)

	assert.Len(t, h.Participants(1), 2)

	_, err = h.Send(oldHandle, "stale")
	assert.ErrorIs(t, err, ErrNotJoined)

	_, err = h.Send(newHandle, "fresh")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(mentorSub.Messages()) == 1 }, time.Second, 5*time.Millisecond)

	// повторное подключение не рассылает presence.joined ещё раз
	joined := 0
	for _, e := range mentorSub.Events() {
		if e.Type == EventPresenceJoined {
			joined++
		}
	}
	assert.Equal(t, 1, joined)

	// Leave по устаревшему handle не трогает новое подключение
	h.Leave(oldHandle)
	assert.Len(t, h.Participants(1), 2)
}

func TestHub_DropsAfterRetries(t *testing.T) {
	h, _ := newTestHub(defaultConfig())
	end := start.Add(time.Hour)

	sender, err := h.Join(1, mentor(), end, newRecorder())
	require.NoError(t, err)
	broken := newRecorder()
	broken.failAll = true
	_, err = h.Join(1, mentee(), end, broken)
	require.NoError(t, err)

	_, err = h.Send(sender, "lost")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return broken.Calls() == 3 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 3, broken.Calls())
	assert.Len(t, h.Participants(1), 2)
}

func TestHub_TerminateEndsSession(t *testing.T) {
	h, _ := newTestHub(defaultConfig())
	end := start.Add(time.Hour)

	mentorSub, menteeSub := newRecorder(), newRecorder()
	mentorHandle, err := h.Join(1, mentor(), end, mentorSub)
	require.NoError(t, err)
	_, err = h.Join(1, mentee(), end, menteeSub)
	require.NoError(t, err)

	h.Terminate(1)
	mentorSub.waitClosed(t)
	menteeSub.waitClosed(t)

	last := menteeSub.Events()[len(menteeSub.Events())-1]
	assert.Equal(t, EventSessionEnded, last.Type)
	assert.Equal(t, 0, h.SessionCount())

	_, err = h.Send(mentorHandle, "after end")
	assert.ErrorIs(t, err, ErrNotJoined)

	h.Terminate(1)
}

func TestHub_SweepClosesExpiredSessions(t *testing.T) {
	h, _ := newTestHub(defaultConfig())

	expiring := newRecorder()
	_, err := h.Join(1, mentor(), start.Add(time.Hour), expiring)
	require.NoError(t, err)
	_, err = h.Join(2, mentee(), start.Add(3*time.Hour), newRecorder())
	require.NoError(t, err)

	assert.Equal(t, 0, h.Sweep(start.Add(30*time.Minute)))
	assert.Equal(t, 1, h.Sweep(start.Add(time.Hour)))
	expiring.waitClosed(t)
	assert.Equal(t, 1, h.SessionCount())
	assert.Empty(t, h.Participants(1))
	assert.Len(t, h.Participants(2), 1)
}

func TestHub_RateLimit(t *testing.T) {
	cfg := defaultConfig()
	cfg.RatePerSecond = 1
	cfg.RateBurst = 2
	h, clock := newTestHub(cfg)

	handle, err := h.Join(1, mentor(), start.Add(time.Hour), newRecorder())
	require.NoError(t, err)

	_, err = h.Send(handle, "one")
	require.NoError(t, err)
	_, err = h.Send(handle, "two")
	require.NoError(t, err)
	_, err = h.Send(handle, "three")
	assert.ErrorIs(t, err, ErrRateLimited)

	clock.Set(start.Add(time.Second))
	_, err = h.Send(handle, "four")
	assert.NoError(t, err)
}

func TestHub_TranscriptIsBounded(t *testing.T) {
	cfg := defaultConfig()
	cfg.TranscriptLimit = 3
	h, _ := newTestHub(cfg)

	handle, err := h.Join(1, mentor(), start.Add(time.Hour), newRecorder())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := h.Send(handle, fmt.Sprintf("m%d", i))
		require.NoError(t, err)
	}

	transcript := h.Transcript(1)
	require.Len(t, transcript, 3)
	assert.Equal(t, "m2", transcript[0].Text)
	assert.Equal(t, "m4", transcript[2].Text)
}

func TestHub_ConcurrentSenders(t *testing.T) {
	h, _ := newTestHub(defaultConfig())
	end := start.Add(time.Hour)

	receiver := newRecorder()
	_, err := h.Join(1, Participant{Identity: "user:1", UserID: 1}, end, receiver)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for s := 2; s <= 5; s++ {
		handle, err := h.Join(1, Participant{Identity: fmt.Sprintf("user:%d", s), UserID: int64(s)}, end, newRecorder())
		require.NoError(t, err)
		wg.Add(1)
		go func(handle *Handle) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				_, err := h.Send(handle, fmt.Sprintf("%s-%02d", handle.Identity, i))
				assert.NoError(t, err)
			}
		}(handle)
	}
	wg.Wait()

	require.Eventually(t, func() bool { return len(receiver.Messages()) == 80 }, 2*time.Second, 5*time.Millisecond)

	// сообщения каждого отправителя приходят в порядке отправки
	last := map[string]string{}
	for _, e := range receiver.Events() {
		if e.Type != EventMessage {
			continue
		}
		prev, ok := last[e.Message.Sender]
		if ok {
			assert.Less(t, prev, e.Message.Text)
		}
		last[e.Message.Sender] = e.Message.Text
	}
}
