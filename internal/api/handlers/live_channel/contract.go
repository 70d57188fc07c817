package live_channel

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/internal/infra/rtc"
	"github.com/m04kA/SMC-MentoringService/internal/live"
)

// LiveHub интерфейс live-канала встреч
type LiveHub interface {
	Join(bookingID int64, participant live.Participant, expiresAt time.Time, sub live.Subscriber) (*live.Handle, error)
	Send(handle *live.Handle, text string) (*domain.ChatMessage, error)
	Leave(handle *live.Handle)
}

// BookingRepository интерфейс чтения бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// TokenVerifier проверяет токен допуска к встрече
type TokenVerifier interface {
	Verify(tokenString string, now time.Time) (*rtc.Grant, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
