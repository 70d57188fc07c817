package transition_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ApplyStatusChange(ctx context.Context, id int64, expected domain.BookingStatus, change domain.StatusChange) (*domain.Booking, error)
}

// CreditRepository интерфейс репозитория кредитов менти
type CreditRepository interface {
	Refund(ctx context.Context, menteeID, bookingID int64) error
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	PublishBooking(ctx context.Context, eventType string, booking *domain.Booking, actorID int64) error
}

// LiveHub интерфейс хаба live-сессий
type LiveHub interface {
	Terminate(bookingID int64)
}

// Metrics интерфейс метрик переходов бронирований
type Metrics interface {
	BookingTransition(status string, err error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
