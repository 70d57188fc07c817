package join_session

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/internal/infra/rtc"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	MarkJoined(ctx context.Context, id int64, at time.Time) error
}

// TokenIssuer интерфейс выпуска токенов доступа к комнате встречи
type TokenIssuer interface {
	Issue(grant rtc.Grant, now time.Time) (string, error)
	URL() string
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	PublishBooking(ctx context.Context, eventType string, booking *domain.Booking, actorID int64) error
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
