package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	InsertIfNoConflict(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория каталожных сессий
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CatalogSession, error)
}

// CreditRepository интерфейс репозитория кредитов менти
type CreditRepository interface {
	Reserve(ctx context.Context, menteeID, bookingID int64) error
}

// AvailabilityService интерфейс сервиса недельных расписаний
type AvailabilityService interface {
	IsBookable(ctx context.Context, mentorID int64, weekday time.Weekday, slot domain.TimeSlot) (bool, error)
}

// MentorClient интерфейс клиента профилей менторов
type MentorClient interface {
	GetMentor(ctx context.Context, mentorID int64) (*domain.Mentor, error)
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	PublishBooking(ctx context.Context, eventType string, booking *domain.Booking, actorID int64) error
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
