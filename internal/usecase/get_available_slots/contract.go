package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListActiveByMentorDate получает активные бронирования слотов ментора на дату
	ListActiveByMentorDate(ctx context.Context, mentorID int64, date time.Time) ([]*domain.Booking, error)
}

// AvailabilityService интерфейс сервиса недельных расписаний
type AvailabilityService interface {
	Weekly(ctx context.Context, mentorID int64) (domain.WeeklyAvailability, error)
}

// MentorClient интерфейс клиента профилей менторов
type MentorClient interface {
	GetMentor(ctx context.Context, mentorID int64) (*domain.Mentor, error)
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
