package availability

import (
	"context"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория недельных расписаний
type AvailabilityRepository interface {
	Get(ctx context.Context, mentorID int64) (*domain.MentorAvailability, error)
	Replace(ctx context.Context, availability *domain.MentorAvailability) (*domain.MentorAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
