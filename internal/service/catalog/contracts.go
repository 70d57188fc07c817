package catalog

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталожных сессий
type CatalogRepository interface {
	Create(ctx context.Context, session *domain.CatalogSession) (*domain.CatalogSession, error)
	GetByID(ctx context.Context, id int64) (*domain.CatalogSession, error)
	ListUpcoming(ctx context.Context, now time.Time, mentorID *int64) ([]*domain.CatalogSession, error)
}

// MentorClient интерфейс клиента профилей менторов
type MentorClient interface {
	GetMentor(ctx context.Context, mentorID int64) (*domain.Mentor, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
