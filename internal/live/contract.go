package live

import (
	"context"
	"time"
)

// Subscriber получатель событий одного подключения участника
// Deliver вызывается из одной горутины на подключение, события приходят по порядку.
// Close вызывается, когда подключение удалено из сессии.
type Subscriber interface {
	Deliver(ctx context.Context, event Event) error
	Close()
}

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
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
