package credits

import "context"

// CreditRepository интерфейс репозитория кредитов менти
type CreditRepository interface {
	Grant(ctx context.Context, menteeID int64, amount int) (int, error)
	Balance(ctx context.Context, menteeID int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
