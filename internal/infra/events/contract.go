package events

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Conn соединение с брокером; *nats.Conn удовлетворяет интерфейсу
type Conn interface {
	Publish(subject string, data []byte) error
}
