package live

import (
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// EventType тип события live-сессии
type EventType string

const (
	EventMessage        EventType = "message"
	EventPresenceJoined EventType = "presence.joined"
	EventPresenceLeft   EventType = "presence.left"
	EventSessionEnded   EventType = "session.ended"
)

// Event событие, доставляемое участнику
type Event struct {
	Type        EventType           `json:"type"`
	BookingID   int64               `json:"bookingId"`
	Identity    string              `json:"identity,omitempty"`
	DisplayName string              `json:"displayName,omitempty"`
	Message     *domain.ChatMessage `json:"message,omitempty"`
	At          time.Time           `json:"at"`
}

// Participant участник live-сессии
type Participant struct {
	Identity    string
	UserID      int64
	DisplayName string
}

// Config параметры live-канала
type Config struct {
	QueueSize        int           // Размер очереди событий на подключение
	DeliveryAttempts int           // Попыток доставки одного события
	RetryDelay       time.Duration // Пауза между попытками
	TranscriptLimit  int           // Сколько последних сообщений хранить в памяти
	MessageMaxLength int           // Максимальная длина сообщения в символах
	RatePerSecond    float64       // Разрешённая частота сообщений участника (0 - без ограничения)
	RateBurst        int
}

// Handle подключение участника, возвращаемое Join
type Handle struct {
	BookingID int64
	Identity  string
	peer      *peer
}
