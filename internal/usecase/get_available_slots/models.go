package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID   int64     // ID пользователя (для логирования, не влияет на результат)
	MentorID int64     // ID ментора
	Date     time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date     time.Time // Дата, на которую запрашивались слоты
	MentorID int64     // ID ментора
	Slots    []Slot    // Слоты, которые ментор предлагает в этот день недели
}

// Slot модель временного слота
type Slot struct {
	Slot      domain.TimeSlot // Слот, например 10:00-11:00
	StartsAt  time.Time       // Абсолютное начало
	Available bool            // false - слот занят активным бронированием или уже начался
}
