package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// Request модель запроса на создание бронирования
// Указывается ровно одно из: (Date, Slot) или CatalogSessionID
type Request struct {
	MenteeID         int64            // ID менти (из заголовка X-User-ID)
	MentorID         int64            // ID ментора; для каталожной сессии можно не указывать
	Date             *time.Time       // Дата встречи (без времени)
	Slot             *domain.TimeSlot // Слот недельного расписания, например 10:00-11:00
	CatalogSessionID *int64           // ID каталожной сессии
	Message          *string          // Сообщение ментору (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64            // ID созданного бронирования
	MentorID         int64            // ID ментора
	MenteeID         int64            // ID менти
	BookingDate      *time.Time       // Дата встречи
	Slot             *domain.TimeSlot // Слот
	CatalogSessionID *int64           // ID каталожной сессии
	StartsAt         time.Time        // Начало встречи
	EndsAt           time.Time        // Конец встречи
	Message          *string          // Сообщение ментору
	Status           string           // Статус бронирования

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:               b.ID,
		MentorID:         b.MentorID,
		MenteeID:         b.MenteeID,
		BookingDate:      b.BookingDate,
		Slot:             b.Slot,
		CatalogSessionID: b.CatalogSessionID,
		StartsAt:         b.StartsAt,
		EndsAt:           b.EndsAt,
		Message:          b.Message,
		Status:           string(b.Status),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
