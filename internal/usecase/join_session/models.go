package join_session

import "time"

// Request модель запроса на подключение к встрече
type Request struct {
	BookingID   int64  // ID бронирования
	UserID      int64  // ID пользователя
	DisplayName string // Отображаемое имя (опционально)
}

// Response допуск к встрече
type Response struct {
	BookingID   int64     // ID бронирования
	RoomID      string    // Комната live-канала
	MeetingRef  string    // Комната у RTC-провайдера
	Identity    string    // Идентификатор участника, "user:<id>"
	DisplayName string    // Отображаемое имя
	Token       string    // Подписанный токен доступа
	ProviderURL string    // Адрес RTC-провайдера
	ExpiresAt   time.Time // Окончание встречи, после него токен недействителен
}
