package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// buildSlots помечает доступность каждого предложенного слота
// Слот недоступен, если его держит активное бронирование или его начало уже наступило
func buildSlots(
	offered []domain.TimeSlot,
	bookings []*domain.Booking,
	date time.Time,
	location *time.Location,
	now time.Time,
) []Slot {
	held := make(map[domain.TimeSlot]struct{}, len(bookings))
	for _, booking := range bookings {
		if booking.IsActive() && booking.Slot != nil {
			held[*booking.Slot] = struct{}{}
		}
	}

	result := make([]Slot, 0, len(offered))
	for _, slot := range offered {
		startsAt := slot.Start.OnDate(date, location)
		_, taken := held[slot]

		result = append(result, Slot{
			Slot:      slot,
			StartsAt:  startsAt,
			Available: !taken && startsAt.After(now),
		})
	}

	return result
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня в часовом поясе расписания)
func isDateInPast(date, now time.Time, location *time.Location) bool {
	local := now.In(location)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly(date).Before(today)
}

// dateOnly отбрасывает время, оставляя календарную дату
func dateOnly(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
