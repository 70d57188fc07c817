package mentorprofile

import "github.com/m04kA/SMC-MentoringService/internal/domain"

// Mentor модель профиля ментора из сервиса профилей
type Mentor struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Status      string `json:"status"` // PENDING, APPROVED, REJECTED
}

// ToDomain конвертирует профиль в доменную модель
func (m *Mentor) ToDomain() *domain.Mentor {
	return &domain.Mentor{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		Status:      domain.MentorStatus(m.Status),
	}
}
