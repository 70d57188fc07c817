package catalog_sessions

import (
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/service/catalog/models"
)

// CreateSessionRequest HTTP request model
type CreateSessionRequest struct {
	Title           string    `json:"title" validate:"required"`
	Description     *string   `json:"description,omitempty"`
	StartsAt        time.Time `json:"startsAt" validate:"required"` // RFC3339
	DurationMinutes int       `json:"durationMinutes" validate:"required,gt=0"`
	Capacity        *int      `json:"capacity,omitempty" validate:"omitempty,gt=0"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateSessionRequest) ToServiceRequest(userID int64) *models.CreateSessionRequest {
	return &models.CreateSessionRequest{
		UserID:          userID,
		Title:           r.Title,
		Description:     r.Description,
		StartsAt:        r.StartsAt,
		DurationMinutes: r.DurationMinutes,
		Capacity:        r.Capacity,
	}
}
