package set_availability

import "github.com/m04kA/SMC-MentoringService/internal/service/availability/models"

// SetAvailabilityRequest HTTP request model
type SetAvailabilityRequest struct {
	Weekly map[string][]string `json:"weekly" validate:"required,max=7"` // {"monday": ["10:00-11:00"], ...}
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetAvailabilityRequest) ToServiceRequest(userID, mentorID int64) *models.SetAvailabilityRequest {
	return &models.SetAvailabilityRequest{
		UserID:   userID,
		MentorID: mentorID,
		Weekly:   r.Weekly,
	}
}
