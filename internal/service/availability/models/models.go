package models

import (
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// Request модели

// SetAvailabilityRequest запрос на замену недельного расписания
type SetAvailabilityRequest struct {
	UserID   int64               `json:"userId"`
	MentorID int64               `json:"mentorId"`
	Weekly   map[string][]string `json:"weekly"` // {"monday": ["10:00-11:00"], ...}
}

// Response модели

// AvailabilityResponse недельное расписание ментора
type AvailabilityResponse struct {
	MentorID  int64               `json:"mentorId"`
	Weekly    map[string][]string `json:"weekly"`
	UpdatedAt *time.Time          `json:"updatedAt,omitempty"` // nil - расписание ещё не задано
}

// FromDomainAvailability конвертирует domain модель в DTO
func FromDomainAvailability(a *domain.MentorAvailability) *AvailabilityResponse {
	if a == nil {
		return nil
	}
	updatedAt := a.UpdatedAt
	return &AvailabilityResponse{
		MentorID:  a.MentorID,
		Weekly:    a.Weekly.ToWire(),
		UpdatedAt: &updatedAt,
	}
}

// EmptyAvailability расписание ментора, который ещё ничего не предложил
func EmptyAvailability(mentorID int64) *AvailabilityResponse {
	return &AvailabilityResponse{
		MentorID: mentorID,
		Weekly:   domain.WeeklyAvailability{}.ToWire(),
	}
}
