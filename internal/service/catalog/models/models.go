package models

import (
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// Request модели

// CreateSessionRequest запрос на публикацию каталожной сессии
type CreateSessionRequest struct {
	UserID          int64     `json:"userId"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	StartsAt        time.Time `json:"startsAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Capacity        *int      `json:"capacity,omitempty"` // nil - одно место
}

// ListSessionsRequest запрос на получение предстоящих сессий
type ListSessionsRequest struct {
	MentorID *int64 `json:"mentorId,omitempty"`
}

// Response модели

// SessionResponse данные каталожной сессии
type SessionResponse struct {
	ID              int64     `json:"id"`
	MentorID        int64     `json:"mentorId"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	StartsAt        time.Time `json:"startsAt"`
	EndsAt          time.Time `json:"endsAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Capacity        int       `json:"capacity"`
	ActiveBookings  int       `json:"activeBookings"`
	IsFull          bool      `json:"isFull"`
	CreatedAt       time.Time `json:"createdAt"`
}

// SessionListResponse список каталожных сессий
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.CatalogSession) *SessionResponse {
	if s == nil {
		return nil
	}
	return &SessionResponse{
		ID:              s.ID,
		MentorID:        s.MentorID,
		Title:           s.Title,
		Description:     s.Description,
		StartsAt:        s.StartsAt,
		EndsAt:          s.EndsAt(),
		DurationMinutes: s.DurationMinutes,
		Capacity:        s.Capacity,
		ActiveBookings:  s.ActiveBookings,
		IsFull:          s.IsFull(),
		CreatedAt:       s.CreatedAt,
	}
}

// FromDomainSessionList конвертирует список domain моделей в DTO
func FromDomainSessionList(sessions []*domain.CatalogSession) *SessionListResponse {
	resp := &SessionListResponse{Sessions: make([]SessionResponse, 0, len(sessions))}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, *FromDomainSession(s))
	}
	return resp
}
