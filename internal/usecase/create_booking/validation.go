package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// validateRequest валидирует входные данные запроса и нормализует сообщение
func validateRequest(req *Request) error {
	if req.MenteeID <= 0 {
		return fmt.Errorf("%w: menteeID must be positive", ErrInvalidInput)
	}

	if req.MentorID < 0 {
		return fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	adHoc := req.Date != nil || req.Slot != nil
	catalog := req.CatalogSessionID != nil

	// Ровно одна ссылка на время встречи
	if adHoc == catalog {
		return fmt.Errorf("%w: exactly one of (date, slot) or catalogSessionId is required", ErrInvalidInput)
	}

	if adHoc {
		if req.Date == nil || req.Date.IsZero() {
			return fmt.Errorf("%w: date is required", ErrInvalidInput)
		}
		if req.Slot == nil {
			return fmt.Errorf("%w: slot is required", ErrInvalidInput)
		}
		if !domain.IsCatalogSlot(*req.Slot) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidSlot, req.Slot)
		}
		if req.MentorID == 0 {
			return fmt.Errorf("%w: mentorID is required", ErrInvalidInput)
		}
	}

	if catalog && *req.CatalogSessionID <= 0 {
		return fmt.Errorf("%w: catalogSessionId must be positive", ErrInvalidInput)
	}

	if req.Message != nil {
		message := strings.TrimSpace(*req.Message)
		if utf8.RuneCountInString(message) > domain.MaxMessageLength {
			return fmt.Errorf("%w: message must be at most %d characters", ErrInvalidInput, domain.MaxMessageLength)
		}
		if message == "" {
			req.Message = nil
		} else {
			req.Message = &message
		}
	}

	return nil
}

// dateOnly отбрасывает время, оставляя календарную дату
func dateOnly(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
