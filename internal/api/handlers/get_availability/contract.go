package get_availability

import (
	"context"

	"github.com/m04kA/SMC-MentoringService/internal/service/availability/models"
)

type AvailabilityService interface {
	Get(ctx context.Context, mentorID int64) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
