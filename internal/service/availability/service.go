package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-MentoringService/internal/service/availability/models"
)

// Service сервис недельных расписаний менторов
type Service struct {
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(availabilityRepo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// Set целиком заменяет расписание ментора
// Доступно только самому ментору; каждый слот проверяется по каталогу
func (s *Service) Set(ctx context.Context, req *models.SetAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("Set: replacing availability of mentor=%d by user=%d", req.MentorID, req.UserID)

	if req.UserID != req.MentorID {
		s.logger.Warn("Set: user=%d is not mentor=%d", req.UserID, req.MentorID)
		return nil, ErrAccessDenied
	}

	weekly, err := domain.WeeklyAvailabilityFromWire(req.Weekly)
	if err == nil {
		err = weekly.Validate()
	}
	if err != nil {
		s.logger.Warn("Set: invalid schedule for mentor=%d: %v", req.MentorID, err)
		return nil, err
	}

	stored, err := s.availabilityRepo.Replace(ctx, &domain.MentorAvailability{
		MentorID: req.MentorID,
		Weekly:   weekly,
	})
	if err != nil {
		s.logger.Error("Set: repository error for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: Set - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Set: successfully replaced availability of mentor=%d", req.MentorID)
	return models.FromDomainAvailability(stored), nil
}

// Get получает расписание ментора
// Если расписание не задано, возвращает пустую неделю
func (s *Service) Get(ctx context.Context, mentorID int64) (*models.AvailabilityResponse, error) {
	s.logger.Info("Get: fetching availability of mentor=%d", mentorID)

	stored, err := s.availabilityRepo.Get(ctx, mentorID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			return models.EmptyAvailability(mentorID), nil
		}
		s.logger.Error("Get: repository error for mentor=%d: %v", mentorID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAvailability(stored), nil
}

// Weekly возвращает расписание ментора в domain-представлении
func (s *Service) Weekly(ctx context.Context, mentorID int64) (domain.WeeklyAvailability, error) {
	stored, err := s.availabilityRepo.Get(ctx, mentorID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			return domain.WeeklyAvailability{}, nil
		}
		s.logger.Error("Weekly: repository error for mentor=%d: %v", mentorID, err)
		return nil, fmt.Errorf("%w: Weekly - repository error: %v", ErrInternal, err)
	}
	return stored.Weekly, nil
}

// IsBookable проверяет, что ментор предлагает слот в этот день недели
// Конфликты с существующими бронированиями не проверяются
func (s *Service) IsBookable(ctx context.Context, mentorID int64, weekday time.Weekday, slot domain.TimeSlot) (bool, error) {
	weekly, err := s.Weekly(ctx, mentorID)
	if err != nil {
		return false, err
	}
	return weekly.Offers(weekday, slot), nil
}
