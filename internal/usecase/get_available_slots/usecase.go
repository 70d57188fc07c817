package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/internal/integrations/mentorprofile"
)

// UseCase use case для получения доступных слотов ментора на дату
type UseCase struct {
	bookingRepo         BookingRepository
	availabilityService AvailabilityService
	mentorClient        MentorClient
	location            *time.Location
	timeProvider        TimeProvider
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityService AvailabilityService,
	mentorClient MentorClient,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:         bookingRepo,
		availabilityService: availabilityService,
		mentorClient:        mentorClient,
		location:            location,
		timeProvider:        &RealTimeProvider{},
		logger:              logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, mentor=%d, date=%s",
		req.UserID, req.MentorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	date := dateOnly(req.Date)

	if isDateInPast(date, now, uc.location) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Ментор должен быть одобрен
	mentor, err := uc.mentorClient.GetMentor(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, mentorprofile.ErrMentorNotFound) {
			uc.logger.Warn("GetAvailableSlots: mentor=%d not found", req.MentorID)
			return nil, ErrMentorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}
	if !mentor.IsApproved() {
		uc.logger.Warn("GetAvailableSlots: mentor=%d has status=%s", req.MentorID, mentor.Status)
		return nil, ErrMentorNotApproved
	}

	// 4. Получаем слоты, которые ментор предлагает в этот день недели
	weekly, err := uc.availabilityService.Weekly(ctx, req.MentorID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability of mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}
	offered := weekly.Normalize()[date.Weekday()]

	if len(offered) == 0 {
		uc.logger.Info("GetAvailableSlots: mentor=%d offers no slots on %s",
			req.MentorID, domain.WeekdayName(date.Weekday()))
		return &Response{Date: date, MentorID: req.MentorID, Slots: []Slot{}}, nil
	}

	// 5. Получаем активные бронирования ментора на эту дату
	bookings, err := uc.bookingRepo.ListActiveByMentorDate(ctx, req.MentorID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Вычисляем доступность для каждого слота
	slots := buildSlots(offered, bookings, date, uc.location, now)

	uc.logger.Info("GetAvailableSlots: generated %d slots for mentor=%d, date=%s",
		len(slots), req.MentorID, date.Format(domain.DateFormat))

	return &Response{
		Date:     date,
		MentorID: req.MentorID,
		Slots:    slots,
	}, nil
}
