package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/catalog"
	creditRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/credit"
	"github.com/m04kA/SMC-MentoringService/internal/integrations/mentorprofile"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo         BookingRepository
	catalogRepo         CatalogRepository
	creditRepo          CreditRepository
	availabilityService AvailabilityService
	mentorClient        MentorClient
	publisher           EventPublisher
	metrics             Metrics
	txManager           TransactionManager
	location            *time.Location
	timeProvider        TimeProvider
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс, в котором заданы слоты недельного расписания
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	creditRepo CreditRepository,
	availabilityService AvailabilityService,
	mentorClient MentorClient,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:         bookingRepo,
		catalogRepo:         catalogRepo,
		creditRepo:          creditRepo,
		availabilityService: availabilityService,
		mentorClient:        mentorClient,
		publisher:           publisher,
		metrics:             metrics,
		txManager:           txManager,
		location:            location,
		timeProvider:        &RealTimeProvider{},
		logger:              logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка конфликта, вставка и резервирование кредита выполняются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: mentee=%d, mentor=%d, date=%v, slot=%v, catalogSession=%v",
		req.MenteeID, req.MentorID, req.Date, req.Slot, req.CatalogSessionID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Собираем кандидата: время встречи и ментор
	var (
		candidate *domain.Booking
		err       error
	)
	if req.CatalogSessionID != nil {
		candidate, err = uc.catalogCandidate(ctx, req, now)
	} else {
		candidate, err = uc.adHocCandidate(ctx, req, now)
	}
	if err != nil {
		uc.metrics.BookingTransition(string(domain.StatusPending), err)
		return nil, err
	}

	if candidate.MentorID == req.MenteeID {
		uc.logger.Warn("CreateBooking: mentor=%d cannot book themself", req.MenteeID)
		return nil, fmt.Errorf("%w: cannot book your own session", ErrInvalidInput)
	}

	// 4. Ментор должен быть одобрен
	if err := uc.checkMentor(ctx, candidate.MentorID); err != nil {
		uc.metrics.BookingTransition(string(domain.StatusPending), err)
		return nil, err
	}

	var result *domain.Booking

	// 5. Атомарная вставка и резервирование кредита
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := uc.bookingRepo.InsertIfNoConflict(txCtx, candidate)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSlotConflict), errors.Is(err, bookingRepo.ErrCapacityExhausted):
				uc.logger.Warn("CreateBooking: slot not available for mentor=%d: %v", candidate.MentorID, err)
				return ErrSlotNotAvailable
			case errors.Is(err, bookingRepo.ErrCatalogSessionNotFound):
				uc.logger.Warn("CreateBooking: catalog session id=%d not found", *candidate.CatalogSessionID)
				return ErrCatalogSessionNotFound
			}
			uc.logger.Error("CreateBooking: failed to insert booking: %v", err)
			return fmt.Errorf("%w: failed to insert booking: %v", ErrInternal, err)
		}

		if err := uc.creditRepo.Reserve(txCtx, req.MenteeID, created.ID); err != nil {
			if errors.Is(err, creditRepo.ErrInsufficientCredit) {
				uc.logger.Warn("CreateBooking: mentee=%d has no remaining credit", req.MenteeID)
				return ErrInsufficientCredit
			}
			uc.logger.Error("CreateBooking: failed to reserve credit for mentee=%d: %v", req.MenteeID, err)
			return fmt.Errorf("%w: failed to reserve credit: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	uc.metrics.BookingTransition(string(domain.StatusPending), err)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 6. Событие публикуется после фиксации транзакции
	if err := uc.publisher.PublishBooking(ctx, events.BookingCreated, result, req.MenteeID); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return fromDomain(result), nil
}

// adHocCandidate проверяет слот недельного расписания и вычисляет время встречи
func (uc *UseCase) adHocCandidate(ctx context.Context, req *Request, now time.Time) (*domain.Booking, error) {
	date := dateOnly(*req.Date)
	slot := *req.Slot

	offered, err := uc.availabilityService.IsBookable(ctx, req.MentorID, date.Weekday(), slot)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check availability of mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
	}
	if !offered {
		uc.logger.Warn("CreateBooking: mentor=%d does not offer %s on %s",
			req.MentorID, slot, domain.WeekdayName(date.Weekday()))
		return nil, ErrSlotNotOffered
	}

	startsAt := slot.Start.OnDate(date, uc.location)
	if !startsAt.After(now) {
		uc.logger.Warn("CreateBooking: slot %s on %s has already started",
			slot, date.Format(domain.DateFormat))
		return nil, ErrSlotInPast
	}

	return &domain.Booking{
		MentorID:    req.MentorID,
		MenteeID:    req.MenteeID,
		BookingDate: &date,
		Slot:        &slot,
		StartsAt:    startsAt,
		EndsAt:      slot.End.OnDate(date, uc.location),
		Message:     req.Message,
		Status:      domain.StatusPending,
	}, nil
}

// catalogCandidate проверяет каталожную сессию
// Заполненность окончательно проверяется при вставке
func (uc *UseCase) catalogCandidate(ctx context.Context, req *Request, now time.Time) (*domain.Booking, error) {
	session, err := uc.catalogRepo.GetByID(ctx, *req.CatalogSessionID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrSessionNotFound) {
			uc.logger.Warn("CreateBooking: catalog session id=%d not found", *req.CatalogSessionID)
			return nil, ErrCatalogSessionNotFound
		}
		uc.logger.Error("CreateBooking: failed to get catalog session id=%d: %v", *req.CatalogSessionID, err)
		return nil, fmt.Errorf("%w: failed to get catalog session: %v", ErrInternal, err)
	}

	if req.MentorID != 0 && req.MentorID != session.MentorID {
		uc.logger.Warn("CreateBooking: catalog session id=%d belongs to mentor=%d, not %d",
			session.ID, session.MentorID, req.MentorID)
		return nil, fmt.Errorf("%w: catalog session belongs to another mentor", ErrInvalidInput)
	}

	if session.HasStarted(now) {
		uc.logger.Warn("CreateBooking: catalog session id=%d has started", session.ID)
		return nil, ErrSessionStarted
	}
	if session.IsFull() {
		uc.logger.Warn("CreateBooking: catalog session id=%d is full, %d/%d",
			session.ID, session.ActiveBookings, session.Capacity)
		return nil, ErrSlotNotAvailable
	}

	sessionID := session.ID
	return &domain.Booking{
		MentorID:         session.MentorID,
		MenteeID:         req.MenteeID,
		CatalogSessionID: &sessionID,
		StartsAt:         session.StartsAt,
		EndsAt:           session.EndsAt(),
		Message:          req.Message,
		Status:           domain.StatusPending,
	}, nil
}

// checkMentor проверяет, что ментор существует и одобрен
func (uc *UseCase) checkMentor(ctx context.Context, mentorID int64) error {
	mentor, err := uc.mentorClient.GetMentor(ctx, mentorID)
	if err != nil {
		if errors.Is(err, mentorprofile.ErrMentorNotFound) {
			uc.logger.Warn("CreateBooking: mentor=%d not found", mentorID)
			return ErrMentorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get mentor=%d: %v", mentorID, err)
		return fmt.Errorf("%w: failed to get mentor: %v", ErrInternal, err)
	}

	if !mentor.IsApproved() {
		uc.logger.Warn("CreateBooking: mentor=%d has status=%s", mentorID, mentor.Status)
		return ErrMentorNotApproved
	}

	return nil
}
