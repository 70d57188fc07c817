package transition_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/booking"
)

// UseCase use case переходов бронирования: подтверждение, отказ, отмена, завершение
type UseCase struct {
	bookingRepo  BookingRepository
	creditRepo   CreditRepository
	publisher    EventPublisher
	liveHub      LiveHub
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	creditRepo CreditRepository,
	publisher EventPublisher,
	liveHub LiveHub,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		creditRepo:   creditRepo,
		publisher:    publisher,
		liveHub:      liveHub,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет переход бронирования
// Строка бронирования блокируется на время транзакции, обновление защищено ожидаемым статусом,
// поэтому из конкурирующих решений применяется ровно одно, остальные получают ErrAlreadyDecided
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionBooking: booking=%d, user=%d, action=%s", req.BookingID, req.UserID, req.Action)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionBooking: validation failed: %v", err)
		return nil, err
	}
	target, _ := req.Action.target()

	now := uc.timeProvider.Now()

	var (
		result   *domain.Booking
		refunded bool
	)

	// 2. Переход и движение кредита в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("TransitionBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("TransitionBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if err := authorize(booking, req.UserID, req.Action); err != nil {
			uc.logger.Warn("TransitionBooking: user=%d cannot %s booking id=%d", req.UserID, req.Action, req.BookingID)
			return err
		}

		if err := checkTransition(booking, req.Action, target, now); err != nil {
			uc.logger.Warn("TransitionBooking: cannot %s booking id=%d in status=%s: %v",
				req.Action, req.BookingID, booking.Status, err)
			return err
		}

		updated, err := uc.bookingRepo.ApplyStatusChange(txCtx, booking.ID, booking.Status, buildChange(req, target))
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				uc.logger.Warn("TransitionBooking: booking id=%d changed concurrently", req.BookingID)
				return ErrAlreadyDecided
			}
			uc.logger.Error("TransitionBooking: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		if refundDue(booking, req.Action) {
			if err := uc.creditRepo.Refund(txCtx, booking.MenteeID, booking.ID); err != nil {
				uc.logger.Error("TransitionBooking: failed to refund credit for booking id=%d: %v", req.BookingID, err)
				return fmt.Errorf("%w: failed to refund credit: %v", ErrInternal, err)
			}
			refunded = true
		}

		result = updated
		return nil
	})
	uc.metrics.BookingTransition(string(target), err)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("TransitionBooking: booking id=%d is now %s, refunded=%t", result.ID, result.Status, refunded)

	// 3. Побочные эффекты после фиксации транзакции
	if result.IsTerminal() {
		uc.liveHub.Terminate(result.ID)
	}
	if err := uc.publisher.PublishBooking(ctx, events.EventTypeForStatus(result.Status), result, req.UserID); err != nil {
		uc.logger.Warn("TransitionBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return fromDomain(result, refunded), nil
}
