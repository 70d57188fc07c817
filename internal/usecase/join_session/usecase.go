package join_session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
	"github.com/m04kA/SMC-MentoringService/internal/infra/events"
	"github.com/m04kA/SMC-MentoringService/internal/infra/rtc"
	bookingRepo "github.com/m04kA/SMC-MentoringService/internal/infra/storage/booking"
)

// UseCase use case выдачи допуска к встрече
type UseCase struct {
	bookingRepo  BookingRepository
	issuer       TokenIssuer
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	issuer TokenIssuer,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		issuer:       issuer,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выдает участнику подтверждённого бронирования токен доступа к встрече
// Допуск возможен за 10 минут до начала и до окончания встречи
// Чтение бронирования и фиксация допуска выполняются в одной транзакции с блокировкой строки,
// поэтому допуск не пересекается с переходами статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("JoinSession: booking=%d, user=%d", req.BookingID, req.UserID)

	if req.BookingID <= 0 || req.UserID <= 0 {
		uc.logger.Warn("JoinSession: invalid ids booking=%d, user=%d", req.BookingID, req.UserID)
		return nil, fmt.Errorf("%w: bookingID and userID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	identity := domain.ParticipantIdentity(req.UserID)
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = identity
	}

	var (
		booking   *domain.Booking
		token     string
		firstJoin bool
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("JoinSession: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("JoinSession: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.IsParticipant(req.UserID) {
			uc.logger.Warn("JoinSession: user=%d is not a participant of booking id=%d", req.UserID, req.BookingID)
			return ErrNotParticipant
		}

		if !booking.CanJoin(now) || booking.MeetingRef == nil {
			uc.logger.Warn("JoinSession: join window closed for booking id=%d, status=%s, startsAt=%s",
				req.BookingID, booking.Status, booking.StartsAt)
			return ErrJoinWindowClosed
		}

		token, err = uc.issuer.Issue(rtc.Grant{
			BookingID: booking.ID,
			Room:      *booking.MeetingRef,
			Identity:  identity,
			Name:      displayName,
			ExpiresAt: booking.EndsAt,
		}, now)
		if err != nil {
			uc.logger.Error("JoinSession: failed to issue token for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to issue token: %v", ErrInternal, err)
		}

		firstJoin = !booking.HasJoined()
		if !firstJoin {
			return nil
		}
		if err := uc.bookingRepo.MarkJoined(txCtx, booking.ID, now); err != nil {
			if errors.Is(err, bookingRepo.ErrNotJoinable) {
				uc.logger.Warn("JoinSession: booking id=%d left confirmed status before join was recorded", req.BookingID)
				return ErrJoinWindowClosed
			}
			uc.logger.Error("JoinSession: failed to record join for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to record join: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if firstJoin {
		if err := uc.publisher.PublishBooking(ctx, events.BookingJoined, booking, req.UserID); err != nil {
			uc.logger.Warn("JoinSession: failed to publish event for booking id=%d: %v", req.BookingID, err)
		}
	}

	uc.logger.Info("JoinSession: issued join authorization for %s to booking id=%d, first=%t",
		identity, booking.ID, firstJoin)

	return &Response{
		BookingID:   booking.ID,
		RoomID:      domain.RoomID(booking.ID),
		MeetingRef:  *booking.MeetingRef,
		Identity:    identity,
		DisplayName: displayName,
		Token:       token,
		ProviderURL: uc.issuer.URL(),
		ExpiresAt:   booking.EndsAt,
	}, nil
}
