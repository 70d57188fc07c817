package transition_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: transition_booking: booking not found", domain.ErrNotFound)

	// ErrNotMentor возвращается, когда подтверждает или отклоняет не ментор бронирования
	ErrNotMentor = fmt.Errorf("%w: transition_booking: only the mentor may decide", domain.ErrForbidden)

	// ErrNotParticipant возвращается, когда действие выполняет не участник бронирования
	ErrNotParticipant = fmt.Errorf("%w: transition_booking: not a participant", domain.ErrForbidden)

	// ErrAlreadyDecided возвращается, когда бронирование уже покинуло нужный статус
	ErrAlreadyDecided = fmt.Errorf("%w: transition_booking: booking already decided", domain.ErrAlreadyDecided)

	// ErrCancelWindowClosed возвращается при отмене после окончания встречи
	ErrCancelWindowClosed = fmt.Errorf("%w: transition_booking: meeting has already ended", domain.ErrForbidden)

	// ErrNotConfirmed возвращается при завершении неподтверждённого бронирования
	ErrNotConfirmed = fmt.Errorf("%w: transition_booking: booking is not confirmed", domain.ErrForbidden)

	// ErrInvalidReason возвращается при слишком короткой или длинной причине отказа
	ErrInvalidReason = fmt.Errorf("%w: transition_booking: invalid rejection reason", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: transition_booking: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_booking: internal error")
)
