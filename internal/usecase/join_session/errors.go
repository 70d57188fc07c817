package join_session

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: join_session: booking not found", domain.ErrNotFound)

	// ErrNotParticipant возвращается, когда пользователь не участник бронирования
	ErrNotParticipant = fmt.Errorf("%w: join_session: not a participant", domain.ErrForbidden)

	// ErrJoinWindowClosed возвращается вне окна подключения или для неподтверждённого бронирования
	ErrJoinWindowClosed = fmt.Errorf("%w: join_session: join window is closed", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: join_session: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("join_session: internal error")
)
