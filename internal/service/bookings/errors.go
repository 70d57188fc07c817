package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: bookings: booking not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не участник бронирования
	ErrAccessDenied = fmt.Errorf("%w: bookings: access denied", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных параметрах фильтра
	ErrInvalidInput = fmt.Errorf("%w: bookings: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
