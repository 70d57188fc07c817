package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

var (
	// ErrMentorNotFound возвращается, когда профиль ментора не найден
	ErrMentorNotFound = fmt.Errorf("%w: get_available_slots: mentor not found", domain.ErrNotFound)

	// ErrMentorNotApproved возвращается, когда ментор не одобрен
	ErrMentorNotApproved = fmt.Errorf("%w: get_available_slots: mentor is not approved", domain.ErrNotBookable)

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = fmt.Errorf("%w: get_available_slots: date is in the past", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: get_available_slots: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
