package mentorprofile

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

var (
	// ErrMentorNotFound возвращается, когда профиль ментора не найден
	ErrMentorNotFound = fmt.Errorf("%w: mentor profile not found", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mentorprofile client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("mentorprofile client: invalid response")
)
