package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

var (
	// ErrSessionNotFound возвращается, когда каталожная сессия не найдена
	ErrSessionNotFound = fmt.Errorf("%w: catalog: session not found", domain.ErrNotFound)

	// ErrMentorNotFound возвращается, когда профиль ментора не найден
	ErrMentorNotFound = fmt.Errorf("%w: catalog: mentor not found", domain.ErrNotFound)

	// ErrMentorNotApproved возвращается, когда сессию публикует неодобренный ментор
	ErrMentorNotApproved = fmt.Errorf("%w: catalog: mentor is not approved", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: catalog: invalid input", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
