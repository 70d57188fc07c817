package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

var (
	// ErrMentorNotFound возвращается, когда профиль ментора не найден
	ErrMentorNotFound = fmt.Errorf("%w: create_booking: mentor not found", domain.ErrNotFound)

	// ErrMentorNotApproved возвращается, когда ментор не одобрен
	ErrMentorNotApproved = fmt.Errorf("%w: create_booking: mentor is not approved", domain.ErrNotBookable)

	// ErrSlotNotOffered возвращается, когда ментор не предлагает слот в этот день недели
	ErrSlotNotOffered = fmt.Errorf("%w: create_booking: slot is not offered by the mentor", domain.ErrNotBookable)

	// ErrSlotInPast возвращается, когда слот уже начался
	ErrSlotInPast = fmt.Errorf("%w: create_booking: slot start has passed", domain.ErrNotBookable)

	// ErrCatalogSessionNotFound возвращается, когда каталожная сессия не найдена
	ErrCatalogSessionNotFound = fmt.Errorf("%w: create_booking: catalog session not found", domain.ErrNotFound)

	// ErrSessionStarted возвращается, когда каталожная сессия уже началась
	ErrSessionStarted = fmt.Errorf("%w: create_booking: catalog session has started", domain.ErrNotBookable)

	// ErrSlotNotAvailable возвращается, когда слот занят или все места сессии заняты
	ErrSlotNotAvailable = fmt.Errorf("%w: create_booking: slot is not available", domain.ErrConflict)

	// ErrInsufficientCredit возвращается, когда у менти нет кредитов
	ErrInsufficientCredit = fmt.Errorf("%w: create_booking: no remaining credit", domain.ErrInsufficientCredit)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
