package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

var (
	// ErrAccessDenied возвращается, когда расписание меняет не сам ментор
	ErrAccessDenied = fmt.Errorf("%w: availability: only the mentor may change the schedule", domain.ErrForbidden)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
