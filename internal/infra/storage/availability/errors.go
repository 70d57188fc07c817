package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

var (
	// ErrAvailabilityNotFound возвращается, когда ментор ещё не задавал расписание
	ErrAvailabilityNotFound = fmt.Errorf("%w: availability.repository: availability not found", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")

	// ErrEncode возвращается при ошибке (де)сериализации расписания
	ErrEncode = errors.New("availability.repository: failed to encode weekly availability")
)
