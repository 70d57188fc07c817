package credit

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

var (
	// ErrInsufficientCredit возвращается, когда у менти не осталось кредитов
	ErrInsufficientCredit = fmt.Errorf("%w: credit.repository: no remaining credit", domain.ErrInsufficientCredit)

	// ErrAccountNotFound возвращается при возврате кредита менти без счёта
	ErrAccountNotFound = fmt.Errorf("%w: credit.repository: credit account not found", domain.ErrNotFound)
	// ErrInvalidAmount возвращается при попытке начислить неположительное количество
	ErrInvalidAmount = fmt.Errorf("%w: credit.repository: amount must be positive", domain.ErrValidation)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("credit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("credit.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("credit.repository: failed to scan row")
)
