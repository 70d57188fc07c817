package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

var (
	// ErrSessionNotFound возвращается, когда каталожная сессия не найдена
	ErrSessionNotFound = fmt.Errorf("%w: catalog.repository: session not found", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
