package booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking.repository: booking not found", domain.ErrNotFound)

	// ErrSlotConflict возвращается, когда слот ментора на эту дату уже занят активным бронированием
	ErrSlotConflict = fmt.Errorf("%w: booking.repository: slot already booked", domain.ErrConflict)

	// ErrCapacityExhausted возвращается, когда все места каталожной сессии заняты
	ErrCapacityExhausted = fmt.Errorf("%w: booking.repository: catalog session is full", domain.ErrConflict)

	// ErrCatalogSessionNotFound возвращается, когда каталожная сессия не найдена
	ErrCatalogSessionNotFound = fmt.Errorf("%w: booking.repository: catalog session not found", domain.ErrNotFound)

	// ErrStatusChanged возвращается, когда статус бронирования изменился до применения перехода
	ErrStatusChanged = fmt.Errorf("%w: booking.repository: status changed concurrently", domain.ErrAlreadyDecided)

	// ErrNotJoinable возвращается, когда бронирование больше не подтверждено к моменту фиксации допуска
	ErrNotJoinable = fmt.Errorf("%w: booking.repository: booking is not confirmed", domain.ErrForbidden)

	// ErrTransactionRequired возвращается при вызове атомарной операции вне транзакции
	ErrTransactionRequired = errors.New("booking.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
