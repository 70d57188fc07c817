package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentoringService/internal/domain"
)

// StatusForError сопоставляет вид доменной ошибки с HTTP статусом
// Для ошибок без вида возвращает 500
func StatusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyDecided):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientCredit):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrNotBookable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
