package domain

import (
	"errors"
	"fmt"
)

// Error kinds shared by every layer. Package-level errors wrap one of these
// so handlers can map them to a response with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyDecided     = errors.New("already decided")
	ErrInsufficientCredit = errors.New("insufficient credit")
	ErrNotBookable        = errors.New("not bookable")
)

// ErrInvalidSlot slot is malformed or outside the catalog
var ErrInvalidSlot = fmt.Errorf("%w: invalid time slot", ErrValidation)
