package apperrors

import (
	"errors"
	"fmt"
)

// Base error classes. Specific errors below wrap one of these, so callers
// classify with errors.Is(err, ErrValidation) and map to a status code.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

var (
	ErrAmountNotPositive   = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrAmountExceedsLimit  = fmt.Errorf("%w: amount exceeds maximum allowed", ErrValidation)
	ErrInsufficientBalance = fmt.Errorf("%w: insufficient balance", ErrValidation)
	ErrInsufficientStock   = fmt.Errorf("%w: insufficient quantity", ErrValidation)
	ErrAlreadyOwned        = fmt.Errorf("%w: permanent product already purchased", ErrValidation)

	ErrUserNotFound      = fmt.Errorf("%w: user", ErrNotFound)
	ErrProductNotFound   = fmt.Errorf("%w: product", ErrNotFound)
	ErrInventoryNotFound = fmt.Errorf("%w: inventory", ErrNotFound)

	// ErrPurchaseConflict is returned when two first purchases of the same
	// product race on the (user_id, product_id) unique constraint. The losing
	// request may be retried.
	ErrPurchaseConflict = fmt.Errorf("%w: concurrent purchase, retry", ErrConflict)
)
