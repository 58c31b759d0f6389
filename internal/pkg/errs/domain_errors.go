package errs

import "errors"

// Error taxonomy shared by the inventory, ledger and checkout layers.
// Usecase sentinels are marked with one of these so handlers can branch on the category.
var (
	ErrNotFound                      = errors.New("not found")
	ErrInsufficientStock             = errors.New("insufficient stock")
	ErrConcurrentReservationConflict = errors.New("concurrent reservation conflict")
	ErrPaymentProvider               = errors.New("payment provider error")
	ErrInvalidOrderState             = errors.New("invalid order state")
	ErrInvalidStockState             = errors.New("invalid stock state")
	ErrValidation                    = errors.New("validation error")
	ErrConflict                      = errors.New("conflict")
	ErrForbidden                     = errors.New("forbidden")
)
