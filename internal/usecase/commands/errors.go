package commands

import (
	"puente-core/internal/domain/checkout"
	"puente-core/internal/domain/ledger"
	"puente-core/internal/domain/order"
	"puente-core/internal/domain/product"
	"puente-core/internal/pkg/errs"
)

var (
	ErrProductNotFound     = errs.Mark(errs.New("product not found"), errs.ErrNotFound)
	ErrInsufficientStock   = errs.Mark(errs.New("insufficient stock"), errs.ErrInsufficientStock)
	ErrReservationConflict = errs.Mark(errs.New("stock changed while reserving"), errs.ErrConcurrentReservationConflict)
	ErrStockNotReserved    = errs.Mark(errs.New("quantity exceeds reserved stock"), errs.ErrInvalidStockState)
	ErrProductReserved     = errs.Mark(errs.New("product has reserved stock"), errs.ErrConflict)
	ErrDuplicateSKU        = errs.Mark(errs.New("sku already used by this seller"), errs.ErrConflict)
	ErrStockBelowReserved  = errs.Mark(errs.New("stock cannot drop below reserved stock"), errs.ErrConflict)
	ErrProductNotOwned     = errs.Mark(errs.New("product does not belong to seller"), errs.ErrValidation)
	ErrProductInactive     = errs.Mark(errs.New("product is not active"), errs.ErrValidation)

	ErrOrderNotFound   = errs.Mark(errs.New("order not found"), errs.ErrNotFound)
	ErrOrderNotPending = errs.Mark(errs.New("order is not pending"), errs.ErrInvalidOrderState)
	ErrFundingDisabled = errs.Mark(errs.New("manual funding is disabled in production"), errs.ErrForbidden)

	ErrCheckoutNotFound    = errs.Mark(errs.New("checkout not found"), errs.ErrNotFound)
	ErrCheckoutConflict    = errs.Mark(errs.New("checkout was updated concurrently"), errs.ErrConflict)
	ErrCheckoutResolved    = errs.Mark(errs.New("checkout already has a different payment outcome"), errs.ErrConflict)
	ErrCheckoutNotAwaiting = errs.Mark(errs.New("checkout is not awaiting payment"), errs.ErrConflict)
	ErrCheckoutStalled     = errs.New("checkout start timed out")
	ErrIdempotencyMismatch = errs.Mark(errs.New("idempotency key reused with a different request"), errs.ErrConflict)
)

// ReservationRollbackError reports a failed reservation whose compensating
// release also failed, leaving earlier items reserved.
type ReservationRollbackError struct {
	Cause    error
	Rollback error
}

func (e *ReservationRollbackError) Error() string {
	return "reservation failed: " + e.Cause.Error() + "; rollback failed: " + e.Rollback.Error()
}

func (e *ReservationRollbackError) Unwrap() []error {
	return []error{e.Cause, e.Rollback}
}

// validation marks domain rule violations so the handler answers 400.
func validation(err error) error {
	switch {
	case err == nil:
		return nil
	case errs.Is(err, product.ErrStockBelowReserved):
		return errs.Mark(err, ErrStockBelowReserved)
	case errs.Is(err, checkout.ErrAlreadyResolved):
		return errs.Mark(err, ErrCheckoutResolved)
	case errs.Is(err, checkout.ErrNotAwaiting):
		return errs.Mark(err, ErrCheckoutNotAwaiting)
	case errs.Is(err, order.ErrNotPending):
		return errs.Mark(err, ErrOrderNotPending)
	case errs.Is(err, ledger.ErrReversalOfRefund):
		return errs.Mark(err, errs.ErrConflict)
	}
	return errs.Mark(err, errs.ErrValidation)
}
