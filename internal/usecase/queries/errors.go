package queries

import "puente-core/internal/pkg/errs"

var (
	ErrProductNotFound  = errs.Mark(errs.New("product not found"), errs.ErrNotFound)
	ErrOrderNotFound    = errs.Mark(errs.New("order not found"), errs.ErrNotFound)
	ErrCheckoutNotFound = errs.Mark(errs.New("checkout not found"), errs.ErrNotFound)
)
