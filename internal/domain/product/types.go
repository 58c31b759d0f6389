package product

import "puente-core/internal/pkg/errs"

var (
	ErrInvalidQuantity      = errs.New("quantity must be positive")
	ErrInsufficientStock    = errs.New("insufficient available stock")
	ErrReservationUnderflow = errs.New("quantity exceeds reserved stock")
	ErrStockBelowReserved   = errs.New("stock cannot be lower than reserved stock")
	ErrNegativeStock        = errs.New("stock counters must not be negative")
	ErrEmptyName            = errs.New("product name is required")
	ErrEmptySKU             = errs.New("product sku is required")
	ErrEmptyVertical        = errs.New("product vertical is required")
	ErrNegativePrice        = errs.New("product price must not be negative")
	ErrMissingSeller        = errs.New("product seller is required")
	ErrInvalidAttribute     = errs.New("invalid product attribute")
)

const (
	MaxNameLength        = 200
	MaxDescriptionLength = 5000
	MaxSKULength         = 64
)
