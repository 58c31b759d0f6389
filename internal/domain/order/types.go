package order

import (
	"puente-core/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string { return string(s) }

// IsTerminalFailure reports whether the order has already been unwound.
func (s Status) IsTerminalFailure() bool {
	return s == StatusFailed || s == StatusCancelled
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusFailed, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrUnknownStatus
}

// CommissionRate is the platform-wide share taken from every sale.
var CommissionRate = decimal.RequireFromString("0.05")

// Amounts are kept in the currency minor unit.
const MoneyScale = 2

var (
	ErrNoItems          = errs.New("order must contain at least one item")
	ErrInvalidQuantity  = errs.New("item quantity must be positive")
	ErrNegativePrice    = errs.New("item price must not be negative")
	ErrMissingProduct   = errs.New("item product is required")
	ErrMissingSeller    = errs.New("order seller is required")
	ErrUnknownStatus    = errs.New("unknown order status")
	ErrNotPending       = errs.New("order is not pending")
)
