package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentLink struct {
	ID   string
	Link string
}

// PaymentProvider creates a hosted checkout for an order. Implementations
// mark their failures with errs.ErrPaymentProvider.
type PaymentProvider interface {
	CreatePaymentLink(ctx context.Context, orderID uuid.UUID, title string, amount decimal.Decimal) (*PaymentLink, error)
}
