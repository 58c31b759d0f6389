package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Commission struct {
	orderID   uuid.UUID
	amount    decimal.Decimal
	rate      decimal.Decimal
	createdAt time.Time
}

// NewCommission derives the platform cut from the order total, rounded to the minor unit.
func NewCommission(o *Order, rate decimal.Decimal, now time.Time) Commission {
	return Commission{
		orderID:   o.ID(),
		amount:    o.TotalAmount().Mul(rate).Round(MoneyScale),
		rate:      rate,
		createdAt: now,
	}
}

func ReconstructCommission(orderID uuid.UUID, amount, rate decimal.Decimal, createdAt time.Time) Commission {
	return Commission{orderID: orderID, amount: amount, rate: rate, createdAt: createdAt}
}

func (c Commission) OrderID() uuid.UUID      { return c.orderID }
func (c Commission) Amount() decimal.Decimal { return c.amount }
func (c Commission) Rate() decimal.Decimal   { return c.rate }
func (c Commission) CreatedAt() time.Time    { return c.createdAt }
