package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a snapshot of the product line at order time.
type Item struct {
	ProductID uuid.UUID
	Quantity  int32
	Price     decimal.Decimal
}

func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt32(i.Quantity))
}

type Order struct {
	id           uuid.UUID
	sellerID     uuid.UUID
	buyerID      *uuid.UUID
	items        []Item
	totalAmount  decimal.Decimal
	status       Status
	sagaID       *uuid.UUID
	statusReason string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewOrder(sellerID uuid.UUID, buyerID *uuid.UUID, items []Item, sagaID *uuid.UUID, now time.Time) (*Order, error) {
	if sellerID == uuid.Nil {
		return nil, ErrMissingSeller
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	snapshot := make([]Item, len(items))
	for i, it := range items {
		switch {
		case it.ProductID == uuid.Nil:
			return nil, ErrMissingProduct
		case it.Quantity <= 0:
			return nil, ErrInvalidQuantity
		case it.Price.IsNegative():
			return nil, ErrNegativePrice
		}
		snapshot[i] = it
	}

	return &Order{
		id:          uuid.New(),
		sellerID:    sellerID,
		buyerID:     buyerID,
		items:       snapshot,
		totalAmount: Total(snapshot),
		status:      StatusPending,
		sagaID:      sagaID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func Reconstruct(
	id, sellerID uuid.UUID,
	buyerID *uuid.UUID,
	items []Item,
	totalAmount decimal.Decimal,
	status Status,
	sagaID *uuid.UUID,
	statusReason string,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:           id,
		sellerID:     sellerID,
		buyerID:      buyerID,
		items:        items,
		totalAmount:  totalAmount,
		status:       status,
		sagaID:       sagaID,
		statusReason: statusReason,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Total is the sum of item subtotals.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (o *Order) MarkPaid(now time.Time) error {
	if o.status != StatusPending {
		return ErrNotPending
	}
	o.status = StatusPaid
	o.updatedAt = now
	return nil
}

// Terminate moves the order into a failure status. It reports false with no
// change when the order was already FAILED or CANCELLED.
func (o *Order) Terminate(status Status, reason string, now time.Time) (bool, error) {
	if !status.IsTerminalFailure() {
		return false, ErrUnknownStatus
	}
	if o.status.IsTerminalFailure() {
		return false, nil
	}
	o.status = status
	o.statusReason = reason
	o.updatedAt = now
	return true, nil
}

func (o *Order) ID() uuid.UUID                { return o.id }
func (o *Order) SellerID() uuid.UUID          { return o.sellerID }
func (o *Order) BuyerID() *uuid.UUID          { return o.buyerID }
func (o *Order) Items() []Item                { return append([]Item(nil), o.items...) }
func (o *Order) TotalAmount() decimal.Decimal { return o.totalAmount }
func (o *Order) Status() Status               { return o.status }
func (o *Order) SagaID() *uuid.UUID           { return o.sagaID }
func (o *Order) StatusReason() string         { return o.statusReason }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }
