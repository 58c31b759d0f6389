package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is immutable once created; corrections are new entries referencing the original.
type Entry struct {
	id          uuid.UUID
	userID      uuid.UUID
	amount      decimal.Decimal
	entryType   EntryType
	category    Category
	orderID     *uuid.UUID
	referenceID *uuid.UUID
	description string
	createdAt   time.Time
}

func newEntry(userID uuid.UUID, amount decimal.Decimal, t EntryType, c Category, orderID, referenceID *uuid.UUID, description string, now time.Time) (*Entry, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return &Entry{
		id:          uuid.New(),
		userID:      userID,
		amount:      amount,
		entryType:   t,
		category:    c,
		orderID:     orderID,
		referenceID: referenceID,
		description: description,
		createdAt:   now,
	}, nil
}

// SaleEntry credits the seller with the full order total.
func SaleEntry(sellerID, orderID uuid.UUID, total decimal.Decimal, now time.Time) (*Entry, error) {
	return newEntry(sellerID, total, Credit, CategorySale, &orderID, nil,
		fmt.Sprintf("Sale revenue for order %s", orderID), now)
}

// CommissionEntry debits the seller with the platform commission.
func CommissionEntry(sellerID, orderID uuid.UUID, commission decimal.Decimal, now time.Time) (*Entry, error) {
	return newEntry(sellerID, commission, Debit, CategoryCommission, &orderID, nil,
		fmt.Sprintf("Platform commission for order %s", orderID), now)
}

func DepositEntry(userID uuid.UUID, amount decimal.Decimal, now time.Time) (*Entry, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveFunds
	}
	return newEntry(userID, amount, Credit, CategoryDeposit, nil, nil, "Manual funding", now)
}

// Reverse builds the compensating REFUND entry: same user and amount, opposite type.
func (e *Entry) Reverse(now time.Time) (*Entry, error) {
	if e.category == CategoryRefund {
		return nil, ErrReversalOfRefund
	}
	ref := e.id
	return newEntry(e.userID, e.amount, e.entryType.Opposite(), CategoryRefund, e.orderID, &ref,
		fmt.Sprintf("Compensation/Rollback for %s (Ref: %s)", e.category, e.id), now)
}

func Reconstruct(
	id, userID uuid.UUID,
	amount decimal.Decimal,
	t EntryType,
	c Category,
	orderID, referenceID *uuid.UUID,
	description string,
	createdAt time.Time,
) *Entry {
	return &Entry{
		id:          id,
		userID:      userID,
		amount:      amount,
		entryType:   t,
		category:    c,
		orderID:     orderID,
		referenceID: referenceID,
		description: description,
		createdAt:   createdAt,
	}
}

// Signed is the amount as seen by the entry's user: credits add, debits subtract.
func (e *Entry) Signed() decimal.Decimal {
	if e.entryType == Debit {
		return e.amount.Neg()
	}
	return e.amount
}

func (e *Entry) ID() uuid.UUID           { return e.id }
func (e *Entry) UserID() uuid.UUID       { return e.userID }
func (e *Entry) Amount() decimal.Decimal { return e.amount }
func (e *Entry) Type() EntryType         { return e.entryType }
func (e *Entry) Category() Category      { return e.category }
func (e *Entry) OrderID() *uuid.UUID     { return e.orderID }
func (e *Entry) ReferenceID() *uuid.UUID { return e.referenceID }
func (e *Entry) Description() string     { return e.description }
func (e *Entry) CreatedAt() time.Time    { return e.createdAt }

// Net sums signed amounts.
func Net(entries []*Entry) decimal.Decimal {
	net := decimal.Zero
	for _, e := range entries {
		net = net.Add(e.Signed())
	}
	return net
}

// PendingReversals returns the entries that still need a REFUND counterpart.
func PendingReversals(entries []*Entry) []*Entry {
	reversed := make(map[uuid.UUID]struct{}, len(entries))
	for _, e := range entries {
		if e.referenceID != nil {
			reversed[*e.referenceID] = struct{}{}
		}
	}

	var pending []*Entry
	for _, e := range entries {
		if e.category == CategoryRefund {
			continue
		}
		if _, done := reversed[e.id]; done {
			continue
		}
		pending = append(pending, e)
	}
	return pending
}
