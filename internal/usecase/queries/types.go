package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductView represents read-optimized product data
type ProductView struct {
	ID            uuid.UUID       `json:"id"`
	SellerID      uuid.UUID       `json:"seller_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	SKU           string          `json:"sku"`
	Vertical      string          `json:"vertical"`
	Attributes    map[string]any  `json:"attributes"`
	IsActive      bool            `json:"is_active"`
	Stock         int32           `json:"stock"`
	ReservedStock int32           `json:"reserved_stock"`
	ConsumedStock int32           `json:"consumed_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Available is the sellable quantity.
func (v *ProductView) Available() int32 { return v.Stock - v.ReservedStock }

type OrderItemView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int32           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type CommissionView struct {
	Amount decimal.Decimal `json:"amount"`
	Rate   decimal.Decimal `json:"rate"`
}

type LedgerEntryView struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	OrderID     *uuid.UUID      `json:"order_id,omitempty"`
	ReferenceID *uuid.UUID      `json:"reference_id,omitempty"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderView is an order with everything the ledger recorded for it.
type OrderView struct {
	ID            uuid.UUID          `json:"id"`
	SellerID      uuid.UUID          `json:"seller_id"`
	BuyerID       *uuid.UUID         `json:"buyer_id,omitempty"`
	Items         []OrderItemView    `json:"items"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Status        string             `json:"status"`
	StatusReason  *string            `json:"status_reason,omitempty"`
	SagaID        *uuid.UUID         `json:"saga_id,omitempty"`
	Commission    *CommissionView    `json:"commission,omitempty"`
	LedgerEntries []*LedgerEntryView `json:"ledger_entries"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type BalanceView struct {
	UserID  uuid.UUID       `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

type CheckoutItemView struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
}

type CheckoutView struct {
	ID             uuid.UUID          `json:"id"`
	SellerID       uuid.UUID          `json:"seller_id"`
	BuyerID        *uuid.UUID         `json:"buyer_id,omitempty"`
	Items          []CheckoutItemView `json:"items"`
	Status         string             `json:"status"`
	Outcome        *string            `json:"outcome,omitempty"`
	CompletedSteps []string           `json:"completed_steps"`
	OrderID        *uuid.UUID         `json:"order_id,omitempty"`
	PaymentID      *string            `json:"payment_id,omitempty"`
	PaymentLink    *string            `json:"payment_link,omitempty"`
	Reason         *string            `json:"reason,omitempty"`
	LastError      *string            `json:"last_error,omitempty"`
	NeedsReview    bool               `json:"needs_review"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
