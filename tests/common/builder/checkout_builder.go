//go:build unit || e2e

package builder

import (
	"time"

	"puente-core/internal/domain/checkout"
	reqdto "puente-core/internal/handler/dto/request"
	"puente-core/internal/usecase/queries"

	"github.com/google/uuid"
)

type CheckoutBuilder struct {
	SellerID       uuid.UUID
	BuyerID        *uuid.UUID
	Items          []checkout.Item
	IdempotencyKey *string
	CreatedAt      time.Time
}

func NewCheckoutBuilder() *CheckoutBuilder {
	buyer := uuid.New()
	return &CheckoutBuilder{
		SellerID:  uuid.New(),
		BuyerID:   &buyer,
		Items:     []checkout.Item{{ProductID: uuid.New(), Quantity: 2}},
		CreatedAt: time.Now(),
	}
}

func (b *CheckoutBuilder) WithSellerID(id uuid.UUID) *CheckoutBuilder {
	b.SellerID = id
	return b
}

func (b *CheckoutBuilder) WithItems(items ...checkout.Item) *CheckoutBuilder {
	b.Items = items
	return b
}

func (b *CheckoutBuilder) WithIdempotencyKey(key string) *CheckoutBuilder {
	b.IdempotencyKey = &key
	return b
}

func (b *CheckoutBuilder) BuildDomain() (*checkout.Saga, error) {
	return checkout.New(b.SellerID, b.BuyerID, b.Items, b.IdempotencyKey, b.CreatedAt)
}

// BuildAwaitingPayment returns a saga that reserved stock, created orderID and requested payment.
func (b *CheckoutBuilder) BuildAwaitingPayment(orderID uuid.UUID) *checkout.Saga {
	s, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	s.Complete(checkout.StepReserveStock, b.CreatedAt)
	s.AttachOrder(orderID, b.CreatedAt)
	s.AwaitPayment("pref-"+orderID.String()[:8], "https://pay.example/"+orderID.String(), b.CreatedAt)
	return s
}

func (b *CheckoutBuilder) BuildStartRequestDTO() reqdto.StartCheckoutRequest {
	items := make([]reqdto.StockItemRequest, len(b.Items))
	for i, it := range b.Items {
		items[i] = reqdto.StockItemRequest{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return reqdto.StartCheckoutRequest{
		SellerID: b.SellerID,
		BuyerID:  b.BuyerID,
		Items:    items,
	}
}

func (b *CheckoutBuilder) BuildView(status checkout.Status) *queries.CheckoutView {
	items := make([]queries.CheckoutItemView, len(b.Items))
	for i, it := range b.Items {
		items[i] = queries.CheckoutItemView{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return &queries.CheckoutView{
		ID:             uuid.New(),
		SellerID:       b.SellerID,
		BuyerID:        b.BuyerID,
		Items:          items,
		Status:         string(status),
		CompletedSteps: []string{},
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.CreatedAt,
	}
}
