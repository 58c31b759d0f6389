//go:build unit || e2e

package builder

import (
	"time"

	"puente-core/internal/domain/order"
	reqdto "puente-core/internal/handler/dto/request"
	"puente-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderBuilder struct {
	SellerID  uuid.UUID
	BuyerID   *uuid.UUID
	Items     []order.Item
	SagaID    *uuid.UUID
	CreatedAt time.Time
}

// NewOrderBuilder defaults to two units at 100.00, the reference sale: total 200.00, commission 10.00.
func NewOrderBuilder() *OrderBuilder {
	buyer := uuid.New()
	return &OrderBuilder{
		SellerID: uuid.New(),
		BuyerID:  &buyer,
		Items: []order.Item{
			{ProductID: uuid.New(), Quantity: 2, Price: decimal.RequireFromString("100.00")},
		},
		CreatedAt: time.Now(),
	}
}

func (b *OrderBuilder) WithSellerID(id uuid.UUID) *OrderBuilder {
	b.SellerID = id
	return b
}

func (b *OrderBuilder) WithItems(items ...order.Item) *OrderBuilder {
	b.Items = items
	return b
}

func (b *OrderBuilder) WithSagaID(id uuid.UUID) *OrderBuilder {
	b.SagaID = &id
	return b
}

func (b *OrderBuilder) WithoutBuyer() *OrderBuilder {
	b.BuyerID = nil
	return b
}

func (b *OrderBuilder) BuildDomain() (*order.Order, error) {
	return order.NewOrder(b.SellerID, b.BuyerID, b.Items, b.SagaID, b.CreatedAt)
}

// BuildWithStatus reconstructs an order already in the given status.
func (b *OrderBuilder) BuildWithStatus(status order.Status) *order.Order {
	o, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return order.Reconstruct(o.ID(), o.SellerID(), o.BuyerID(), o.Items(), o.TotalAmount(),
		status, o.SagaID(), "", o.CreatedAt(), o.UpdatedAt())
}

func (b *OrderBuilder) BuildCreateRequestDTO() reqdto.CreateOrderRequest {
	items := make([]reqdto.OrderItemRequest, len(b.Items))
	for i, it := range b.Items {
		items[i] = reqdto.OrderItemRequest{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price}
	}
	return reqdto.CreateOrderRequest{
		SellerID: b.SellerID,
		BuyerID:  b.BuyerID,
		Items:    items,
		SagaID:   b.SagaID,
	}
}

func (b *OrderBuilder) BuildView() *queries.OrderView {
	items := make([]queries.OrderItemView, len(b.Items))
	for i, it := range b.Items {
		items[i] = queries.OrderItemView{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price}
	}
	total := order.Total(b.Items)
	return &queries.OrderView{
		ID:          uuid.New(),
		SellerID:    b.SellerID,
		BuyerID:     b.BuyerID,
		Items:       items,
		TotalAmount: total,
		Status:      order.StatusPending.String(),
		SagaID:      b.SagaID,
		Commission: &queries.CommissionView{
			Amount: total.Mul(order.CommissionRate).Round(order.MoneyScale),
			Rate:   order.CommissionRate,
		},
		LedgerEntries: []*queries.LedgerEntryView{},
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.CreatedAt,
	}
}
