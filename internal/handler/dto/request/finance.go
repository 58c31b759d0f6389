package request

import (
	"puente-core/internal/domain/order"
	"puente-core/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int32           `json:"quantity" binding:"required,min=1"`
	Price     decimal.Decimal `json:"price"`
}

type CreateOrderRequest struct {
	SellerID uuid.UUID          `json:"seller_id" binding:"required"`
	BuyerID  *uuid.UUID         `json:"buyer_id"`
	Items    []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	SagaID   *uuid.UUID         `json:"saga_id"`
}

func (r *CreateOrderRequest) ToCommand() commands.CreateOrderInput {
	items := make([]order.Item, len(r.Items))
	for i, it := range r.Items {
		items[i] = order.Item{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price}
	}
	return commands.CreateOrderInput{
		SellerID: r.SellerID,
		BuyerID:  r.BuyerID,
		Items:    items,
		SagaID:   r.SagaID,
	}
}

type ReasonRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type AddFundsRequest struct {
	UserID uuid.UUID       `json:"user_id" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}
