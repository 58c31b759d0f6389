package request

import (
	"puente-core/internal/domain/checkout"
	"puente-core/internal/usecase/commands"

	"github.com/google/uuid"
)

type StartCheckoutRequest struct {
	SellerID uuid.UUID          `json:"seller_id" binding:"required"`
	BuyerID  *uuid.UUID         `json:"buyer_id"`
	Items    []StockItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r *StartCheckoutRequest) ToCommand(idempotencyKey string) commands.StartCheckoutInput {
	items := make([]checkout.Item, len(r.Items))
	for i, it := range r.Items {
		items[i] = checkout.Item{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return commands.StartCheckoutInput{
		SellerID:       r.SellerID,
		BuyerID:        r.BuyerID,
		Items:          items,
		IdempotencyKey: idempotencyKey,
	}
}

type PaymentOutcomeRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=APPROVED REJECTED EXPIRED CANCELLED"`
	Reason  string `json:"reason" binding:"max=500"`
}
