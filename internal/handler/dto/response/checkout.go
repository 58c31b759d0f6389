package response

import (
	"puente-core/internal/usecase/queries"

	"github.com/google/uuid"
)

type CheckoutItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type CheckoutResponse struct {
	ID             string                 `json:"id"`
	SellerID       string                 `json:"seller_id"`
	BuyerID        *uuid.UUID             `json:"buyer_id,omitempty"`
	Items          []CheckoutItemResponse `json:"items" copier:"-"`
	Status         string                 `json:"status"`
	Outcome        *string                `json:"outcome,omitempty"`
	CompletedSteps []string               `json:"completed_steps"`
	OrderID        *uuid.UUID             `json:"order_id,omitempty"`
	PaymentID      *string                `json:"payment_id,omitempty"`
	PaymentLink    *string                `json:"payment_link,omitempty"`
	Reason         *string                `json:"reason,omitempty"`
	LastError      *string                `json:"last_error,omitempty"`
	NeedsReview    bool                   `json:"needs_review,omitempty"`
	Replayed       bool                   `json:"replayed,omitempty" copier:"-"`
	CreatedAt      int64                  `json:"created_at"`
	UpdatedAt      int64                  `json:"updated_at"`
}

func FromCheckoutView(v *queries.CheckoutView) *CheckoutResponse {
	res := &CheckoutResponse{}
	copyView(res, v)
	res.Items = make([]CheckoutItemResponse, len(v.Items))
	for i, it := range v.Items {
		res.Items[i] = CheckoutItemResponse{ProductID: it.ProductID.String(), Quantity: it.Quantity}
	}
	return res
}
