package response

import (
	"puente-core/internal/domain/ledger"
	"puente-core/internal/usecase/commands"
	"puente-core/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	Price     string `json:"price"`
}

type CommissionResponse struct {
	Amount string `json:"amount"`
	Rate   string `json:"rate"`
}

type LedgerEntryResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Amount      string     `json:"amount"`
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	OrderID     *uuid.UUID `json:"order_id,omitempty"`
	ReferenceID *uuid.UUID `json:"reference_id,omitempty"`
	Description string     `json:"description"`
	CreatedAt   int64      `json:"created_at"`
}

type OrderResponse struct {
	ID            string                 `json:"id"`
	SellerID      string                 `json:"seller_id"`
	BuyerID       *uuid.UUID             `json:"buyer_id,omitempty"`
	Items         []OrderItemResponse    `json:"items" copier:"-"`
	TotalAmount   string                 `json:"total_amount"`
	Status        string                 `json:"status"`
	StatusReason  *string                `json:"status_reason,omitempty"`
	SagaID        *uuid.UUID             `json:"saga_id,omitempty"`
	Commission    *CommissionResponse    `json:"commission,omitempty" copier:"-"`
	LedgerEntries []*LedgerEntryResponse `json:"ledger_entries" copier:"-"`
	CreatedAt     int64                  `json:"created_at"`
	UpdatedAt     int64                  `json:"updated_at"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	res := &OrderResponse{}
	copyView(res, v)

	res.Items = make([]OrderItemResponse, len(v.Items))
	for i := range v.Items {
		copyView(&res.Items[i], &v.Items[i])
	}
	if v.Commission != nil {
		res.Commission = &CommissionResponse{
			Amount: v.Commission.Amount.StringFixed(2),
			Rate:   v.Commission.Rate.String(),
		}
	}
	res.LedgerEntries = FromLedgerEntryViews(v.LedgerEntries)
	return res
}

func FromLedgerEntryViews(views []*queries.LedgerEntryView) []*LedgerEntryResponse {
	res := make([]*LedgerEntryResponse, len(views))
	for i, v := range views {
		res[i] = &LedgerEntryResponse{}
		copyView(res[i], v)
	}
	return res
}

// FromLedgerEntry renders an entry that was just written.
func FromLedgerEntry(e *ledger.Entry) *LedgerEntryResponse {
	return &LedgerEntryResponse{
		ID:          e.ID().String(),
		UserID:      e.UserID().String(),
		Amount:      e.Amount().StringFixed(2),
		Type:        string(e.Type()),
		Category:    string(e.Category()),
		OrderID:     e.OrderID(),
		ReferenceID: e.ReferenceID(),
		Description: e.Description(),
		CreatedAt:   e.CreatedAt().Unix(),
	}
}

type LedgerListResponse struct {
	Entries []*LedgerEntryResponse `json:"entries"`
	ListMeta
}

func FromLedgerPage(views []*queries.LedgerEntryView, next *queries.Cursor) *LedgerListResponse {
	res := &LedgerListResponse{Entries: FromLedgerEntryViews(views)}
	res.Count = len(views)
	if next != nil {
		res.NextCursor = next.After
	}
	return res
}

type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance string `json:"balance"`
}

func FromBalanceView(v *queries.BalanceView) *BalanceResponse {
	res := &BalanceResponse{}
	copyView(res, v)
	return res
}

type PaymentLinkResponse struct {
	ID          string `json:"id"`
	PaymentLink string `json:"payment_link"`
}

func FromPaymentLink(l *commands.PaymentLink) *PaymentLinkResponse {
	return &PaymentLinkResponse{ID: l.ID, PaymentLink: l.Link}
}
