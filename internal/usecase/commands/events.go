package commands

import (
	"encoding/json"
	"time"

	"puente-core/internal/domain/ledger"
	"puente-core/internal/domain/order"
	"puente-core/internal/pkg/errs"
	"puente-core/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated     = "order.created"
	EventOrderPaid        = "order.paid"
	EventOrderCompensated = "order.compensated"
	EventOrderCancelled   = "order.cancelled"
	EventLedgerFunded     = "ledger.funded"
)

type orderEventPayload struct {
	OrderID     uuid.UUID       `json:"order_id"`
	SellerID    uuid.UUID       `json:"seller_id"`
	BuyerID     *uuid.UUID      `json:"buyer_id,omitempty"`
	SagaID      *uuid.UUID      `json:"saga_id,omitempty"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Reason      string          `json:"reason,omitempty"`
	Reversals   int             `json:"reversals,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

type fundedEventPayload struct {
	EntryID    uuid.UUID       `json:"entry_id"`
	UserID     uuid.UUID       `json:"user_id"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func newOrderEvent(eventType string, o *order.Order, reversals int, now time.Time) (shared.OutboxEvent, error) {
	return newEvent(o.ID(), eventType, orderEventPayload{
		OrderID:     o.ID(),
		SellerID:    o.SellerID(),
		BuyerID:     o.BuyerID(),
		SagaID:      o.SagaID(),
		Status:      o.Status().String(),
		TotalAmount: o.TotalAmount(),
		Reason:      o.StatusReason(),
		Reversals:   reversals,
		OccurredAt:  now,
	}, now)
}

func newFundedEvent(e *ledger.Entry, now time.Time) (shared.OutboxEvent, error) {
	return newEvent(e.UserID(), EventLedgerFunded, fundedEventPayload{
		EntryID:    e.ID(),
		UserID:     e.UserID(),
		Amount:     e.Amount(),
		OccurredAt: now,
	}, now)
}

func newEvent(aggregateID uuid.UUID, eventType string, payload any, now time.Time) (shared.OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return shared.OutboxEvent{}, errs.Wrapf(err, "failed to encode %s event", eventType)
	}
	return shared.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: aggregateID,
		Type:        eventType,
		Payload:     body,
		CreatedAt:   now,
	}, nil
}
