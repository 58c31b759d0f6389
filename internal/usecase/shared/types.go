package shared

import (
	"time"

	"puente-core/internal/domain/order"

	"github.com/google/uuid"
)

type OrderSnapshot struct {
	Order      *order.Order
	Commission order.Commission
}

type IdempotencyRecord struct {
	Key         string
	ScopeID     uuid.UUID
	RequestHash string
	SagaID      uuid.UUID
	ExpiresAt   time.Time
}

func (r *IdempotencyRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

type OutboxEvent struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	Type        string
	Payload     []byte
	Attempts    int32
	CreatedAt   time.Time
}
