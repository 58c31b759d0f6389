package shared

import (
	"context"
	"time"

	"puente-core/internal/domain/checkout"
	"puente-core/internal/domain/ledger"
	"puente-core/internal/domain/order"
	"puente-core/internal/domain/product"
	sqlc "puente-core/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Products() ProductRepository
	Orders() OrderRepository
	Ledger() LedgerRepository
	Sagas() CheckoutSagaRepository
	Idempotency() IdempotencyRepository
	Outbox() OutboxRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

type CommandReads interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error)
	LedgerEntriesByOrder(ctx context.Context, orderID uuid.UUID) ([]*ledger.Entry, error)
	CheckoutByID(ctx context.Context, id uuid.UUID) (*checkout.Saga, error)
	CheckoutsByStatus(ctx context.Context, status checkout.Status, updatedBefore time.Time, limit int32) ([]*checkout.Saga, error)
	IdempotencyByKey(ctx context.Context, key string, scopeID uuid.UUID) (*IdempotencyRecord, error)
}

// ProductRepository conditional methods report false when the guarding predicate matched no row.
type ProductRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, p *product.Product) error
	Update(ctx context.Context, tx sqlc.DBTX, p *product.Product, stockDelta int32) error
	Delete(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (bool, error)
	Reserve(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, quantity int32) (bool, error)
	Release(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, quantity int32) (bool, error)
	Confirm(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, quantity int32) (bool, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, o *order.Order, c order.Commission) error
	Transition(ctx context.Context, tx sqlc.DBTX, o *order.Order, from []order.Status) (bool, error)
}

type LedgerRepository interface {
	Append(ctx context.Context, tx sqlc.DBTX, entries ...*ledger.Entry) error
}

type CheckoutSagaRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, s *checkout.Saga) error
	// Save fails with a CONFLICT repository error when the stored version moved on.
	Save(ctx context.Context, tx sqlc.DBTX, s *checkout.Saga) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, tx sqlc.DBTX, key string, scopeID uuid.UUID, requestHash string, sagaID uuid.UUID, expiresAt time.Time) (bool, error)
	Delete(ctx context.Context, tx sqlc.DBTX, key string, scopeID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, tx sqlc.DBTX, event OutboxEvent) error
	ClaimPending(ctx context.Context, tx sqlc.DBTX, limit int32) ([]OutboxEvent, error)
	MarkPublished(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) error
	MarkFailed(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, cause string, maxAttempts int32) error
}
