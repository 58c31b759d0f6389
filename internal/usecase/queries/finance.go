package queries

import (
	"context"
	"time"

	"puente-core/internal/infra"

	"github.com/google/uuid"
)

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
}

type LedgerReadStore interface {
	ListByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*LedgerEntryView, error)
	ListByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*LedgerEntryView, error)
	Balance(ctx context.Context, userID uuid.UUID) (*BalanceView, error)
}

type FinanceQueries interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListLedger(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*LedgerEntryView, *Cursor, error)
	Balance(ctx context.Context, userID uuid.UUID) (*BalanceView, error)
}

type financeQueriesImpl struct {
	orders OrderReadStore
	ledger LedgerReadStore
}

func NewFinanceQueries(orders OrderReadStore, ledger LedgerReadStore) FinanceQueries {
	return &financeQueriesImpl{orders: orders, ledger: ledger}
}

func (q *financeQueriesImpl) GetOrder(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	v, err := q.orders.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *financeQueriesImpl) ListLedger(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*LedgerEntryView, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*LedgerEntryView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.ledger.ListByUserFirstPage(ctx, userID, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.ledger.ListByUserKeyset(ctx, userID, lastCreatedAt, lastID, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	}
	if err != nil {
		return nil, nil, err
	}
	rows, next := page(rows, limit, func(v *LedgerEntryView) (time.Time, uuid.UUID) { return v.CreatedAt, v.ID })
	return rows, next, nil
}

// Balance is Σ CREDIT − Σ DEBIT over every entry of the user.
func (q *financeQueriesImpl) Balance(ctx context.Context, userID uuid.UUID) (*BalanceView, error) {
	return q.ledger.Balance(ctx, userID)
}
