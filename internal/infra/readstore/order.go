package readstore

import (
	"context"

	"puente-core/internal/infra"
	sqlc "puente-core/internal/infra/sqlc/generated"
	"puente-core/internal/pkg/pgconv"
	"puente-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderReadQueries interface {
	GetOrder(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Orders, error)
	ListOrderItems(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) ([]sqlc.OrderItems, error)
	GetCommissionByOrder(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) (sqlc.Commissions, error)
	ListLedgerEntriesByOrder(ctx context.Context, db sqlc.DBTX, orderID pgtype.UUID) ([]sqlc.LedgerEntries, error)
}

type OrderReadStore struct {
	queries OrderReadQueries
	db      sqlc.DBTX
}

func NewOrderReadStore(queries OrderReadQueries, db sqlc.DBTX) *OrderReadStore {
	return &OrderReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	row, err := r.queries.GetOrder(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get order", err)
	}

	items, err := r.queries.ListOrderItems(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order items", err)
	}

	view := &queries.OrderView{
		ID:           row.ID,
		SellerID:     row.SellerID,
		BuyerID:      pgconv.UUIDPtrFromPgtype(row.BuyerID),
		Items:        make([]queries.OrderItemView, len(items)),
		TotalAmount:  pgconv.NumericToDecimal(row.TotalAmount),
		Status:       row.Status,
		StatusReason: pgconv.StringPtrFromPgtype(row.StatusReason),
		SagaID:       pgconv.UUIDPtrFromPgtype(row.SagaID),
		CreatedAt:    pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:    pgconv.TimeFromPgtype(row.UpdatedAt),
	}
	for i, it := range items {
		view.Items[i] = queries.OrderItemView{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     pgconv.NumericToDecimal(it.Price),
		}
	}

	commission, err := r.queries.GetCommissionByOrder(ctx, r.db, id)
	switch {
	case err == nil:
		view.Commission = &queries.CommissionView{
			Amount: pgconv.NumericToDecimal(commission.Amount),
			Rate:   pgconv.NumericToDecimal(commission.Rate),
		}
	case !pgconv.IsNoRows(err):
		return nil, infra.WrapRepoErr("failed to get commission", err)
	}

	entries, err := r.queries.ListLedgerEntriesByOrder(ctx, r.db, pgconv.UUIDToPgtype(id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order ledger entries", err)
	}
	view.LedgerEntries = toLedgerEntryViews(entries)

	return view, nil
}
