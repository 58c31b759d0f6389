package repository

import (
	"context"

	"puente-core/internal/domain/order"
	"puente-core/internal/infra"
	"puente-core/internal/infra/repository/converter"
	sqlc "puente-core/internal/infra/sqlc/generated"
	"puente-core/internal/pkg/pgconv"
)

type OrderWriteQueries interface {
	CreateOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderParams) error
	CreateOrderItem(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderItemParams) error
	CreateCommission(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateCommissionParams) error
	TransitionOrderStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.TransitionOrderStatusParams) (int64, error)
}

type OrderRepository struct {
	queries OrderWriteQueries
	db      sqlc.DBTX
}

func NewOrderRepository(queries OrderWriteQueries, db sqlc.DBTX) *OrderRepository {
	return &OrderRepository{
		queries: queries,
		db:      db,
	}
}

// Create writes the order, its item snapshots and the commission. Callers run it
// inside the same transaction as the ledger entries.
func (r *OrderRepository) Create(ctx context.Context, tx sqlc.DBTX, o *order.Order, c order.Commission) error {
	if err := r.queries.CreateOrder(ctx, tx, converter.OrderToCreateParams(o)); err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}
	for _, item := range converter.OrderItemsToCreateParams(o) {
		if err := r.queries.CreateOrderItem(ctx, tx, item); err != nil {
			return infra.WrapRepoErr("failed to create order item", err)
		}
	}
	if err := r.queries.CreateCommission(ctx, tx, converter.CommissionToCreateParams(c)); err != nil {
		return infra.WrapRepoErr("failed to create commission", err)
	}
	return nil
}

// Transition persists o's current status if the stored status is one of from.
func (r *OrderRepository) Transition(ctx context.Context, tx sqlc.DBTX, o *order.Order, from []order.Status) (bool, error) {
	statuses := make([]string, len(from))
	for i, s := range from {
		statuses[i] = s.String()
	}
	n, err := r.queries.TransitionOrderStatus(ctx, tx, sqlc.TransitionOrderStatusParams{
		ToStatus:     o.Status().String(),
		StatusReason: pgconv.OptionalStringToPgtype(o.StatusReason()),
		UpdatedAt:    pgconv.TimeToPgtype(o.UpdatedAt()),
		ID:           o.ID(),
		FromStatuses: statuses,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition order status", err)
	}
	return n > 0, nil
}
