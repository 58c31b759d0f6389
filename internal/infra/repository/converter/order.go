package converter

import (
	"puente-core/internal/domain/order"
	sqlc "puente-core/internal/infra/sqlc/generated"
	"puente-core/internal/pkg/pgconv"
)

func OrderToCreateParams(o *order.Order) sqlc.CreateOrderParams {
	return sqlc.CreateOrderParams{
		ID:          o.ID(),
		SellerID:    o.SellerID(),
		BuyerID:     pgconv.UUIDPtrToPgtype(o.BuyerID()),
		TotalAmount: pgconv.DecimalToNumeric(o.TotalAmount()),
		Status:      o.Status().String(),
		SagaID:      pgconv.UUIDPtrToPgtype(o.SagaID()),
		CreatedAt:   pgconv.TimeToPgtype(o.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(o.UpdatedAt()),
	}
}

func OrderItemsToCreateParams(o *order.Order) []sqlc.CreateOrderItemParams {
	items := o.Items()
	params := make([]sqlc.CreateOrderItemParams, len(items))
	for i, it := range items {
		params[i] = sqlc.CreateOrderItemParams{
			OrderID:   o.ID(),
			Position:  int32(i), // #nosec G115 -- item count is bounded by request validation
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     pgconv.DecimalToNumeric(it.Price),
		}
	}
	return params
}

func CommissionToCreateParams(c order.Commission) sqlc.CreateCommissionParams {
	return sqlc.CreateCommissionParams{
		OrderID:   c.OrderID(),
		Amount:    pgconv.DecimalToNumeric(c.Amount()),
		Rate:      pgconv.DecimalToNumeric(c.Rate()),
		CreatedAt: pgconv.TimeToPgtype(c.CreatedAt()),
	}
}

func OrderFromRows(row sqlc.Orders, itemRows []sqlc.OrderItems) (*order.Order, error) {
	status, err := order.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	items := make([]order.Item, len(itemRows))
	for i, it := range itemRows {
		items[i] = order.Item{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     pgconv.NumericToDecimal(it.Price),
		}
	}
	return order.Reconstruct(
		row.ID,
		row.SellerID,
		pgconv.UUIDPtrFromPgtype(row.BuyerID),
		items,
		pgconv.NumericToDecimal(row.TotalAmount),
		status,
		pgconv.UUIDPtrFromPgtype(row.SagaID),
		pgconv.StringFromPgtype(row.StatusReason),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func CommissionFromRow(row sqlc.Commissions) order.Commission {
	return order.ReconstructCommission(
		row.OrderID,
		pgconv.NumericToDecimal(row.Amount),
		pgconv.NumericToDecimal(row.Rate),
		pgconv.TimeFromPgtype(row.CreatedAt),
	)
}
