package converter

import (
	"puente-core/internal/domain/product"
	sqlc "puente-core/internal/infra/sqlc/generated"
	"puente-core/internal/pkg/errs"
	"puente-core/internal/pkg/pgconv"
)

func ProductToCreateParams(p *product.Product) (sqlc.CreateProductParams, error) {
	attrs, err := p.Attributes().MarshalJSON()
	if err != nil {
		return sqlc.CreateProductParams{}, errs.Wrap(err, "encode product attributes")
	}
	return sqlc.CreateProductParams{
		ID:          p.ID(),
		SellerID:    p.SellerID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       pgconv.DecimalToNumeric(p.Price()),
		Sku:         p.SKU(),
		Vertical:    p.Vertical(),
		Attributes:  attrs,
		IsActive:    p.IsActive(),
		Stock:       p.StockLevel().Stock(),
		CreatedAt:   pgconv.TimeToPgtype(p.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(p.UpdatedAt()),
	}, nil
}

// ProductToUpdateParams applies stock as a delta so concurrent reservations are not overwritten.
func ProductToUpdateParams(p *product.Product, stockDelta int32) (sqlc.UpdateProductParams, error) {
	attrs, err := p.Attributes().MarshalJSON()
	if err != nil {
		return sqlc.UpdateProductParams{}, errs.Wrap(err, "encode product attributes")
	}
	return sqlc.UpdateProductParams{
		Name:        p.Name(),
		Description: p.Description(),
		Price:       pgconv.DecimalToNumeric(p.Price()),
		Sku:         p.SKU(),
		Vertical:    p.Vertical(),
		Attributes:  attrs,
		IsActive:    p.IsActive(),
		StockDelta:  stockDelta,
		UpdatedAt:   pgconv.TimeToPgtype(p.UpdatedAt()),
		ID:          p.ID(),
	}, nil
}

func ProductFromRow(row sqlc.Products) (*product.Product, error) {
	var attrs product.Attributes
	if len(row.Attributes) > 0 {
		if err := attrs.UnmarshalJSON(row.Attributes); err != nil {
			return nil, errs.Wrap(err, "decode product attributes")
		}
	}
	stock, err := product.NewStockLevel(row.Stock, row.ReservedStock, row.ConsumedStock)
	if err != nil {
		return nil, errs.Wrapf(err, "product %s has invalid stock counters", row.ID)
	}
	return product.Reconstruct(
		row.ID,
		row.SellerID,
		row.Name,
		row.Description,
		row.Sku,
		row.Vertical,
		pgconv.NumericToDecimal(row.Price),
		attrs,
		row.IsActive,
		stock,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
