package readstore

import (
	"context"
	"encoding/json"
	"time"

	"puente-core/internal/infra"
	sqlc "puente-core/internal/infra/sqlc/generated"
	"puente-core/internal/pkg/pgconv"
	"puente-core/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProductReadQueries interface {
	GetProduct(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Products, error)
	ListProductsFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListProductsFirstPageParams) ([]sqlc.Products, error)
	ListProductsKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListProductsKeysetParams) ([]sqlc.Products, error)
}

type ProductReadStore struct {
	queries ProductReadQueries
	db      sqlc.DBTX
}

func NewProductReadStore(queries ProductReadQueries, db sqlc.DBTX) *ProductReadStore {
	return &ProductReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	row, err := r.queries.GetProduct(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get product", err)
	}
	return toProductView(row)
}

func (r *ProductReadStore) ListFirstPage(ctx context.Context, sellerID *uuid.UUID, limit int32) ([]*queries.ProductView, error) {
	rows, err := r.queries.ListProductsFirstPage(ctx, r.db, sqlc.ListProductsFirstPageParams{
		SellerID:  pgconv.UUIDPtrToPgtype(sellerID),
		PageLimit: limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	return toProductViews(rows)
}

func (r *ProductReadStore) ListKeyset(ctx context.Context, sellerID *uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ProductView, error) {
	rows, err := r.queries.ListProductsKeyset(ctx, r.db, sqlc.ListProductsKeysetParams{
		SellerID:  pgconv.UUIDPtrToPgtype(sellerID),
		CreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		ID:        lastID,
		PageLimit: limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products by keyset", err)
	}
	return toProductViews(rows)
}

func toProductViews(rows []sqlc.Products) ([]*queries.ProductView, error) {
	views := make([]*queries.ProductView, 0, len(rows))
	for _, row := range rows {
		v, err := toProductView(row)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func toProductView(row sqlc.Products) (*queries.ProductView, error) {
	attrs := map[string]any{}
	if len(row.Attributes) > 0 {
		if err := json.Unmarshal(row.Attributes, &attrs); err != nil {
			return nil, infra.WrapRepoErr("failed to decode product attributes", err, infra.KindDBFailure)
		}
	}
	return &queries.ProductView{
		ID:            row.ID,
		SellerID:      row.SellerID,
		Name:          row.Name,
		Description:   row.Description,
		Price:         pgconv.NumericToDecimal(row.Price),
		SKU:           row.Sku,
		Vertical:      row.Vertical,
		Attributes:    attrs,
		IsActive:      row.IsActive,
		Stock:         row.Stock,
		ReservedStock: row.ReservedStock,
		ConsumedStock: row.ConsumedStock,
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}
