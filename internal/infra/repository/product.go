package repository

import (
	"context"

	"puente-core/internal/domain/product"
	"puente-core/internal/infra"
	"puente-core/internal/infra/repository/converter"
	sqlc "puente-core/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type ProductWriteQueries interface {
	CreateProduct(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateProductParams) (sqlc.Products, error)
	UpdateProduct(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateProductParams) (int64, error)
	DeleteProduct(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
	ReserveProductStock(ctx context.Context, db sqlc.DBTX, arg sqlc.ReserveProductStockParams) (int64, error)
	ReleaseProductStock(ctx context.Context, db sqlc.DBTX, arg sqlc.ReleaseProductStockParams) (int64, error)
	ConfirmProductStock(ctx context.Context, db sqlc.DBTX, arg sqlc.ConfirmProductStockParams) (int64, error)
}

type ProductRepository struct {
	queries ProductWriteQueries
	db      sqlc.DBTX
}

func NewProductRepository(queries ProductWriteQueries, db sqlc.DBTX) *ProductRepository {
	return &ProductRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, tx sqlc.DBTX, p *product.Product) error {
	params, err := converter.ProductToCreateParams(p)
	if err != nil {
		return infra.WrapRepoErr("failed to encode product", err, infra.KindDBFailure)
	}
	if _, err := r.queries.CreateProduct(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create product", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, tx sqlc.DBTX, p *product.Product, stockDelta int32) error {
	params, err := converter.ProductToUpdateParams(p, stockDelta)
	if err != nil {
		return infra.WrapRepoErr("failed to encode product", err, infra.KindDBFailure)
	}
	n, err := r.queries.UpdateProduct(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update product", err)
	}
	if n == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "product not found")
	}
	return nil
}

// Delete removes the product only while nothing is reserved against it.
func (r *ProductRepository) Delete(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (bool, error) {
	n, err := r.queries.DeleteProduct(ctx, tx, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete product", err)
	}
	return n > 0, nil
}

// Reserve increments reserved_stock only if the headroom still exists at write time.
func (r *ProductRepository) Reserve(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, quantity int32) (bool, error) {
	n, err := r.queries.ReserveProductStock(ctx, tx, sqlc.ReserveProductStockParams{Quantity: quantity, ID: id})
	if err != nil {
		return false, infra.WrapRepoErr("failed to reserve product stock", err)
	}
	return n > 0, nil
}

func (r *ProductRepository) Release(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, quantity int32) (bool, error) {
	n, err := r.queries.ReleaseProductStock(ctx, tx, sqlc.ReleaseProductStockParams{Quantity: quantity, ID: id})
	if err != nil {
		return false, infra.WrapRepoErr("failed to release product stock", err)
	}
	return n > 0, nil
}

func (r *ProductRepository) Confirm(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, quantity int32) (bool, error) {
	n, err := r.queries.ConfirmProductStock(ctx, tx, sqlc.ConfirmProductStockParams{Quantity: quantity, ID: id})
	if err != nil {
		return false, infra.WrapRepoErr("failed to confirm product stock", err)
	}
	return n > 0, nil
}
