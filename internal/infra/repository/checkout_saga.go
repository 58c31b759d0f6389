package repository

import (
	"context"

	"puente-core/internal/domain/checkout"
	"puente-core/internal/infra"
	"puente-core/internal/infra/repository/converter"
	sqlc "puente-core/internal/infra/sqlc/generated"
)

type CheckoutSagaWriteQueries interface {
	CreateCheckoutSaga(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateCheckoutSagaParams) error
	UpdateCheckoutSaga(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateCheckoutSagaParams) (int64, error)
}

type CheckoutSagaRepository struct {
	queries CheckoutSagaWriteQueries
	db      sqlc.DBTX
}

func NewCheckoutSagaRepository(queries CheckoutSagaWriteQueries, db sqlc.DBTX) *CheckoutSagaRepository {
	return &CheckoutSagaRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CheckoutSagaRepository) Create(ctx context.Context, tx sqlc.DBTX, s *checkout.Saga) error {
	params, err := converter.SagaToCreateParams(s)
	if err != nil {
		return infra.WrapRepoErr("failed to encode checkout saga", err, infra.KindDBFailure)
	}
	if err := r.queries.CreateCheckoutSaga(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create checkout saga", err)
	}
	return nil
}

func (r *CheckoutSagaRepository) Save(ctx context.Context, tx sqlc.DBTX, s *checkout.Saga) error {
	n, err := r.queries.UpdateCheckoutSaga(ctx, tx, converter.SagaToUpdateParams(s))
	if err != nil {
		return infra.WrapRepoErr("failed to update checkout saga", err)
	}
	if n == 0 {
		return infra.NewRepoErr(infra.KindConflict, "checkout saga was modified concurrently")
	}
	s.Committed()
	return nil
}
