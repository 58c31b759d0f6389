package queries

import (
	"context"

	"puente-core/internal/infra"

	"github.com/google/uuid"
)

type CheckoutReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CheckoutView, error)
}

type CheckoutQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*CheckoutView, error)
}

type checkoutQueriesImpl struct {
	store CheckoutReadStore
}

func NewCheckoutQueries(store CheckoutReadStore) CheckoutQueries {
	return &checkoutQueriesImpl{store: store}
}

func (q *checkoutQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*CheckoutView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCheckoutNotFound
		}
		return nil, err
	}
	return v, nil
}
