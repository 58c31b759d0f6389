package readstore

import (
	"context"
	"encoding/json"

	"puente-core/internal/infra"
	sqlc "puente-core/internal/infra/sqlc/generated"
	"puente-core/internal/pkg/pgconv"
	"puente-core/internal/usecase/queries"

	"github.com/google/uuid"
)

type CheckoutReadQueries interface {
	GetCheckoutSaga(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.CheckoutSagas, error)
}

type CheckoutReadStore struct {
	queries CheckoutReadQueries
	db      sqlc.DBTX
}

func NewCheckoutReadStore(queries CheckoutReadQueries, db sqlc.DBTX) *CheckoutReadStore {
	return &CheckoutReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CheckoutReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CheckoutView, error) {
	row, err := r.queries.GetCheckoutSaga(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("checkout not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get checkout", err)
	}
	return ToCheckoutView(row)
}

func ToCheckoutView(row sqlc.CheckoutSagas) (*queries.CheckoutView, error) {
	var items []queries.CheckoutItemView
	if err := json.Unmarshal(row.Items, &items); err != nil {
		return nil, infra.WrapRepoErr("failed to decode checkout items", err, infra.KindDBFailure)
	}
	steps := row.CompletedSteps
	if steps == nil {
		steps = []string{}
	}
	return &queries.CheckoutView{
		ID:             row.ID,
		SellerID:       row.SellerID,
		BuyerID:        pgconv.UUIDPtrFromPgtype(row.BuyerID),
		Items:          items,
		Status:         row.Status,
		Outcome:        pgconv.StringPtrFromPgtype(row.Outcome),
		CompletedSteps: steps,
		OrderID:        pgconv.UUIDPtrFromPgtype(row.OrderID),
		PaymentID:      pgconv.StringPtrFromPgtype(row.PaymentID),
		PaymentLink:    pgconv.StringPtrFromPgtype(row.PaymentLink),
		Reason:         pgconv.StringPtrFromPgtype(row.Reason),
		LastError:      pgconv.StringPtrFromPgtype(row.LastError),
		NeedsReview:    row.NeedsReview,
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:      pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}
