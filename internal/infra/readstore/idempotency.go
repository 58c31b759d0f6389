package readstore

import (
	"context"

	"puente-core/internal/infra"
	sqlc "puente-core/internal/infra/sqlc/generated"
	"puente-core/internal/pkg/pgconv"
	"puente-core/internal/usecase/shared"
)

type IdempotencyReadQueries interface {
	GetIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.GetIdempotencyKeyParams) (sqlc.IdempotencyKeys, error)
}

type IdempotencyReadStore struct {
	queries IdempotencyReadQueries
}

func NewIdempotencyReadStore(queries IdempotencyReadQueries) *IdempotencyReadStore {
	return &IdempotencyReadStore{
		queries: queries,
	}
}

// Get returns the record even when expired; expiry is the caller's decision.
func (r *IdempotencyReadStore) Get(ctx context.Context, tx sqlc.DBTX, params sqlc.GetIdempotencyKeyParams) (*shared.IdempotencyRecord, error) {
	row, err := r.queries.GetIdempotencyKey(ctx, tx, params)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	return &shared.IdempotencyRecord{
		Key:         row.Key,
		ScopeID:     row.ScopeID,
		RequestHash: row.RequestHash,
		SagaID:      row.SagaID,
		ExpiresAt:   pgconv.TimeFromPgtype(row.ExpiresAt),
	}, nil
}
