package repository

import (
	"context"

	"puente-core/internal/domain/ledger"
	"puente-core/internal/infra"
	"puente-core/internal/infra/repository/converter"
	sqlc "puente-core/internal/infra/sqlc/generated"
)

type LedgerWriteQueries interface {
	CreateLedgerEntry(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateLedgerEntryParams) error
}

// LedgerRepository is append-only.
type LedgerRepository struct {
	queries LedgerWriteQueries
	db      sqlc.DBTX
}

func NewLedgerRepository(queries LedgerWriteQueries, db sqlc.DBTX) *LedgerRepository {
	return &LedgerRepository{
		queries: queries,
		db:      db,
	}
}

func (r *LedgerRepository) Append(ctx context.Context, tx sqlc.DBTX, entries ...*ledger.Entry) error {
	for _, e := range entries {
		if err := r.queries.CreateLedgerEntry(ctx, tx, converter.LedgerEntryToCreateParams(e)); err != nil {
			return infra.WrapRepoErr("failed to append ledger entry", err)
		}
	}
	return nil
}
