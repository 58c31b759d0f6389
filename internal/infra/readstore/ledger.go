package readstore

import (
	"context"
	"time"

	"puente-core/internal/infra"
	sqlc "puente-core/internal/infra/sqlc/generated"
	"puente-core/internal/pkg/pgconv"
	"puente-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type LedgerReadQueries interface {
	ListLedgerEntriesByUserFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListLedgerEntriesByUserFirstPageParams) ([]sqlc.LedgerEntries, error)
	ListLedgerEntriesByUserKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListLedgerEntriesByUserKeysetParams) ([]sqlc.LedgerEntries, error)
	GetUserBalance(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) (pgtype.Numeric, error)
}

type LedgerReadStore struct {
	queries LedgerReadQueries
	db      sqlc.DBTX
}

func NewLedgerReadStore(queries LedgerReadQueries, db sqlc.DBTX) *LedgerReadStore {
	return &LedgerReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *LedgerReadStore) ListByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.LedgerEntryView, error) {
	rows, err := r.queries.ListLedgerEntriesByUserFirstPage(ctx, r.db, sqlc.ListLedgerEntriesByUserFirstPageParams{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ledger entries", err)
	}
	return toLedgerEntryViews(rows), nil
}

func (r *LedgerReadStore) ListByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.LedgerEntryView, error) {
	rows, err := r.queries.ListLedgerEntriesByUserKeyset(ctx, r.db, sqlc.ListLedgerEntriesByUserKeysetParams{
		UserID:    userID,
		CreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		ID:        lastID,
		PageLimit: limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ledger entries by keyset", err)
	}
	return toLedgerEntryViews(rows), nil
}

func (r *LedgerReadStore) Balance(ctx context.Context, userID uuid.UUID) (*queries.BalanceView, error) {
	n, err := r.queries.GetUserBalance(ctx, r.db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to compute balance", err)
	}
	return &queries.BalanceView{UserID: userID, Balance: pgconv.NumericToDecimal(n)}, nil
}

func toLedgerEntryViews(rows []sqlc.LedgerEntries) []*queries.LedgerEntryView {
	views := make([]*queries.LedgerEntryView, len(rows))
	for i, row := range rows {
		views[i] = &queries.LedgerEntryView{
			ID:          row.ID,
			UserID:      row.UserID,
			Amount:      pgconv.NumericToDecimal(row.Amount),
			Type:        row.Type,
			Category:    row.Category,
			OrderID:     pgconv.UUIDPtrFromPgtype(row.OrderID),
			ReferenceID: pgconv.UUIDPtrFromPgtype(row.ReferenceID),
			Description: row.Description,
			CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		}
	}
	return views
}
