package repository

import (
	"context"

	"puente-core/internal/infra"
	sqlc "puente-core/internal/infra/sqlc/generated"
	"puente-core/internal/pkg/pgconv"
	"puente-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type OutboxWriteQueries interface {
	CreateOutboxEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOutboxEventParams) error
	ClaimPendingOutboxEvents(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.OutboxEvents, error)
	MarkOutboxEventPublished(ctx context.Context, db sqlc.DBTX, id uuid.UUID) error
	MarkOutboxEventFailed(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxEventFailedParams) error
}

type OutboxRepository struct {
	queries OutboxWriteQueries
	db      sqlc.DBTX
}

func NewOutboxRepository(queries OutboxWriteQueries, db sqlc.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, tx sqlc.DBTX, event shared.OutboxEvent) error {
	params := sqlc.CreateOutboxEventParams{
		ID:          event.ID,
		AggregateID: event.AggregateID,
		EventType:   event.Type,
		Payload:     event.Payload,
		CreatedAt:   pgconv.TimeToPgtype(event.CreatedAt),
	}
	if err := r.queries.CreateOutboxEvent(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox event", err)
	}
	return nil
}

// ClaimPending locks up to limit pending rows for the lifetime of tx.
func (r *OutboxRepository) ClaimPending(ctx context.Context, tx sqlc.DBTX, limit int32) ([]shared.OutboxEvent, error) {
	rows, err := r.queries.ClaimPendingOutboxEvents(ctx, tx, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim outbox events", err)
	}
	events := make([]shared.OutboxEvent, len(rows))
	for i, row := range rows {
		events[i] = shared.OutboxEvent{
			ID:          row.ID,
			AggregateID: row.AggregateID,
			Type:        row.EventType,
			Payload:     row.Payload,
			Attempts:    row.Attempts,
			CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		}
	}
	return events, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) error {
	if err := r.queries.MarkOutboxEventPublished(ctx, tx, id); err != nil {
		return infra.WrapRepoErr("failed to mark outbox event published", err)
	}
	return nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, cause string, maxAttempts int32) error {
	params := sqlc.MarkOutboxEventFailedParams{
		LastError:   pgconv.StringToPgtype(cause),
		MaxAttempts: maxAttempts,
		ID:          id,
	}
	if err := r.queries.MarkOutboxEventFailed(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to mark outbox event failed", err)
	}
	return nil
}
