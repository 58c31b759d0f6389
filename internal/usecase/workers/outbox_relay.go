package workers

import (
	"context"
	"log/slog"

	"puente-core/internal/pkg/metrics"
	"puente-core/internal/usecase/shared"
)

// EventPublisher delivers one outbox event to the outside world.
type EventPublisher interface {
	Publish(ctx context.Context, event shared.OutboxEvent) error
}

type RelaySettings struct {
	BatchSize   int32
	MaxAttempts int32
}

// OutboxRelay publishes pending outbox events. Delivery is at least once:
// an event whose publish succeeded may be sent again if marking it fails.
type OutboxRelay struct {
	uow       shared.UnitOfWork
	publisher EventPublisher
	settings  RelaySettings
}

func NewOutboxRelay(uow shared.UnitOfWork, publisher EventPublisher, settings RelaySettings) *OutboxRelay {
	return &OutboxRelay{
		uow:       uow,
		publisher: publisher,
		settings:  settings,
	}
}

// RelayOnce handles one batch and reports how many events were published.
func (r *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	published := 0
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		published = 0
		events, err := tx.Outbox().ClaimPending(ctx, tx.DB(), r.settings.BatchSize)
		if err != nil {
			return err
		}

		for _, event := range events {
			if err := r.publisher.Publish(ctx, event); err != nil {
				metrics.OutboxPublished.WithLabelValues("error").Inc()
				slog.WarnContext(ctx, "failed to publish outbox event",
					"event_id", event.ID, "type", event.Type, "attempts", event.Attempts+1, "error", err.Error())
				if err := tx.Outbox().MarkFailed(ctx, tx.DB(), event.ID, err.Error(), r.settings.MaxAttempts); err != nil {
					return err
				}
				continue
			}

			if err := tx.Outbox().MarkPublished(ctx, tx.DB(), event.ID); err != nil {
				return err
			}
			metrics.OutboxPublished.WithLabelValues("ok").Inc()
			published++
		}
		return nil
	})
	return published, err
}
