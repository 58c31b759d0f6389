package messaging

import (
	"context"
	"log/slog"

	"puente-core/internal/usecase/shared"
)

// LogPublisher writes events to the process log when no broker is configured.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(ctx context.Context, event shared.OutboxEvent) error {
	slog.InfoContext(ctx, "domain event",
		"event_id", event.ID,
		"type", event.Type,
		"aggregate_id", event.AggregateID,
		"payload", string(event.Payload))
	return nil
}
