package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"puente-core/internal/pkg/config"
	"puente-core/internal/usecase/workers"

	"go.uber.org/fx"
)

var WorkersModule = fx.Module("workers",
	fx.Provide(
		func(cfg config.Config) workers.RelaySettings {
			return workers.RelaySettings{
				BatchSize:   cfg.Kafka.BatchSize,
				MaxAttempts: cfg.Kafka.MaxAttempts,
			}
		},
		func(cfg config.Config) workers.Schedule {
			return workers.Schedule{
				RelayInterval: cfg.Kafka.RelayInterval,
				SweepInterval: cfg.Saga.SweepInterval,
			}
		},
		workers.NewOutboxRelay,
		workers.NewSweeper,
		workers.NewRunner,
	),
	fx.Invoke(StartWorkers),
)

func StartWorkers(lc fx.Lifecycle, runner *workers.Runner, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("background workers stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
			return nil
		},
	})
}
