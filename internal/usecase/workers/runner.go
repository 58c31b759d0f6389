package workers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

type Schedule struct {
	RelayInterval time.Duration
	SweepInterval time.Duration
}

// Runner drives the relay and the sweeper on their own tickers until the
// context is cancelled.
type Runner struct {
	relay    *OutboxRelay
	sweeper  *Sweeper
	schedule Schedule
}

func NewRunner(relay *OutboxRelay, sweeper *Sweeper, schedule Schedule) *Runner {
	return &Runner{
		relay:    relay,
		sweeper:  sweeper,
		schedule: schedule,
	}
}

func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return every(ctx, r.schedule.RelayInterval, "outbox relay", func(ctx context.Context) error {
			_, err := r.relay.RelayOnce(ctx)
			return err
		})
	})
	g.Go(func() error {
		return every(ctx, r.schedule.SweepInterval, "checkout sweeper", r.sweeper.SweepOnce)
	})

	return g.Wait()
}

// every logs tick failures and keeps going; only cancellation stops it.
func every(ctx context.Context, interval time.Duration, name string, tick func(context.Context) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := tick(ctx); err != nil && ctx.Err() == nil {
				slog.Error("worker tick failed", "worker", name, "error", err.Error())
			}
		}
	}
}
