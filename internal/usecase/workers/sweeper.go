package workers

import (
	"context"
	"log/slog"

	"puente-core/internal/usecase/commands"
	"puente-core/internal/usecase/shared"
)

// Sweeper expires unpaid checkouts, abandons stalled starts, retries
// inconsistent checkouts and drops expired idempotency keys.
type Sweeper struct {
	checkouts commands.CheckoutCommands
	uow       shared.UnitOfWork
}

func NewSweeper(checkouts commands.CheckoutCommands, uow shared.UnitOfWork) *Sweeper {
	return &Sweeper{
		checkouts: checkouts,
		uow:       uow,
	}
}

func (s *Sweeper) SweepOnce(ctx context.Context) error {
	expired, err := s.checkouts.SweepExpired(ctx)
	if err != nil {
		return err
	}

	abandoned, err := s.checkouts.AbandonStalled(ctx)
	if err != nil {
		return err
	}

	retried, err := s.checkouts.RetryInconsistent(ctx)
	if err != nil {
		return err
	}

	var purged int64
	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Idempotency().DeleteExpired(ctx)
		purged = n
		return err
	})
	if err != nil {
		return err
	}

	if expired > 0 || abandoned > 0 || retried > 0 || purged > 0 {
		slog.InfoContext(ctx, "sweep completed", "expired", expired, "abandoned", abandoned,
			"recovered", retried, "idempotency_keys_purged", purged)
	}
	return nil
}
