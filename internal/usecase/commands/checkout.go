package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"puente-core/internal/domain/checkout"
	"puente-core/internal/domain/order"
	"puente-core/internal/infra"
	"puente-core/internal/pkg/clock"
	"puente-core/internal/pkg/errs"
	"puente-core/internal/pkg/metrics"
	"puente-core/internal/pkg/ptr"
	"puente-core/internal/pkg/tracing"
	"puente-core/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type StartCheckoutInput struct {
	SellerID       uuid.UUID
	BuyerID        *uuid.UUID
	Items          []checkout.Item
	IdempotencyKey string
}

type StartCheckoutResult struct {
	Saga       *checkout.Saga
	IsReplayed bool
}

type SagaSettings struct {
	PaymentTimeout time.Duration
	IdempotencyTTL time.Duration
	BatchSize      int32
}

type CheckoutCommands interface {
	StartCheckout(ctx context.Context, in StartCheckoutInput) (*StartCheckoutResult, error)
	// ResolvePayment records the first payment outcome and drives the saga to a
	// terminal status. Terminal sagas are returned unchanged.
	ResolvePayment(ctx context.Context, sagaID uuid.UUID, outcome checkout.Outcome, reason string) (*checkout.Saga, error)
	RetryInconsistent(ctx context.Context) (int, error)
	SweepExpired(ctx context.Context) (int, error)
	AbandonStalled(ctx context.Context) (int, error)
}

type checkoutUseCaseImpl struct {
	uow       shared.UnitOfWork
	inventory InventoryCommands
	finance   FinanceCommands
	clock     clock.Clock
	settings  SagaSettings
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	inventory InventoryCommands,
	finance FinanceCommands,
	clock clock.Clock,
	settings SagaSettings,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		uow:       uow,
		inventory: inventory,
		finance:   finance,
		clock:     clock,
		settings:  settings,
	}
}

func (uc *checkoutUseCaseImpl) StartCheckout(ctx context.Context, in StartCheckoutInput) (res *StartCheckoutResult, err error) {
	ctx, span := tracing.Start(ctx, "checkout.Start", attribute.String("seller_id", in.SellerID.String()))
	defer func() { tracing.End(span, err) }()

	var key *string
	if in.IdempotencyKey != "" {
		key = &in.IdempotencyKey
	}
	saga, err := checkout.New(in.SellerID, in.BuyerID, in.Items, key, uc.clock.Now())
	if err != nil {
		return nil, validation(err)
	}

	if key != nil {
		existing, err := uc.replay(ctx, in)
		if err != nil || existing != nil {
			return existing, err
		}
	}

	priced, err := uc.snapshotPrices(ctx, in.SellerID, in.Items)
	if err != nil {
		return nil, err
	}

	existing, err := uc.begin(ctx, saga, in)
	if err != nil || existing != nil {
		return existing, err
	}
	span.SetAttributes(attribute.String("saga_id", saga.ID().String()))
	slog.InfoContext(ctx, "checkout started", "saga_id", saga.ID(), "seller_id", in.SellerID, "items", len(in.Items))

	if err := uc.inventory.ReserveStock(ctx, stockItems(saga.Items())); err != nil {
		uc.abort(ctx, saga, err)
		return nil, err
	}
	saga.Complete(checkout.StepReserveStock, uc.clock.Now())
	if err := uc.save(ctx, saga); err != nil {
		uc.recoverUnsaved(ctx, saga, err)
		return nil, err
	}

	created, err := uc.finance.CreateOrder(ctx, CreateOrderInput{
		SellerID: saga.SellerID(),
		BuyerID:  saga.BuyerID(),
		Items:    priced,
		SagaID:   ptr.Of(saga.ID()),
	})
	if err != nil {
		uc.abort(ctx, saga, err)
		return nil, err
	}
	saga.AttachOrder(created.Order.ID(), uc.clock.Now())
	if err := uc.save(ctx, saga); err != nil {
		uc.recoverUnsaved(ctx, saga, err)
		return nil, err
	}

	link, err := uc.finance.GeneratePayment(ctx, created.Order.ID())
	if err != nil {
		uc.abort(ctx, saga, err)
		return nil, err
	}
	saga.AwaitPayment(link.ID, link.Link, uc.clock.Now())
	if err := uc.save(ctx, saga); err != nil {
		uc.recoverUnsaved(ctx, saga, err)
		return nil, err
	}

	slog.InfoContext(ctx, "checkout awaiting payment", "saga_id", saga.ID(), "order_id", created.Order.ID())
	return &StartCheckoutResult{Saga: saga}, nil
}

// replay returns the saga already started under the request's idempotency key.
func (uc *checkoutUseCaseImpl) replay(ctx context.Context, in StartCheckoutInput) (*StartCheckoutResult, error) {
	record, err := uc.uow.CommandReads().IdempotencyByKey(ctx, in.IdempotencyKey, idempotencyScope(in))
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if record.Expired(uc.clock.Now()) {
		return nil, nil
	}
	if record.RequestHash != requestHash(in) {
		return nil, ErrIdempotencyMismatch
	}

	saga, err := uc.load(ctx, record.SagaID)
	if err != nil {
		return nil, err
	}
	return &StartCheckoutResult{Saga: saga, IsReplayed: true}, nil
}

// begin claims the idempotency key and persists the saga in one transaction.
// A concurrent request that claimed the key first is replayed instead.
func (uc *checkoutUseCaseImpl) begin(ctx context.Context, saga *checkout.Saga, in StartCheckoutInput) (*StartCheckoutResult, error) {
	claimed := true
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		claimed = true
		if in.IdempotencyKey != "" {
			scope := idempotencyScope(in)
			now := uc.clock.Now()

			record, err := tx.Reads().IdempotencyByKey(ctx, in.IdempotencyKey, scope)
			switch {
			case err == nil && record.Expired(now):
				if err := tx.Idempotency().Delete(ctx, tx.DB(), in.IdempotencyKey, scope); err != nil {
					return err
				}
			case err != nil && !infra.IsKind(err, infra.KindNotFound):
				return err
			}

			inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), in.IdempotencyKey, scope,
				requestHash(in), saga.ID(), now.Add(uc.settings.IdempotencyTTL))
			if err != nil {
				return err
			}
			if !inserted {
				claimed = false
				return nil
			}
		}
		return tx.Sagas().Create(ctx, tx.DB(), saga)
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to start checkout")
	}
	if !claimed {
		res, err := uc.replay(ctx, in)
		if err == nil && res == nil {
			err = errs.Wrap(ErrCheckoutConflict, "idempotency key claimed concurrently")
		}
		return res, err
	}
	return nil, nil
}

func (uc *checkoutUseCaseImpl) snapshotPrices(ctx context.Context, sellerID uuid.UUID, items []checkout.Item) ([]order.Item, error) {
	priced := make([]order.Item, 0, len(items))
	for _, it := range items {
		p, err := loadProduct(ctx, uc.uow.CommandReads(), it.ProductID)
		if err != nil {
			return nil, err
		}
		if p.SellerID() != sellerID {
			return nil, errs.Wrapf(ErrProductNotOwned, "product %s", it.ProductID)
		}
		if !p.IsActive() {
			return nil, errs.Wrapf(ErrProductInactive, "product %s", it.ProductID)
		}
		priced = append(priced, order.Item{ProductID: it.ProductID, Quantity: it.Quantity, Price: p.Price()})
	}
	return priced, nil
}

// abort unwinds whatever committed before cause and persists the result.
// Errors are logged; the caller reports cause.
func (uc *checkoutUseCaseImpl) abort(ctx context.Context, saga *checkout.Saga, cause error) {
	now := uc.clock.Now()
	var rollbackErr *ReservationRollbackError
	switch {
	case errs.As(cause, &rollbackErr):
		// some items may still be held and nothing records which; left to an operator
		_ = saga.Resolve(checkout.OutcomeAborted, cause.Error(), now)
		saga.MarkInconsistent(cause, now)
	case len(saga.CompletedSteps()) == 0:
		saga.Fail(cause, now)
	default:
		if err := saga.Resolve(checkout.OutcomeAborted, cause.Error(), now); err != nil {
			slog.ErrorContext(ctx, "failed to abort checkout", "saga_id", saga.ID(), "error", err)
			return
		}
		uc.advance(ctx, saga)
		return
	}

	if err := uc.save(ctx, saga); err != nil {
		slog.ErrorContext(ctx, "failed to record checkout failure", "saga_id", saga.ID(), "error", err)
		return
	}
	metrics.CheckoutOutcomes.WithLabelValues(string(saga.Status())).Inc()
	slog.WarnContext(ctx, "checkout aborted", "saga_id", saga.ID(), "status", saga.Status(), "cause", cause.Error())
}

// recoverUnsaved handles a save that failed after a step committed. The
// committed work is unwound here, or handed over to the saga record when
// another writer changed it first.
func (uc *checkoutUseCaseImpl) recoverUnsaved(ctx context.Context, saga *checkout.Saga, cause error) {
	if !errs.Is(cause, ErrCheckoutConflict) {
		uc.abort(ctx, saga, cause)
		return
	}

	current, err := uc.load(ctx, saga.ID())
	if err != nil {
		slog.ErrorContext(ctx, "failed to reload checkout after conflict", "saga_id", saga.ID(), "error", err)
		return
	}
	if !current.Absorb(saga, uc.clock.Now()) {
		return
	}
	if current.Outcome() == nil {
		uc.abort(ctx, current, cause)
		return
	}
	current.MarkInconsistent(cause, uc.clock.Now())
	if err := uc.save(ctx, current); err != nil {
		slog.ErrorContext(ctx, "failed to hand over checkout steps", "saga_id", current.ID(), "error", err)
		return
	}
	uc.advance(ctx, current)
}

func (uc *checkoutUseCaseImpl) ResolvePayment(ctx context.Context, sagaID uuid.UUID, outcome checkout.Outcome, reason string) (saga *checkout.Saga, err error) {
	ctx, span := tracing.Start(ctx, "checkout.ResolvePayment",
		attribute.String("saga_id", sagaID.String()), attribute.String("outcome", string(outcome)))
	defer func() { tracing.End(span, err) }()

	saga, err = uc.load(ctx, sagaID)
	if err != nil {
		return nil, err
	}
	if saga.IsTerminal() {
		return saga, nil
	}

	if err := saga.Resolve(outcome, reason, uc.clock.Now()); err != nil {
		return nil, validation(err)
	}
	// saving first claims the outcome; a racing resolution loses on the version check
	if err := uc.save(ctx, saga); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "payment outcome recorded", "saga_id", saga.ID(), "outcome", outcome)
	uc.advance(ctx, saga)
	return saga, nil
}

func (uc *checkoutUseCaseImpl) RetryInconsistent(ctx context.Context) (int, error) {
	sagas, err := uc.uow.CommandReads().CheckoutsByStatus(ctx, checkout.StatusInconsistent, uc.clock.Now(), uc.settings.BatchSize)
	if err != nil {
		return 0, err
	}

	resolved := 0
	for _, saga := range sagas {
		if len(saga.DueSteps()) == 0 {
			slog.WarnContext(ctx, "inconsistent checkout has no step to retry",
				"saga_id", saga.ID(), "last_error", saga.LastError())
			continue
		}
		uc.advance(ctx, saga)
		if saga.IsTerminal() {
			resolved++
		}
	}
	return resolved, nil
}

func (uc *checkoutUseCaseImpl) SweepExpired(ctx context.Context) (int, error) {
	cutoff := uc.clock.Now().Add(-uc.settings.PaymentTimeout)
	sagas, err := uc.uow.CommandReads().CheckoutsByStatus(ctx, checkout.StatusAwaitingPayment, cutoff, uc.settings.BatchSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, saga := range sagas {
		_, err := uc.ResolvePayment(ctx, saga.ID(), checkout.OutcomeExpired, "payment timeout")
		switch {
		case err == nil:
			expired++
		case errs.Is(err, errs.ErrConflict):
			// a payment outcome arrived first
		default:
			slog.ErrorContext(ctx, "failed to expire checkout", "saga_id", saga.ID(), "error", err)
		}
	}
	return expired, nil
}

// AbandonStalled aborts checkouts left STARTED for longer than the payment
// timeout, unwinding whatever their start committed.
func (uc *checkoutUseCaseImpl) AbandonStalled(ctx context.Context) (int, error) {
	cutoff := uc.clock.Now().Add(-uc.settings.PaymentTimeout)
	sagas, err := uc.uow.CommandReads().CheckoutsByStatus(ctx, checkout.StatusStarted, cutoff, uc.settings.BatchSize)
	if err != nil {
		return 0, err
	}

	abandoned := 0
	for _, saga := range sagas {
		now := uc.clock.Now()
		if len(saga.CompletedSteps()) == 0 {
			saga.Fail(ErrCheckoutStalled, now)
		} else if err := saga.Resolve(checkout.OutcomeAborted, ErrCheckoutStalled.Error(), now); err != nil {
			slog.ErrorContext(ctx, "failed to abandon checkout", "saga_id", saga.ID(), "error", err)
			continue
		}
		// saving first claims the saga; a start still in flight loses the version check
		if err := uc.save(ctx, saga); err != nil {
			if !errs.Is(err, ErrCheckoutConflict) {
				slog.ErrorContext(ctx, "failed to abandon checkout", "saga_id", saga.ID(), "error", err)
			}
			continue
		}
		slog.WarnContext(ctx, "stalled checkout abandoned", "saga_id", saga.ID(), "completed_steps", len(saga.CompletedSteps()))
		if !saga.IsTerminal() {
			uc.advance(ctx, saga)
		} else {
			metrics.CheckoutOutcomes.WithLabelValues(string(saga.Status())).Inc()
		}
		abandoned++
	}
	return abandoned, nil
}

// advance runs the steps due for the recorded outcome, saving after each one.
// A failing step leaves the saga INCONSISTENT with the completed steps kept.
func (uc *checkoutUseCaseImpl) advance(ctx context.Context, saga *checkout.Saga) {
	for _, step := range saga.DueSteps() {
		stepCtx, span := tracing.Start(ctx, "checkout.step",
			attribute.String("saga_id", saga.ID().String()), attribute.String("step", string(step)))
		err := uc.runStep(stepCtx, saga, step)
		tracing.End(span, err)

		if err != nil {
			saga.MarkInconsistent(err, uc.clock.Now())
			if saveErr := uc.save(ctx, saga); saveErr != nil {
				slog.ErrorContext(ctx, "failed to record inconsistent checkout", "saga_id", saga.ID(), "error", saveErr)
			}
			metrics.CheckoutOutcomes.WithLabelValues(string(checkout.StatusInconsistent)).Inc()
			slog.ErrorContext(ctx, "checkout step failed", "saga_id", saga.ID(), "order_id", saga.OrderID(),
				"step", step, "error", err)
			return
		}

		saga.Complete(step, uc.clock.Now())
		if err := uc.save(ctx, saga); err != nil {
			slog.ErrorContext(ctx, "failed to record checkout step", "saga_id", saga.ID(), "step", step, "error", err)
			return
		}
	}

	if !saga.Finish(uc.clock.Now()) {
		return
	}
	if err := uc.save(ctx, saga); err != nil {
		slog.ErrorContext(ctx, "failed to finish checkout", "saga_id", saga.ID(), "error", err)
		return
	}
	metrics.CheckoutOutcomes.WithLabelValues(string(saga.Status())).Inc()
	slog.InfoContext(ctx, "checkout finished", "saga_id", saga.ID(), "order_id", saga.OrderID(), "status", saga.Status())
}

func (uc *checkoutUseCaseImpl) runStep(ctx context.Context, saga *checkout.Saga, step checkout.Step) error {
	switch step {
	case checkout.StepConfirmStock:
		return uc.eachItem(ctx, saga, step, uc.inventory.ConfirmStock)
	case checkout.StepReleaseStock:
		return uc.eachItem(ctx, saga, step, uc.inventory.ReleaseStock)
	case checkout.StepMarkPaid:
		return uc.markPaid(ctx, *saga.OrderID())
	case checkout.StepCompensateOrder:
		reason := saga.Reason()
		if reason == "" {
			reason = "checkout " + string(*saga.Outcome())
		}
		if *saga.Outcome() == checkout.OutcomeCancelled {
			_, err := uc.finance.CancelOrder(ctx, *saga.OrderID(), reason)
			return err
		}
		_, err := uc.finance.CompensateOrder(ctx, *saga.OrderID(), reason)
		return err
	}
	return errs.Newf("unexpected checkout step %s", step)
}

// eachItem applies a stock step one product at a time so a retry skips the
// products already handled.
func (uc *checkoutUseCaseImpl) eachItem(ctx context.Context, saga *checkout.Saga, step checkout.Step, apply func(context.Context, []StockItem) error) error {
	for _, it := range saga.Items() {
		itemStep := step.ForItem(it.ProductID)
		if saga.Done(itemStep) {
			continue
		}
		if err := apply(ctx, []StockItem{{ProductID: it.ProductID, Quantity: it.Quantity}}); err != nil {
			return err
		}
		saga.Complete(itemStep, uc.clock.Now())
		if err := uc.save(ctx, saga); err != nil {
			return err
		}
	}
	return nil
}

// markPaid treats an order that is already PAID as done so a retried step converges.
func (uc *checkoutUseCaseImpl) markPaid(ctx context.Context, orderID uuid.UUID) error {
	_, err := uc.finance.MarkOrderPaid(ctx, orderID)
	if err == nil || !errs.Is(err, ErrOrderNotPending) {
		return err
	}
	o, loadErr := loadOrder(ctx, uc.uow.CommandReads(), orderID)
	if loadErr == nil && o.Status() == order.StatusPaid {
		return nil
	}
	return err
}

func (uc *checkoutUseCaseImpl) load(ctx context.Context, id uuid.UUID) (*checkout.Saga, error) {
	saga, err := uc.uow.CommandReads().CheckoutByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(ErrCheckoutNotFound, "checkout %s", id)
		}
		return nil, err
	}
	return saga, nil
}

func (uc *checkoutUseCaseImpl) save(ctx context.Context, saga *checkout.Saga) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Sagas().Save(ctx, tx.DB(), saga)
	})
	if infra.IsKind(err, infra.KindConflict) {
		return errs.Wrapf(ErrCheckoutConflict, "checkout %s", saga.ID())
	}
	return err
}

func idempotencyScope(in StartCheckoutInput) uuid.UUID {
	if in.BuyerID != nil {
		return *in.BuyerID
	}
	return in.SellerID
}

func requestHash(in StartCheckoutInput) string {
	body, _ := json.Marshal(struct {
		SellerID uuid.UUID       `json:"seller_id"`
		BuyerID  *uuid.UUID      `json:"buyer_id"`
		Items    []checkout.Item `json:"items"`
	}{in.SellerID, in.BuyerID, in.Items})
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func stockItems(items []checkout.Item) []StockItem {
	out := make([]StockItem, len(items))
	for i, it := range items {
		out[i] = StockItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return out
}
