package commands

import (
	"context"
	"fmt"
	"log/slog"

	"puente-core/internal/domain/ledger"
	"puente-core/internal/domain/order"
	"puente-core/internal/infra"
	"puente-core/internal/pkg/clock"
	"puente-core/internal/pkg/errs"
	"puente-core/internal/pkg/metrics"
	"puente-core/internal/pkg/tracing"
	"puente-core/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

type CreateOrderInput struct {
	SellerID uuid.UUID
	BuyerID  *uuid.UUID
	Items    []order.Item
	SagaID   *uuid.UUID
}

type CreateOrderResult struct {
	Order      *order.Order
	Commission order.Commission
	Entries    []*ledger.Entry
}

type FinanceCommands interface {
	// CreateOrder writes the order, its commission and both ledger entries atomically.
	CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error)
	// CompensateOrder fails the order and reverses its ledger entries. Calling it
	// on an order that is already FAILED or CANCELLED returns the order unchanged.
	CompensateOrder(ctx context.Context, orderID uuid.UUID, reason string) (*order.Order, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID, reason string) (*order.Order, error)
	MarkOrderPaid(ctx context.Context, orderID uuid.UUID) (*order.Order, error)
	GeneratePayment(ctx context.Context, orderID uuid.UUID) (*PaymentLink, error)
	AddFunds(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*ledger.Entry, error)
}

type financeUseCaseImpl struct {
	uow        shared.UnitOfWork
	payments   PaymentProvider
	clock      clock.Clock
	production bool
}

func NewFinanceUseCase(uow shared.UnitOfWork, payments PaymentProvider, clock clock.Clock, production bool) FinanceCommands {
	return &financeUseCaseImpl{
		uow:        uow,
		payments:   payments,
		clock:      clock,
		production: production,
	}
}

func (uc *financeUseCaseImpl) CreateOrder(ctx context.Context, in CreateOrderInput) (res *CreateOrderResult, err error) {
	ctx, span := tracing.Start(ctx, "ledger.CreateOrder", attribute.String("seller_id", in.SellerID.String()))
	defer func() {
		metrics.LedgerOperations.WithLabelValues("create_order", metrics.Result(err)).Inc()
		tracing.End(span, err)
	}()

	now := uc.clock.Now()
	o, err := order.NewOrder(in.SellerID, in.BuyerID, in.Items, in.SagaID, now)
	if err != nil {
		return nil, validation(err)
	}
	commission := order.NewCommission(o, order.CommissionRate, now)

	sale, err := ledger.SaleEntry(o.SellerID(), o.ID(), o.TotalAmount(), now)
	if err != nil {
		return nil, validation(err)
	}
	fee, err := ledger.CommissionEntry(o.SellerID(), o.ID(), commission.Amount(), now)
	if err != nil {
		return nil, validation(err)
	}
	event, err := newOrderEvent(EventOrderCreated, o, 0, now)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Orders().Create(ctx, tx.DB(), o, commission); err != nil {
			return err
		}
		if err := tx.Ledger().Append(ctx, tx.DB(), sale, fee); err != nil {
			return err
		}
		return tx.Outbox().Enqueue(ctx, tx.DB(), event)
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to create order")
	}

	slog.InfoContext(ctx, "order created",
		"order_id", o.ID(), "seller_id", o.SellerID(), "total", o.TotalAmount().String(), "commission", commission.Amount().String())
	return &CreateOrderResult{Order: o, Commission: commission, Entries: []*ledger.Entry{sale, fee}}, nil
}

func (uc *financeUseCaseImpl) CompensateOrder(ctx context.Context, orderID uuid.UUID, reason string) (*order.Order, error) {
	return uc.terminate(ctx, orderID, order.StatusFailed, reason, EventOrderCompensated)
}

func (uc *financeUseCaseImpl) CancelOrder(ctx context.Context, orderID uuid.UUID, reason string) (*order.Order, error) {
	return uc.terminate(ctx, orderID, order.StatusCancelled, reason, EventOrderCancelled)
}

func (uc *financeUseCaseImpl) terminate(ctx context.Context, orderID uuid.UUID, status order.Status, reason, eventType string) (o *order.Order, err error) {
	ctx, span := tracing.Start(ctx, "ledger.TerminateOrder",
		attribute.String("order_id", orderID.String()), attribute.String("status", status.String()))
	defer func() {
		metrics.LedgerOperations.WithLabelValues("terminate_order", metrics.Result(err)).Inc()
		tracing.End(span, err)
	}()

	var reversed int
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reversed = 0
		now := uc.clock.Now()

		current, err := loadOrder(ctx, tx.Reads(), orderID)
		if err != nil {
			return err
		}
		o = current

		changed, err := o.Terminate(status, reason, now)
		if err != nil || !changed {
			return err
		}

		moved, err := tx.Orders().Transition(ctx, tx.DB(), o, []order.Status{order.StatusPending, order.StatusPaid})
		if err != nil {
			return err
		}
		if !moved {
			// a concurrent call finished it first; report what it left behind
			o, err = loadOrder(ctx, tx.Reads(), orderID)
			return err
		}

		entries, err := tx.Reads().LedgerEntriesByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		pending := ledger.PendingReversals(entries)
		reversals := make([]*ledger.Entry, 0, len(pending))
		for _, e := range pending {
			r, err := e.Reverse(now)
			if err != nil {
				return validation(err)
			}
			reversals = append(reversals, r)
		}
		if err := tx.Ledger().Append(ctx, tx.DB(), reversals...); err != nil {
			return err
		}
		reversed = len(reversals)

		event, err := newOrderEvent(eventType, o, reversed, now)
		if err != nil {
			return err
		}
		return tx.Outbox().Enqueue(ctx, tx.DB(), event)
	})
	if err != nil {
		return nil, err
	}

	if reversed > 0 {
		slog.InfoContext(ctx, "order compensated", "order_id", orderID, "status", o.Status(), "reversals", reversed, "reason", reason)
	}
	return o, nil
}

func (uc *financeUseCaseImpl) MarkOrderPaid(ctx context.Context, orderID uuid.UUID) (o *order.Order, err error) {
	defer func() { metrics.LedgerOperations.WithLabelValues("mark_paid", metrics.Result(err)).Inc() }()

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		current, err := loadOrder(ctx, tx.Reads(), orderID)
		if err != nil {
			return err
		}
		if err := current.MarkPaid(now); err != nil {
			return errs.Wrapf(ErrOrderNotPending, "order %s is %s", orderID, current.Status())
		}

		moved, err := tx.Orders().Transition(ctx, tx.DB(), current, []order.Status{order.StatusPending})
		if err != nil {
			return err
		}
		if !moved {
			return errs.Wrapf(ErrOrderNotPending, "order %s changed concurrently", orderID)
		}
		o = current

		event, err := newOrderEvent(EventOrderPaid, o, 0, now)
		if err != nil {
			return err
		}
		return tx.Outbox().Enqueue(ctx, tx.DB(), event)
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "order paid", "order_id", orderID)
	return o, nil
}

func (uc *financeUseCaseImpl) GeneratePayment(ctx context.Context, orderID uuid.UUID) (link *PaymentLink, err error) {
	ctx, span := tracing.Start(ctx, "ledger.GeneratePayment", attribute.String("order_id", orderID.String()))
	defer func() { tracing.End(span, err) }()

	snapshot, err := uc.uow.CommandReads().OrderByID(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(ErrOrderNotFound, "order %s", orderID)
		}
		return nil, err
	}
	o := snapshot.Order
	if o.Status() != order.StatusPending {
		return nil, errs.Wrapf(ErrOrderNotPending, "order %s is %s", orderID, o.Status())
	}

	title := fmt.Sprintf("Order #%s - Puente Platform", o.ID())
	link, err = uc.payments.CreatePaymentLink(ctx, o.ID(), title, o.TotalAmount())
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "payment link for order %s", orderID), errs.ErrPaymentProvider)
	}
	return link, nil
}

func (uc *financeUseCaseImpl) AddFunds(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*ledger.Entry, error) {
	if uc.production {
		return nil, ErrFundingDisabled
	}

	now := uc.clock.Now()
	entry, err := ledger.DepositEntry(userID, amount, now)
	if err != nil {
		return nil, validation(err)
	}
	event, err := newFundedEvent(entry, now)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Ledger().Append(ctx, tx.DB(), entry); err != nil {
			return err
		}
		return tx.Outbox().Enqueue(ctx, tx.DB(), event)
	})
	metrics.LedgerOperations.WithLabelValues("add_funds", metrics.Result(err)).Inc()
	if err != nil {
		return nil, errs.Wrap(err, "failed to add funds")
	}

	slog.InfoContext(ctx, "funds added", "user_id", userID, "amount", amount.String())
	return entry, nil
}

func loadOrder(ctx context.Context, reads shared.CommandReads, id uuid.UUID) (*order.Order, error) {
	snapshot, err := reads.OrderByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(ErrOrderNotFound, "order %s", id)
		}
		return nil, err
	}
	return snapshot.Order, nil
}
