//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"puente-core/internal/domain/ledger"
	"puente-core/internal/domain/order"
	"puente-core/internal/pkg/errs"
	"puente-core/internal/usecase/commands"
	"puente-core/internal/usecase/shared"
	"puente-core/tests/common/builder"
	commandsmock "puente-core/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type financeFixture struct {
	*uowFixture
	payments *commandsmock.MockPaymentProvider
	uc       commands.FinanceCommands
}

func newFinance(t *testing.T, production bool) *financeFixture {
	ctrl := gomock.NewController(t)
	f := newUoWFixture(ctrl)
	payments := commandsmock.NewMockPaymentProvider(ctrl)
	return &financeFixture{
		uowFixture: f,
		payments:   payments,
		uc:         commands.NewFinanceUseCase(f.uow, payments, f.clock, production),
	}
}

func (f *financeFixture) expectAppend(captured *[]*ledger.Entry) *gomock.Call {
	return f.ledger.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, entries ...*ledger.Entry) error {
			*captured = append(*captured, entries...)
			return nil
		})
}

func TestFinanceCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("success: two units at 100 yield total 200 and commission 10", func(t *testing.T) {
		f := newFinance(t, false)
		b := builder.NewOrderBuilder()

		f.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, o *order.Order, c order.Commission) error {
				assert.Equal(t, "200", o.TotalAmount().String())
				assert.Equal(t, "10", c.Amount().String())
				assert.Equal(t, order.StatusPending, o.Status())
				return nil
			})
		var entries []*ledger.Entry
		f.expectAppend(&entries)
		f.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, event shared.OutboxEvent) error {
				assert.Equal(t, commands.EventOrderCreated, event.Type)
				return nil
			})

		res, err := f.uc.CreateOrder(ctx, commands.CreateOrderInput{
			SellerID: b.SellerID, BuyerID: b.BuyerID, Items: b.Items,
		})
		require.NoError(t, err)
		assert.Equal(t, "10", res.Commission.Amount().String())

		require.Len(t, entries, 2)
		assert.Equal(t, ledger.Credit, entries[0].Type())
		assert.Equal(t, ledger.CategorySale, entries[0].Category())
		assert.Equal(t, "200", entries[0].Amount().String())
		assert.Equal(t, ledger.Debit, entries[1].Type())
		assert.Equal(t, ledger.CategoryCommission, entries[1].Category())
		assert.Equal(t, "10", entries[1].Amount().String())
		assert.Equal(t, "190", ledger.Net(entries).String())
	})

	t.Run("error: order without items is rejected before storage", func(t *testing.T) {
		f := newFinance(t, false)
		_, err := f.uc.CreateOrder(ctx, commands.CreateOrderInput{SellerID: uuid.New()})
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("error: failed ledger write fails the whole order", func(t *testing.T) {
		f := newFinance(t, false)
		b := builder.NewOrderBuilder()
		dbErr := errors.New("deadlock")

		f.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.ledger.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).Return(dbErr)

		_, err := f.uc.CreateOrder(ctx, commands.CreateOrderInput{SellerID: b.SellerID, Items: b.Items})
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestFinanceCompensateOrder(t *testing.T) {
	ctx := context.Background()

	saleEntries := func(t *testing.T, o *order.Order) []*ledger.Entry {
		sale, err := ledger.SaleEntry(o.SellerID(), o.ID(), o.TotalAmount(), fixedNow)
		require.NoError(t, err)
		fee, err := ledger.CommissionEntry(o.SellerID(), o.ID(), decimal.RequireFromString("10"), fixedNow)
		require.NoError(t, err)
		return []*ledger.Entry{sale, fee}
	}

	t.Run("success: fails the order and reverses every entry", func(t *testing.T) {
		f := newFinance(t, false)
		o := builder.NewOrderBuilder().BuildWithStatus(order.StatusPending)
		existing := saleEntries(t, o)

		f.reads.EXPECT().OrderByID(gomock.Any(), o.ID()).Return(&shared.OrderSnapshot{Order: o}, nil)
		f.orders.EXPECT().Transition(gomock.Any(), gomock.Any(), gomock.Any(),
			[]order.Status{order.StatusPending, order.StatusPaid}).Return(true, nil)
		f.reads.EXPECT().LedgerEntriesByOrder(gomock.Any(), o.ID()).Return(existing, nil)
		var reversals []*ledger.Entry
		f.expectAppend(&reversals)
		f.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, event shared.OutboxEvent) error {
				assert.Equal(t, commands.EventOrderCompensated, event.Type)
				return nil
			})

		got, err := f.uc.CompensateOrder(ctx, o.ID(), "payment rejected")
		require.NoError(t, err)
		assert.Equal(t, order.StatusFailed, got.Status())
		assert.Equal(t, "payment rejected", got.StatusReason())

		require.Len(t, reversals, 2)
		for i, r := range reversals {
			assert.Equal(t, ledger.CategoryRefund, r.Category())
			assert.Equal(t, existing[i].Type().Opposite(), r.Type())
			assert.Equal(t, existing[i].ID(), *r.ReferenceID())
		}
		assert.True(t, ledger.Net(append(existing, reversals...)).IsZero())
	})

	t.Run("idempotent: an already failed order is returned unchanged", func(t *testing.T) {
		f := newFinance(t, false)
		o := builder.NewOrderBuilder().BuildWithStatus(order.StatusFailed)
		f.reads.EXPECT().OrderByID(gomock.Any(), o.ID()).Return(&shared.OrderSnapshot{Order: o}, nil)

		got, err := f.uc.CompensateOrder(ctx, o.ID(), "again")
		require.NoError(t, err)
		assert.Equal(t, order.StatusFailed, got.Status())
	})

	t.Run("idempotent: losing the transition to a concurrent call appends nothing", func(t *testing.T) {
		f := newFinance(t, false)
		b := builder.NewOrderBuilder()
		pending := b.BuildWithStatus(order.StatusPending)
		failed := order.Reconstruct(pending.ID(), pending.SellerID(), pending.BuyerID(), pending.Items(),
			pending.TotalAmount(), order.StatusFailed, nil, "first caller", pending.CreatedAt(), fixedNow)

		gomock.InOrder(
			f.reads.EXPECT().OrderByID(gomock.Any(), pending.ID()).Return(&shared.OrderSnapshot{Order: pending}, nil),
			f.orders.EXPECT().Transition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil),
			f.reads.EXPECT().OrderByID(gomock.Any(), pending.ID()).Return(&shared.OrderSnapshot{Order: failed}, nil),
		)

		got, err := f.uc.CompensateOrder(ctx, pending.ID(), "second caller")
		require.NoError(t, err)
		assert.Equal(t, "first caller", got.StatusReason())
	})

	t.Run("success: only unreversed entries get a refund", func(t *testing.T) {
		f := newFinance(t, false)
		o := builder.NewOrderBuilder().BuildWithStatus(order.StatusPaid)
		existing := saleEntries(t, o)
		refund, err := existing[0].Reverse(fixedNow)
		require.NoError(t, err)

		f.reads.EXPECT().OrderByID(gomock.Any(), o.ID()).Return(&shared.OrderSnapshot{Order: o}, nil)
		f.orders.EXPECT().Transition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.reads.EXPECT().LedgerEntriesByOrder(gomock.Any(), o.ID()).Return(append(existing, refund), nil)
		var reversals []*ledger.Entry
		f.expectAppend(&reversals)
		f.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err = f.uc.CompensateOrder(ctx, o.ID(), "manual")
		require.NoError(t, err)
		require.Len(t, reversals, 1)
		assert.Equal(t, existing[1].ID(), *reversals[0].ReferenceID())
	})

	t.Run("error: unknown order", func(t *testing.T) {
		f := newFinance(t, false)
		id := uuid.New()
		f.reads.EXPECT().OrderByID(gomock.Any(), id).Return(nil, notFound("order"))

		_, err := f.uc.CompensateOrder(ctx, id, "x")
		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})
}

func TestFinanceCancelOrder(t *testing.T) {
	f := newFinance(t, false)
	o := builder.NewOrderBuilder().BuildWithStatus(order.StatusPending)

	f.reads.EXPECT().OrderByID(gomock.Any(), o.ID()).Return(&shared.OrderSnapshot{Order: o}, nil)
	f.orders.EXPECT().Transition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.reads.EXPECT().LedgerEntriesByOrder(gomock.Any(), o.ID()).Return(nil, nil)
	f.ledger.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	f.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, event shared.OutboxEvent) error {
			assert.Equal(t, commands.EventOrderCancelled, event.Type)
			return nil
		})

	got, err := f.uc.CancelOrder(context.Background(), o.ID(), "buyer cancelled")
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, got.Status())
}

func TestFinanceMarkOrderPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("success: pending order becomes paid", func(t *testing.T) {
		f := newFinance(t, false)
		o := builder.NewOrderBuilder().BuildWithStatus(order.StatusPending)
		f.reads.EXPECT().OrderByID(gomock.Any(), o.ID()).Return(&shared.OrderSnapshot{Order: o}, nil)
		f.orders.EXPECT().Transition(gomock.Any(), gomock.Any(), gomock.Any(), []order.Status{order.StatusPending}).Return(true, nil)
		f.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		got, err := f.uc.MarkOrderPaid(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StatusPaid, got.Status())
	})

	for _, status := range []order.Status{order.StatusPaid, order.StatusFailed, order.StatusCancelled} {
		t.Run("error: "+status.String()+" order cannot be paid", func(t *testing.T) {
			f := newFinance(t, false)
			o := builder.NewOrderBuilder().BuildWithStatus(status)
			f.reads.EXPECT().OrderByID(gomock.Any(), o.ID()).Return(&shared.OrderSnapshot{Order: o}, nil)

			_, err := f.uc.MarkOrderPaid(ctx, o.ID())
			assert.ErrorIs(t, err, commands.ErrOrderNotPending)
			assert.True(t, errs.Is(err, errs.ErrInvalidOrderState))
		})
	}

	t.Run("error: concurrent transition", func(t *testing.T) {
		f := newFinance(t, false)
		o := builder.NewOrderBuilder().BuildWithStatus(order.StatusPending)
		f.reads.EXPECT().OrderByID(gomock.Any(), o.ID()).Return(&shared.OrderSnapshot{Order: o}, nil)
		f.orders.EXPECT().Transition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.uc.MarkOrderPaid(ctx, o.ID())
		assert.ErrorIs(t, err, commands.ErrOrderNotPending)
	})
}

func TestFinanceGeneratePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("success: requests a link for the order total", func(t *testing.T) {
		f := newFinance(t, false)
		o := builder.NewOrderBuilder().BuildWithStatus(order.StatusPending)
		f.reads.EXPECT().OrderByID(gomock.Any(), o.ID()).Return(&shared.OrderSnapshot{Order: o}, nil)
		f.payments.EXPECT().CreatePaymentLink(gomock.Any(), o.ID(), "Order #"+o.ID().String()+" - Puente Platform", o.TotalAmount()).
			Return(&commands.PaymentLink{ID: "pref-1", Link: "https://pay.example/pref-1"}, nil)

		link, err := f.uc.GeneratePayment(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, "pref-1", link.ID)
	})

	t.Run("error: provider failure is marked", func(t *testing.T) {
		f := newFinance(t, false)
		o := builder.NewOrderBuilder().BuildWithStatus(order.StatusPending)
		f.reads.EXPECT().OrderByID(gomock.Any(), o.ID()).Return(&shared.OrderSnapshot{Order: o}, nil)
		f.payments.EXPECT().CreatePaymentLink(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("502 bad gateway"))

		_, err := f.uc.GeneratePayment(ctx, o.ID())
		assert.True(t, errs.Is(err, errs.ErrPaymentProvider))
	})

	t.Run("error: paid order gets no new link", func(t *testing.T) {
		f := newFinance(t, false)
		o := builder.NewOrderBuilder().BuildWithStatus(order.StatusPaid)
		f.reads.EXPECT().OrderByID(gomock.Any(), o.ID()).Return(&shared.OrderSnapshot{Order: o}, nil)

		_, err := f.uc.GeneratePayment(ctx, o.ID())
		assert.ErrorIs(t, err, commands.ErrOrderNotPending)
	})

	t.Run("error: unknown order", func(t *testing.T) {
		f := newFinance(t, false)
		id := uuid.New()
		f.reads.EXPECT().OrderByID(gomock.Any(), id).Return(nil, notFound("order"))

		_, err := f.uc.GeneratePayment(ctx, id)
		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
	})
}

func TestFinanceAddFunds(t *testing.T) {
	ctx := context.Background()

	t.Run("success: appends a deposit credit", func(t *testing.T) {
		f := newFinance(t, false)
		user := uuid.New()
		var entries []*ledger.Entry
		f.expectAppend(&entries)
		f.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, event shared.OutboxEvent) error {
				assert.Equal(t, commands.EventLedgerFunded, event.Type)
				assert.Equal(t, user, event.AggregateID)
				return nil
			})

		entry, err := f.uc.AddFunds(ctx, user, decimal.RequireFromString("50.25"))
		require.NoError(t, err)
		assert.Equal(t, ledger.CategoryDeposit, entry.Category())
		assert.Equal(t, ledger.Credit, entry.Type())
		require.Len(t, entries, 1)
		assert.Equal(t, entry.ID(), entries[0].ID())
	})

	t.Run("error: non-positive amount", func(t *testing.T) {
		f := newFinance(t, false)
		_, err := f.uc.AddFunds(ctx, uuid.New(), decimal.Zero)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("error: disabled in production", func(t *testing.T) {
		f := newFinance(t, true)
		_, err := f.uc.AddFunds(ctx, uuid.New(), decimal.RequireFromString("10"))
		assert.ErrorIs(t, err, commands.ErrFundingDisabled)
		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})
}
