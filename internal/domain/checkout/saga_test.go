//go:build unit

package checkout_test

import (
	"errors"
	"testing"
	"time"

	"puente-core/internal/domain/checkout"
	"puente-core/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("starts with nothing completed", func(t *testing.T) {
		s, err := builder.NewCheckoutBuilder().BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, checkout.StatusStarted, s.Status())
		assert.Empty(t, s.CompletedSteps())
		assert.Nil(t, s.DueSteps())
		assert.False(t, s.IsTerminal())
	})

	t.Run("validation", func(t *testing.T) {
		pid := uuid.New()
		cases := []struct {
			name  string
			b     *builder.CheckoutBuilder
			errIs error
		}{
			{name: "no items", b: builder.NewCheckoutBuilder().WithItems(), errIs: checkout.ErrNoItems},
			{name: "missing seller", b: builder.NewCheckoutBuilder().WithSellerID(uuid.Nil), errIs: checkout.ErrMissingSeller},
			{name: "zero quantity", b: builder.NewCheckoutBuilder().WithItems(checkout.Item{ProductID: pid}), errIs: checkout.ErrInvalidQuantity},
			{
				name:  "duplicate product",
				b:     builder.NewCheckoutBuilder().WithItems(checkout.Item{ProductID: pid, Quantity: 1}, checkout.Item{ProductID: pid, Quantity: 2}),
				errIs: checkout.ErrDuplicateItem,
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := tc.b.BuildDomain()
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})
}

func TestSaga_Resolve(t *testing.T) {
	now := time.Now()

	t.Run("approved runs confirm then mark paid", func(t *testing.T) {
		s := builder.NewCheckoutBuilder().BuildAwaitingPayment(uuid.New())
		require.NoError(t, s.Resolve(checkout.OutcomeApproved, "", now))

		assert.Equal(t, []checkout.Step{checkout.StepConfirmStock, checkout.StepMarkPaid}, s.DueSteps())
		assert.False(t, s.Finish(now))

		s.Complete(checkout.StepConfirmStock, now)
		s.Complete(checkout.StepMarkPaid, now)
		assert.Empty(t, s.DueSteps())
		assert.True(t, s.Finish(now))
		assert.Equal(t, checkout.StatusCompleted, s.Status())
	})

	t.Run("rejected compensates the order then releases stock", func(t *testing.T) {
		s := builder.NewCheckoutBuilder().BuildAwaitingPayment(uuid.New())
		require.NoError(t, s.Resolve(checkout.OutcomeRejected, "card declined", now))

		assert.Equal(t, []checkout.Step{checkout.StepCompensateOrder, checkout.StepReleaseStock}, s.DueSteps())
		assert.Equal(t, "card declined", s.Reason())

		s.Complete(checkout.StepCompensateOrder, now)
		s.Complete(checkout.StepReleaseStock, now)
		assert.True(t, s.Finish(now))
		assert.Equal(t, checkout.StatusCompensated, s.Status())
	})

	t.Run("first outcome wins", func(t *testing.T) {
		s := builder.NewCheckoutBuilder().BuildAwaitingPayment(uuid.New())
		require.NoError(t, s.Resolve(checkout.OutcomeExpired, "payment timeout", now))

		assert.NoError(t, s.Resolve(checkout.OutcomeExpired, "payment timeout", now))
		assert.ErrorIs(t, s.Resolve(checkout.OutcomeApproved, "", now), checkout.ErrAlreadyResolved)
		assert.Equal(t, checkout.OutcomeExpired, *s.Outcome())
	})

	t.Run("payment outcome requires awaiting payment", func(t *testing.T) {
		s, err := builder.NewCheckoutBuilder().BuildDomain()
		require.NoError(t, err)
		assert.ErrorIs(t, s.Resolve(checkout.OutcomeApproved, "", now), checkout.ErrNotAwaiting)
	})

	t.Run("aborted after reservation only releases stock", func(t *testing.T) {
		s, err := builder.NewCheckoutBuilder().BuildDomain()
		require.NoError(t, err)
		s.Complete(checkout.StepReserveStock, now)

		require.NoError(t, s.Resolve(checkout.OutcomeAborted, "order creation failed", now))
		assert.Equal(t, []checkout.Step{checkout.StepReleaseStock}, s.DueSteps())

		s.Complete(checkout.StepReleaseStock, now)
		assert.True(t, s.Finish(now))
		assert.Equal(t, checkout.StatusFailed, s.Status())
	})
}

func TestSaga_FailureTracking(t *testing.T) {
	now := time.Now()

	t.Run("inconsistent saga keeps completed steps and the error", func(t *testing.T) {
		s := builder.NewCheckoutBuilder().BuildAwaitingPayment(uuid.New())
		require.NoError(t, s.Resolve(checkout.OutcomeRejected, "", now))
		s.Complete(checkout.StepCompensateOrder, now)
		s.MarkInconsistent(errors.New("release failed"), now)

		assert.Equal(t, checkout.StatusInconsistent, s.Status())
		assert.Equal(t, "release failed", s.LastError())
		assert.False(t, s.IsTerminal())
		assert.Equal(t, []checkout.Step{checkout.StepReleaseStock}, s.DueSteps())

		s.Complete(checkout.StepReleaseStock, now)
		assert.True(t, s.Finish(now))
		assert.Empty(t, s.LastError())
	})

	t.Run("fail before any step is terminal", func(t *testing.T) {
		s, err := builder.NewCheckoutBuilder().BuildDomain()
		require.NoError(t, err)
		s.Fail(errors.New("product not found"), now)

		assert.Equal(t, checkout.StatusFailed, s.Status())
		assert.True(t, s.IsTerminal())
		assert.Empty(t, s.DueSteps())
	})

	t.Run("per item steps are tracked separately", func(t *testing.T) {
		s := builder.NewCheckoutBuilder().BuildAwaitingPayment(uuid.New())
		pid := s.Items()[0].ProductID

		s.Complete(checkout.StepReleaseStock.ForItem(pid), now)
		assert.True(t, s.Done(checkout.StepReleaseStock.ForItem(pid)))
		assert.False(t, s.Done(checkout.StepReleaseStock))
		assert.Equal(t, checkout.Step("RELEASE_STOCK:"+pid.String()), checkout.StepReleaseStock.ForItem(pid))
	})

	t.Run("needs review only when nothing is left to retry", func(t *testing.T) {
		stuck, err := builder.NewCheckoutBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, stuck.Resolve(checkout.OutcomeAborted, "rollback failed", now))
		stuck.MarkInconsistent(errors.New("rollback failed"), now)
		assert.True(t, stuck.NeedsReview())

		retryable := builder.NewCheckoutBuilder().BuildAwaitingPayment(uuid.New())
		require.NoError(t, retryable.Resolve(checkout.OutcomeRejected, "", now))
		retryable.MarkInconsistent(errors.New("release failed"), now)
		assert.False(t, retryable.NeedsReview())

		assert.False(t, builder.NewCheckoutBuilder().BuildAwaitingPayment(uuid.New()).NeedsReview())
	})
}

func TestSaga_Absorb(t *testing.T) {
	now := time.Now()

	t.Run("adopts steps and order committed by an unsaved copy", func(t *testing.T) {
		stored, err := builder.NewCheckoutBuilder().BuildDomain()
		require.NoError(t, err)
		stored.Fail(errors.New("checkout start timed out"), now)

		unsaved := checkout.Reconstruct(checkout.Snapshot{
			ID: stored.ID(), SellerID: stored.SellerID(), Items: stored.Items(), Status: checkout.StatusStarted,
		})
		orderID := uuid.New()
		unsaved.Complete(checkout.StepReserveStock, now)
		unsaved.AttachOrder(orderID, now)

		require.True(t, stored.Absorb(unsaved, now))
		assert.Equal(t, orderID, *stored.OrderID())
		assert.Equal(t, []checkout.Step{checkout.StepCompensateOrder, checkout.StepReleaseStock}, stored.DueSteps())
		assert.False(t, stored.Absorb(unsaved, now))
	})
}

func TestSaga_SameRequest(t *testing.T) {
	b := builder.NewCheckoutBuilder()
	s, err := b.BuildDomain()
	require.NoError(t, err)

	assert.True(t, s.SameRequest(b.SellerID, b.BuyerID, b.Items))
	assert.False(t, s.SameRequest(uuid.New(), b.BuyerID, b.Items))
	assert.False(t, s.SameRequest(b.SellerID, nil, b.Items))
	assert.False(t, s.SameRequest(b.SellerID, b.BuyerID, []checkout.Item{{ProductID: uuid.New(), Quantity: 1}}))
}

func TestParseOutcome(t *testing.T) {
	o, err := checkout.ParseOutcome("REJECTED")
	require.NoError(t, err)
	assert.Equal(t, checkout.OutcomeRejected, o)

	_, err = checkout.ParseOutcome("ABORTED")
	assert.ErrorIs(t, err, checkout.ErrUnknownOutcome)
}
