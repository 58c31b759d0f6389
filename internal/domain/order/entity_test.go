//go:build unit

package order_test

import (
	"testing"
	"time"

	"puente-core/internal/domain/order"
	"puente-core/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewOrder(t *testing.T) {
	t.Run("total and commission for the reference sale", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, order.StatusPending, o.Status())
		assert.True(t, dec("200").Equal(o.TotalAmount()), "total = %s", o.TotalAmount())

		c := order.NewCommission(o, order.CommissionRate, time.Now())
		assert.True(t, dec("10").Equal(c.Amount()), "commission = %s", c.Amount())
		assert.Equal(t, o.ID(), c.OrderID())
	})

	t.Run("total sums every line", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().WithItems(
			order.Item{ProductID: uuid.New(), Quantity: 3, Price: dec("19.99")},
			order.Item{ProductID: uuid.New(), Quantity: 1, Price: dec("0.03")},
		).BuildDomain()
		require.NoError(t, err)
		assert.True(t, dec("60.00").Equal(o.TotalAmount()), "total = %s", o.TotalAmount())
	})

	t.Run("commission rounds half away from zero to cents", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().WithItems(
			order.Item{ProductID: uuid.New(), Quantity: 1, Price: dec("0.10")},
		).BuildDomain()
		require.NoError(t, err)

		// 0.10 * 0.05 = 0.005
		c := order.NewCommission(o, order.CommissionRate, time.Now())
		assert.Equal(t, "0.01", c.Amount().StringFixed(2))
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name  string
			b     *builder.OrderBuilder
			errIs error
		}{
			{name: "no items", b: builder.NewOrderBuilder().WithItems(), errIs: order.ErrNoItems},
			{name: "missing seller", b: builder.NewOrderBuilder().WithSellerID(uuid.Nil), errIs: order.ErrMissingSeller},
			{name: "zero quantity", b: builder.NewOrderBuilder().WithItems(order.Item{ProductID: uuid.New(), Quantity: 0, Price: dec("1")}), errIs: order.ErrInvalidQuantity},
			{name: "negative price", b: builder.NewOrderBuilder().WithItems(order.Item{ProductID: uuid.New(), Quantity: 1, Price: dec("-1")}), errIs: order.ErrNegativePrice},
			{name: "missing product", b: builder.NewOrderBuilder().WithItems(order.Item{Quantity: 1, Price: dec("1")}), errIs: order.ErrMissingProduct},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				o, err := tc.b.BuildDomain()
				assert.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, o)
			})
		}
	})

	t.Run("items are snapshotted", func(t *testing.T) {
		items := []order.Item{{ProductID: uuid.New(), Quantity: 1, Price: dec("5")}}
		o, err := builder.NewOrderBuilder().WithItems(items...).BuildDomain()
		require.NoError(t, err)

		items[0].Price = dec("999")
		assert.True(t, dec("5").Equal(o.Items()[0].Price))
	})
}

func TestOrder_Transitions(t *testing.T) {
	now := time.Now()

	t.Run("pending order can be paid once", func(t *testing.T) {
		o := builder.NewOrderBuilder().BuildWithStatus(order.StatusPending)
		require.NoError(t, o.MarkPaid(now))
		assert.Equal(t, order.StatusPaid, o.Status())
		assert.ErrorIs(t, o.MarkPaid(now), order.ErrNotPending)
	})

	t.Run("terminate from pending and paid", func(t *testing.T) {
		for _, from := range []order.Status{order.StatusPending, order.StatusPaid} {
			o := builder.NewOrderBuilder().BuildWithStatus(from)
			changed, err := o.Terminate(order.StatusFailed, "payment rejected", now)
			require.NoError(t, err)
			assert.True(t, changed)
			assert.Equal(t, order.StatusFailed, o.Status())
			assert.Equal(t, "payment rejected", o.StatusReason())
		}
	})

	t.Run("terminate is a no-op once failed or cancelled", func(t *testing.T) {
		for _, from := range []order.Status{order.StatusFailed, order.StatusCancelled} {
			o := builder.NewOrderBuilder().BuildWithStatus(from)
			changed, err := o.Terminate(order.StatusCancelled, "again", now)
			require.NoError(t, err)
			assert.False(t, changed)
			assert.Equal(t, from, o.Status())
		}
	})

	t.Run("terminate rejects non-failure status", func(t *testing.T) {
		o := builder.NewOrderBuilder().BuildWithStatus(order.StatusPending)
		_, err := o.Terminate(order.StatusPaid, "", now)
		assert.ErrorIs(t, err, order.ErrUnknownStatus)
	})

	t.Run("failed order cannot be paid", func(t *testing.T) {
		o := builder.NewOrderBuilder().BuildWithStatus(order.StatusFailed)
		assert.ErrorIs(t, o.MarkPaid(now), order.ErrNotPending)
	})
}

func TestParseStatus(t *testing.T) {
	s, err := order.ParseStatus("CANCELLED")
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, s)

	_, err = order.ParseStatus("SHIPPED")
	assert.ErrorIs(t, err, order.ErrUnknownStatus)
}
