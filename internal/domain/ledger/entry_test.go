//go:build unit

package ledger_test

import (
	"testing"
	"time"

	"puente-core/internal/domain/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func saleAndCommission(t *testing.T) (*ledger.Entry, *ledger.Entry) {
	t.Helper()
	seller, orderID := uuid.New(), uuid.New()
	now := time.Now()

	sale, err := ledger.SaleEntry(seller, orderID, dec("200"), now)
	require.NoError(t, err)
	fee, err := ledger.CommissionEntry(seller, orderID, dec("10"), now)
	require.NoError(t, err)
	return sale, fee
}

func TestEntries(t *testing.T) {
	t.Run("sale credits and commission debits the seller", func(t *testing.T) {
		sale, fee := saleAndCommission(t)

		assert.Equal(t, ledger.Credit, sale.Type())
		assert.Equal(t, ledger.CategorySale, sale.Category())
		assert.Equal(t, ledger.Debit, fee.Type())
		assert.Equal(t, ledger.CategoryCommission, fee.Category())
		assert.Equal(t, sale.OrderID(), fee.OrderID())
		assert.Contains(t, fee.Description(), "Platform commission")

		assert.True(t, dec("190").Equal(ledger.Net([]*ledger.Entry{sale, fee})))
	})

	t.Run("negative amounts are rejected", func(t *testing.T) {
		_, err := ledger.SaleEntry(uuid.New(), uuid.New(), dec("-1"), time.Now())
		assert.ErrorIs(t, err, ledger.ErrNegativeAmount)
	})

	t.Run("deposits must be positive", func(t *testing.T) {
		_, err := ledger.DepositEntry(uuid.New(), decimal.Zero, time.Now())
		assert.ErrorIs(t, err, ledger.ErrNonPositiveFunds)

		e, err := ledger.DepositEntry(uuid.New(), dec("50"), time.Now())
		require.NoError(t, err)
		assert.Nil(t, e.OrderID())
		assert.Equal(t, ledger.CategoryDeposit, e.Category())
	})
}

func TestEntry_Reverse(t *testing.T) {
	sale, fee := saleAndCommission(t)
	now := time.Now()

	saleRefund, err := sale.Reverse(now)
	require.NoError(t, err)
	feeRefund, err := fee.Reverse(now)
	require.NoError(t, err)

	assert.Equal(t, ledger.Debit, saleRefund.Type())
	assert.Equal(t, ledger.Credit, feeRefund.Type())
	assert.Equal(t, ledger.CategoryRefund, saleRefund.Category())
	assert.Equal(t, sale.ID(), *saleRefund.ReferenceID())
	assert.Equal(t, sale.OrderID(), saleRefund.OrderID())
	assert.True(t, sale.Amount().Equal(saleRefund.Amount()))
	assert.Contains(t, saleRefund.Description(), sale.ID().String())

	all := []*ledger.Entry{sale, fee, saleRefund, feeRefund}
	assert.True(t, ledger.Net(all).IsZero(), "reversed ledger must net to zero, got %s", ledger.Net(all))

	_, err = saleRefund.Reverse(now)
	assert.ErrorIs(t, err, ledger.ErrReversalOfRefund)
}

func TestPendingReversals(t *testing.T) {
	sale, fee := saleAndCommission(t)

	assert.ElementsMatch(t, []*ledger.Entry{sale, fee}, ledger.PendingReversals([]*ledger.Entry{sale, fee}))

	saleRefund, err := sale.Reverse(time.Now())
	require.NoError(t, err)
	assert.Equal(t, []*ledger.Entry{fee}, ledger.PendingReversals([]*ledger.Entry{sale, fee, saleRefund}))

	feeRefund, err := fee.Reverse(time.Now())
	require.NoError(t, err)
	assert.Empty(t, ledger.PendingReversals([]*ledger.Entry{sale, fee, saleRefund, feeRefund}))
}
