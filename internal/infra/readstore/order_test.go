//go:build unit

package readstore_test

import (
	"context"
	"testing"
	"time"

	"puente-core/internal/infra"
	"puente-core/internal/infra/readstore"
	sqlc "puente-core/internal/infra/sqlc/generated"
	"puente-core/internal/pkg/pgconv"
	readstoremock "puente-core/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func money(s string) pgtype.Numeric {
	return pgconv.DecimalToNumeric(decimal.RequireFromString(s))
}

// =============================================================================
// Order FindByID Tests
// =============================================================================

func TestOrderReadStore_FindByID(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	sellerID := uuid.New()
	now := time.Now()

	orderRow := sqlc.Orders{
		ID:          orderID,
		SellerID:    sellerID,
		TotalAmount: money("200.00"),
		Status:      "PENDING",
		CreatedAt:   pgtype.Timestamptz{Time: now, Valid: true},
		UpdatedAt:   pgtype.Timestamptz{Time: now, Valid: true},
	}
	items := []sqlc.OrderItems{{OrderID: orderID, ProductID: uuid.New(), Quantity: 2, Price: money("100.00")}}
	entries := []sqlc.LedgerEntries{
		{ID: uuid.New(), UserID: sellerID, Amount: money("200.00"), Type: "CREDIT", Category: "SALE", OrderID: pgconv.UUIDToPgtype(orderID)},
		{ID: uuid.New(), UserID: sellerID, Amount: money("10.00"), Type: "DEBIT", Category: "COMMISSION", OrderID: pgconv.UUIDToPgtype(orderID)},
	}

	t.Run("success: assembles items, commission and ledger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockOrderReadQueries(ctrl)
		store := readstore.NewOrderReadStore(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().GetOrder(ctx, gomock.Any(), orderID).Return(orderRow, nil)
		mockQueries.EXPECT().ListOrderItems(ctx, gomock.Any(), orderID).Return(items, nil)
		mockQueries.EXPECT().GetCommissionByOrder(ctx, gomock.Any(), orderID).
			Return(sqlc.Commissions{OrderID: orderID, Amount: money("10.00"), Rate: money("0.05")}, nil)
		mockQueries.EXPECT().ListLedgerEntriesByOrder(ctx, gomock.Any(), pgconv.UUIDToPgtype(orderID)).Return(entries, nil)

		view, err := store.FindByID(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, "200", view.TotalAmount.String())
		require.Len(t, view.Items, 1)
		assert.Equal(t, int32(2), view.Items[0].Quantity)
		require.NotNil(t, view.Commission)
		assert.Equal(t, "10", view.Commission.Amount.String())
		assert.Equal(t, "0.05", view.Commission.Rate.String())
		assert.Len(t, view.LedgerEntries, 2)
		assert.Nil(t, view.BuyerID)
		assert.Nil(t, view.StatusReason)
	})

	t.Run("success: missing commission row leaves it empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockOrderReadQueries(ctrl)
		store := readstore.NewOrderReadStore(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().GetOrder(ctx, gomock.Any(), orderID).Return(orderRow, nil)
		mockQueries.EXPECT().ListOrderItems(ctx, gomock.Any(), orderID).Return(items, nil)
		mockQueries.EXPECT().GetCommissionByOrder(ctx, gomock.Any(), orderID).Return(sqlc.Commissions{}, pgx.ErrNoRows)
		mockQueries.EXPECT().ListLedgerEntriesByOrder(ctx, gomock.Any(), gomock.Any()).Return(nil, nil)

		view, err := store.FindByID(ctx, orderID)
		require.NoError(t, err)
		assert.Nil(t, view.Commission)
		assert.Empty(t, view.LedgerEntries)
	})

	t.Run("error: order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockOrderReadQueries(ctrl)
		store := readstore.NewOrderReadStore(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().GetOrder(ctx, gomock.Any(), orderID).Return(sqlc.Orders{}, pgx.ErrNoRows)

		view, err := store.FindByID(ctx, orderID)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.Nil(t, view)
	})

	t.Run("error: items query fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockOrderReadQueries(ctrl)
		store := readstore.NewOrderReadStore(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().GetOrder(ctx, gomock.Any(), orderID).Return(orderRow, nil)
		mockQueries.EXPECT().ListOrderItems(ctx, gomock.Any(), orderID).Return(nil, errDBConnectionLost)

		_, err := store.FindByID(ctx, orderID)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

// =============================================================================
// Ledger Balance Tests
// =============================================================================

func TestLedgerReadStore_Balance(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	testCases := []struct {
		name     string
		numeric  pgtype.Numeric
		dbErr    error
		expected string
	}{
		{name: "positive balance", numeric: money("190.00"), expected: "190"},
		{name: "no entries yields zero", numeric: pgtype.Numeric{}, expected: "0"},
		{name: "database error", dbErr: errDBConnectionLost},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := readstoremock.NewMockLedgerReadQueries(ctrl)
			store := readstore.NewLedgerReadStore(mockQueries, &mockDBTX{})

			mockQueries.EXPECT().GetUserBalance(ctx, gomock.Any(), userID).Return(tc.numeric, tc.dbErr)

			view, err := store.Balance(ctx, userID)
			if tc.dbErr != nil {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, view.UserID)
			assert.Equal(t, tc.expected, view.Balance.String())
		})
	}
}

func TestLedgerReadStore_ListByUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	refID := uuid.New()

	ctrl := gomock.NewController(t)
	mockQueries := readstoremock.NewMockLedgerReadQueries(ctrl)
	store := readstore.NewLedgerReadStore(mockQueries, &mockDBTX{})

	mockQueries.EXPECT().ListLedgerEntriesByUserFirstPage(ctx, gomock.Any(), sqlc.ListLedgerEntriesByUserFirstPageParams{UserID: userID, Limit: 3}).
		Return([]sqlc.LedgerEntries{{
			ID:          uuid.New(),
			UserID:      userID,
			Amount:      money("200.00"),
			Type:        "DEBIT",
			Category:    "REFUND",
			OrderID:     pgconv.UUIDToPgtype(orderID),
			ReferenceID: pgconv.UUIDToPgtype(refID),
		}}, nil)

	views, err := store.ListByUserFirstPage(ctx, userID, 3)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "REFUND", views[0].Category)
	require.NotNil(t, views[0].OrderID)
	assert.Equal(t, orderID, *views[0].OrderID)
	require.NotNil(t, views[0].ReferenceID)
	assert.Equal(t, refID, *views[0].ReferenceID)
}
