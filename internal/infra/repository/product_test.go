//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"

	"puente-core/internal/domain/product"
	"puente-core/internal/infra"
	"puente-core/internal/infra/repository"
	sqlc "puente-core/internal/infra/sqlc/generated"
	"puente-core/tests/common/builder"
	repositorymock "puente-core/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Create Product Tests
// =============================================================================

func TestProductRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		setupMock  func(*repositorymock.MockProductWriteQueries, *product.Product, sqlc.DBTX)
		expectKind infra.RepositoryErrorKind
	}{
		{
			name: "success: product created",
			setupMock: func(mock *repositorymock.MockProductWriteQueries, p *product.Product, tx sqlc.DBTX) {
				mock.EXPECT().CreateProduct(ctx, tx, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.CreateProductParams) (sqlc.Products, error) {
						assert.Equal(t, p.ID(), arg.ID)
						assert.Equal(t, p.SKU(), arg.Sku)
						assert.JSONEq(t, `{"color":"red"}`, string(arg.Attributes))
						return sqlc.Products{ID: arg.ID}, nil
					})
			},
		},
		{
			name: "error: duplicate sku",
			setupMock: func(mock *repositorymock.MockProductWriteQueries, _ *product.Product, tx sqlc.DBTX) {
				dup := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
				mock.EXPECT().CreateProduct(ctx, tx, gomock.Any()).Return(sqlc.Products{}, dup)
			},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name: "error: database error occurs",
			setupMock: func(mock *repositorymock.MockProductWriteQueries, _ *product.Product, tx sqlc.DBTX) {
				mock.EXPECT().CreateProduct(ctx, tx, gomock.Any()).Return(sqlc.Products{}, errors.New("database connection error"))
			},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockProductWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewProductRepository(mockQueries, mockDB)

			p, err := builder.NewProductBuilder().With(func(b *builder.ProductBuilder) {
				b.Attributes = map[string]any{"color": "red"}
			}).BuildDomain()
			require.NoError(t, err)

			tc.setupMock(mockQueries, p, mockDB)

			actualError := repo.Create(ctx, mockDB, p)

			if tc.expectKind != "" {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

// =============================================================================
// Update Product Tests
// =============================================================================

func TestProductRepository_Update(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		delta      int32
		setupMock  func(*repositorymock.MockProductWriteQueries, sqlc.DBTX)
		expectKind infra.RepositoryErrorKind
	}{
		{
			name:  "success: stock delta passed through",
			delta: -3,
			setupMock: func(mock *repositorymock.MockProductWriteQueries, tx sqlc.DBTX) {
				mock.EXPECT().UpdateProduct(ctx, tx, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.UpdateProductParams) (int64, error) {
						assert.Equal(t, int32(-3), arg.StockDelta)
						return 1, nil
					})
			},
		},
		{
			name: "error: product missing",
			setupMock: func(mock *repositorymock.MockProductWriteQueries, tx sqlc.DBTX) {
				mock.EXPECT().UpdateProduct(ctx, tx, gomock.Any()).Return(int64(0), nil)
			},
			expectKind: infra.KindNotFound,
		},
		{
			name:  "error: stock below reserved violates check",
			delta: -100,
			setupMock: func(mock *repositorymock.MockProductWriteQueries, tx sqlc.DBTX) {
				check := &pgconn.PgError{Code: "23514", Message: "violates check constraint"}
				mock.EXPECT().UpdateProduct(ctx, tx, gomock.Any()).Return(int64(0), check)
			},
			expectKind: infra.KindCheckViolated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockProductWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewProductRepository(mockQueries, mockDB)

			tc.setupMock(mockQueries, mockDB)

			actualError := repo.Update(ctx, mockDB, builder.NewProductBuilder().BuildReconstructed(), tc.delta)

			if tc.expectKind != "" {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

// =============================================================================
// Conditional Stock Update Tests
// =============================================================================

func TestProductRepository_StockUpdates(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	type op func(*repository.ProductRepository, sqlc.DBTX) (bool, error)
	reserve := func(r *repository.ProductRepository, tx sqlc.DBTX) (bool, error) { return r.Reserve(ctx, tx, id, 4) }
	release := func(r *repository.ProductRepository, tx sqlc.DBTX) (bool, error) { return r.Release(ctx, tx, id, 4) }
	confirm := func(r *repository.ProductRepository, tx sqlc.DBTX) (bool, error) { return r.Confirm(ctx, tx, id, 4) }

	testCases := []struct {
		name       string
		run        op
		setupMock  func(*repositorymock.MockProductWriteQueries, sqlc.DBTX)
		expectOK   bool
		expectKind infra.RepositoryErrorKind
	}{
		{
			name: "reserve: row updated",
			run:  reserve,
			setupMock: func(mock *repositorymock.MockProductWriteQueries, tx sqlc.DBTX) {
				mock.EXPECT().ReserveProductStock(ctx, tx, sqlc.ReserveProductStockParams{Quantity: 4, ID: id}).Return(int64(1), nil)
			},
			expectOK: true,
		},
		{
			name: "reserve: condition no longer holds",
			run:  reserve,
			setupMock: func(mock *repositorymock.MockProductWriteQueries, tx sqlc.DBTX) {
				mock.EXPECT().ReserveProductStock(ctx, tx, gomock.Any()).Return(int64(0), nil)
			},
		},
		{
			name: "reserve: database error",
			run:  reserve,
			setupMock: func(mock *repositorymock.MockProductWriteQueries, tx sqlc.DBTX) {
				mock.EXPECT().ReserveProductStock(ctx, tx, gomock.Any()).Return(int64(0), errors.New("connection reset"))
			},
			expectKind: infra.KindDBFailure,
		},
		{
			name: "release: row updated",
			run:  release,
			setupMock: func(mock *repositorymock.MockProductWriteQueries, tx sqlc.DBTX) {
				mock.EXPECT().ReleaseProductStock(ctx, tx, sqlc.ReleaseProductStockParams{Quantity: 4, ID: id}).Return(int64(1), nil)
			},
			expectOK: true,
		},
		{
			name: "release: not enough reserved",
			run:  release,
			setupMock: func(mock *repositorymock.MockProductWriteQueries, tx sqlc.DBTX) {
				mock.EXPECT().ReleaseProductStock(ctx, tx, gomock.Any()).Return(int64(0), nil)
			},
		},
		{
			name: "confirm: row updated",
			run:  confirm,
			setupMock: func(mock *repositorymock.MockProductWriteQueries, tx sqlc.DBTX) {
				mock.EXPECT().ConfirmProductStock(ctx, tx, sqlc.ConfirmProductStockParams{Quantity: 4, ID: id}).Return(int64(1), nil)
			},
			expectOK: true,
		},
		{
			name: "confirm: check violation",
			run:  confirm,
			setupMock: func(mock *repositorymock.MockProductWriteQueries, tx sqlc.DBTX) {
				check := &pgconn.PgError{Code: "23514", Message: "violates check constraint"}
				mock.EXPECT().ConfirmProductStock(ctx, tx, gomock.Any()).Return(int64(0), check)
			},
			expectKind: infra.KindCheckViolated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockProductWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewProductRepository(mockQueries, mockDB)

			tc.setupMock(mockQueries, mockDB)

			ok, actualError := tc.run(repo, mockDB)

			if tc.expectKind != "" {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
				assert.False(t, ok)
			} else {
				assert.NoError(t, actualError)
				assert.Equal(t, tc.expectOK, ok)
			}
		})
	}
}

func TestProductRepository_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockProductWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		mockQueries.EXPECT().DeleteProduct(ctx, mockDB, id).Return(int64(1), nil)

		deleted, err := repository.NewProductRepository(mockQueries, mockDB).Delete(ctx, mockDB, id)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("kept while reserved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockProductWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		mockQueries.EXPECT().DeleteProduct(ctx, mockDB, id).Return(int64(0), nil)

		deleted, err := repository.NewProductRepository(mockQueries, mockDB).Delete(ctx, mockDB, id)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

// =============================================================================
// Mock DB Implementation
// =============================================================================

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
