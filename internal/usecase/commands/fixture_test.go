//go:build unit

package commands_test

import (
	"context"
	"time"

	"puente-core/internal/infra"
	"puente-core/internal/pkg/clock"
	"puente-core/internal/usecase/shared"
	queriesmock "puente-core/tests/mock/queries"
	sharedmock "puente-core/tests/mock/shared"

	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// uowFixture wires a unit of work whose transactions run inline against gomock repositories.
type uowFixture struct {
	uow         *sharedmock.MockUnitOfWork
	tx          *sharedmock.MockTx
	reads       *sharedmock.MockCommandReads
	products    *sharedmock.MockProductRepository
	orders      *sharedmock.MockOrderRepository
	ledger      *sharedmock.MockLedgerRepository
	sagas       *sharedmock.MockCheckoutSagaRepository
	idempotency *sharedmock.MockIdempotencyRepository
	outbox      *sharedmock.MockOutboxRepository
	cache       *queriesmock.MockProductCache
	clock       *clock.MockClock
}

func newUoWFixture(ctrl *gomock.Controller) *uowFixture {
	f := &uowFixture{
		uow:         sharedmock.NewMockUnitOfWork(ctrl),
		tx:          sharedmock.NewMockTx(ctrl),
		reads:       sharedmock.NewMockCommandReads(ctrl),
		products:    sharedmock.NewMockProductRepository(ctrl),
		orders:      sharedmock.NewMockOrderRepository(ctrl),
		ledger:      sharedmock.NewMockLedgerRepository(ctrl),
		sagas:       sharedmock.NewMockCheckoutSagaRepository(ctrl),
		idempotency: sharedmock.NewMockIdempotencyRepository(ctrl),
		outbox:      sharedmock.NewMockOutboxRepository(ctrl),
		cache:       queriesmock.NewMockProductCache(ctrl),
		clock:       clock.NewMockClock(fixedNow),
	}

	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		}).AnyTimes()
	f.uow.EXPECT().CommandReads().Return(f.reads).AnyTimes()

	f.tx.EXPECT().Products().Return(f.products).AnyTimes()
	f.tx.EXPECT().Orders().Return(f.orders).AnyTimes()
	f.tx.EXPECT().Ledger().Return(f.ledger).AnyTimes()
	f.tx.EXPECT().Sagas().Return(f.sagas).AnyTimes()
	f.tx.EXPECT().Idempotency().Return(f.idempotency).AnyTimes()
	f.tx.EXPECT().Outbox().Return(f.outbox).AnyTimes()
	f.tx.EXPECT().Reads().Return(f.reads).AnyTimes()
	f.tx.EXPECT().DB().Return(nil).AnyTimes()

	f.cache.EXPECT().Invalidate(gomock.Any(), gomock.Any()).AnyTimes()
	return f
}

func notFound(what string) error {
	return infra.NewRepoErr(infra.KindNotFound, what+" not found")
}
