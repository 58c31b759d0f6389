package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"puente-core/internal/domain/checkout"
	"puente-core/internal/domain/ledger"
	"puente-core/internal/domain/product"
	"puente-core/internal/infra"
	"puente-core/internal/infra/readstore"
	"puente-core/internal/infra/repository"
	"puente-core/internal/infra/repository/converter"
	sqlc "puente-core/internal/infra/sqlc/generated"
	"puente-core/internal/pkg/errs"
	"puente-core/internal/pkg/pgconv"
	"puente-core/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
	q    *sqlc.Queries
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries) shared.UnitOfWork {
	return &PostgresUoW{
		pool: pool,
		q:    q,
	}
}

// ReadCommitted is enough: every contended write is a conditional UPDATE.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{q: u.q, dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 50 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx: pgxTx,
			uow:  u,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries && isRetryableError(err) {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- high bit masked above
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	productRepo     shared.ProductRepository
	orderRepo       shared.OrderRepository
	ledgerRepo      shared.LedgerRepository
	sagaRepo        shared.CheckoutSagaRepository
	idempotencyRepo shared.IdempotencyRepository
	outboxRepo      shared.OutboxRepository
	commandReads    shared.CommandReads
}

func (t *pgTx) DB() sqlc.DBTX {
	return t.dbtx
}

func (t *pgTx) Products() shared.ProductRepository {
	if t.productRepo == nil {
		t.productRepo = repository.NewProductRepository(t.uow.q, t.dbtx)
	}
	return t.productRepo
}

func (t *pgTx) Orders() shared.OrderRepository {
	if t.orderRepo == nil {
		t.orderRepo = repository.NewOrderRepository(t.uow.q, t.dbtx)
	}
	return t.orderRepo
}

func (t *pgTx) Ledger() shared.LedgerRepository {
	if t.ledgerRepo == nil {
		t.ledgerRepo = repository.NewLedgerRepository(t.uow.q, t.dbtx)
	}
	return t.ledgerRepo
}

func (t *pgTx) Sagas() shared.CheckoutSagaRepository {
	if t.sagaRepo == nil {
		t.sagaRepo = repository.NewCheckoutSagaRepository(t.uow.q, t.dbtx)
	}
	return t.sagaRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.uow.q, t.dbtx)
	}
	return t.idempotencyRepo
}

func (t *pgTx) Outbox() shared.OutboxRepository {
	if t.outboxRepo == nil {
		t.outboxRepo = repository.NewOutboxRepository(t.uow.q, t.dbtx)
	}
	return t.outboxRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{
			q:    t.uow.q,
			dbtx: t.dbtx,
		}
	}
	return t.commandReads
}

type commandReads struct {
	q    *sqlc.Queries
	dbtx sqlc.DBTX

	idempotencyStore *readstore.IdempotencyReadStore
}

func (r *commandReads) ProductByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	row, err := r.q.GetProduct(ctx, r.dbtx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load product", err)
	}
	p, err := converter.ProductFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode product", err, infra.KindDBFailure)
	}
	return p, nil
}

func (r *commandReads) OrderByID(ctx context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	row, err := r.q.GetOrder(ctx, r.dbtx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order", err)
	}
	items, err := r.q.ListOrderItems(ctx, r.dbtx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order items", err)
	}
	o, err := converter.OrderFromRows(row, items)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode order", err, infra.KindDBFailure)
	}
	commission, err := r.q.GetCommissionByOrder(ctx, r.dbtx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load commission", err)
	}
	return &shared.OrderSnapshot{Order: o, Commission: converter.CommissionFromRow(commission)}, nil
}

func (r *commandReads) LedgerEntriesByOrder(ctx context.Context, orderID uuid.UUID) ([]*ledger.Entry, error) {
	rows, err := r.q.ListLedgerEntriesByOrder(ctx, r.dbtx, pgconv.UUIDToPgtype(orderID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load ledger entries", err)
	}
	entries, err := converter.LedgerEntriesFromRows(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode ledger entries", err, infra.KindDBFailure)
	}
	return entries, nil
}

func (r *commandReads) CheckoutByID(ctx context.Context, id uuid.UUID) (*checkout.Saga, error) {
	row, err := r.q.GetCheckoutSaga(ctx, r.dbtx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load checkout", err)
	}
	s, err := converter.SagaFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode checkout", err, infra.KindDBFailure)
	}
	return s, nil
}

func (r *commandReads) CheckoutsByStatus(ctx context.Context, status checkout.Status, updatedBefore time.Time, limit int32) ([]*checkout.Saga, error) {
	rows, err := r.q.ListCheckoutSagasByStatus(ctx, r.dbtx, sqlc.ListCheckoutSagasByStatusParams{
		Status:        string(status),
		UpdatedBefore: pgconv.TimeToPgtype(updatedBefore),
		BatchSize:     limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list checkouts", err)
	}
	sagas := make([]*checkout.Saga, 0, len(rows))
	for _, row := range rows {
		s, err := converter.SagaFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode checkout", err, infra.KindDBFailure)
		}
		sagas = append(sagas, s)
	}
	return sagas, nil
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key string, scopeID uuid.UUID) (*shared.IdempotencyRecord, error) {
	if r.idempotencyStore == nil {
		r.idempotencyStore = readstore.NewIdempotencyReadStore(r.q)
	}
	return r.idempotencyStore.Get(ctx, r.dbtx, sqlc.GetIdempotencyKeyParams{Key: key, ScopeID: scopeID})
}
