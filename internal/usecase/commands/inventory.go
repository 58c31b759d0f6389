package commands

import (
	"context"
	"errors"
	"log/slog"

	"puente-core/internal/domain/product"
	"puente-core/internal/infra"
	"puente-core/internal/pkg/clock"
	"puente-core/internal/pkg/errs"
	"puente-core/internal/pkg/metrics"
	"puente-core/internal/pkg/tracing"
	"puente-core/internal/usecase/queries"
	"puente-core/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type StockItem struct {
	ProductID uuid.UUID
	Quantity  int32
}

type InventoryCommands interface {
	CreateProduct(ctx context.Context, in product.NewProductInput) (uuid.UUID, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch product.Patch) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	// ReserveStock is all or nothing: a failing item releases the ones reserved before it.
	ReserveStock(ctx context.Context, items []StockItem) error
	// ReleaseStock and ConfirmStock apply every item independently and report all failures together.
	ReleaseStock(ctx context.Context, items []StockItem) error
	ConfirmStock(ctx context.Context, items []StockItem) error
}

type inventoryUseCaseImpl struct {
	uow   shared.UnitOfWork
	cache queries.ProductCache
	clock clock.Clock
}

func NewInventoryUseCase(uow shared.UnitOfWork, cache queries.ProductCache, clock clock.Clock) InventoryCommands {
	return &inventoryUseCaseImpl{
		uow:   uow,
		cache: cache,
		clock: clock,
	}
}

func (uc *inventoryUseCaseImpl) CreateProduct(ctx context.Context, in product.NewProductInput) (uuid.UUID, error) {
	p, err := product.NewProduct(in, uc.clock.Now())
	if err != nil {
		return uuid.Nil, validation(err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Products().Create(ctx, tx.DB(), p)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, errs.Mark(err, ErrDuplicateSKU)
		}
		return uuid.Nil, errs.Wrap(err, "failed to create product")
	}

	slog.InfoContext(ctx, "product created", "product_id", p.ID(), "seller_id", p.SellerID(), "stock", in.Stock)
	return p.ID(), nil
}

func (uc *inventoryUseCaseImpl) UpdateProduct(ctx context.Context, id uuid.UUID, patch product.Patch) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := loadProduct(ctx, tx.Reads(), id)
		if err != nil {
			return err
		}

		before := p.StockLevel().Stock()
		if err := p.Apply(patch, uc.clock.Now()); err != nil {
			return validation(err)
		}

		// the delta is applied in SQL so reservations made since the read are kept
		return tx.Products().Update(ctx, tx.DB(), p, p.StockLevel().Stock()-before)
	})
	switch {
	case err == nil:
	case infra.IsKind(err, infra.KindNotFound):
		return ErrProductNotFound
	case infra.IsKind(err, infra.KindCheckViolated):
		return errs.Mark(err, ErrStockBelowReserved)
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, ErrDuplicateSKU)
	default:
		return err
	}

	uc.cache.Invalidate(ctx, id)
	return nil
}

func (uc *inventoryUseCaseImpl) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		deleted, err := tx.Products().Delete(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		if deleted {
			return nil
		}
		if _, err := loadProduct(ctx, tx.Reads(), id); err != nil {
			return err
		}
		return ErrProductReserved
	})
	if err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, id)
	slog.InfoContext(ctx, "product deleted", "product_id", id)
	return nil
}

func (uc *inventoryUseCaseImpl) ReserveStock(ctx context.Context, items []StockItem) (err error) {
	ctx, span := tracing.Start(ctx, "inventory.ReserveStock", attribute.Int("items", len(items)))
	defer func() { tracing.End(span, err) }()

	if err := validateStockItems(items); err != nil {
		return err
	}

	reserved := make([]StockItem, 0, len(items))
	for _, item := range items {
		if err := uc.reserveOne(ctx, item); err != nil {
			metrics.StockOperations.WithLabelValues("reserve", "error").Inc()
			return uc.rollback(ctx, reserved, err)
		}
		reserved = append(reserved, item)
	}

	metrics.StockOperations.WithLabelValues("reserve", "ok").Inc()
	uc.invalidate(ctx, items)
	return nil
}

func (uc *inventoryUseCaseImpl) reserveOne(ctx context.Context, item StockItem) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := loadProduct(ctx, tx.Reads(), item.ProductID)
		if err != nil {
			return err
		}
		if !p.StockLevel().CanReserve(item.Quantity) {
			return errs.Wrapf(ErrInsufficientStock, "product %s: requested %d, available %d",
				item.ProductID, item.Quantity, p.StockLevel().Available())
		}

		ok, err := tx.Products().Reserve(ctx, tx.DB(), item.ProductID, item.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return errs.Wrapf(ErrReservationConflict, "product %s", item.ProductID)
		}
		return nil
	})
}

// rollback releases what was already reserved and returns the original cause,
// or a ReservationRollbackError when the release itself failed.
func (uc *inventoryUseCaseImpl) rollback(ctx context.Context, reserved []StockItem, cause error) error {
	if len(reserved) == 0 {
		return cause
	}

	if err := uc.releaseEach(ctx, reserved); err != nil {
		metrics.ReservationRollbacks.WithLabelValues("error").Inc()
		slog.ErrorContext(ctx, "reservation rollback failed",
			"cause", cause.Error(), "error", err.Error(), "items", len(reserved))
		return &ReservationRollbackError{Cause: cause, Rollback: err}
	}

	metrics.ReservationRollbacks.WithLabelValues("ok").Inc()
	uc.invalidate(ctx, reserved)
	return cause
}

func (uc *inventoryUseCaseImpl) ReleaseStock(ctx context.Context, items []StockItem) (err error) {
	ctx, span := tracing.Start(ctx, "inventory.ReleaseStock", attribute.Int("items", len(items)))
	defer func() { tracing.End(span, err) }()

	if err := validateStockItems(items); err != nil {
		return err
	}

	err = uc.releaseEach(ctx, items)
	metrics.StockOperations.WithLabelValues("release", metrics.Result(err)).Inc()
	uc.invalidate(ctx, items)
	return err
}

func (uc *inventoryUseCaseImpl) ConfirmStock(ctx context.Context, items []StockItem) (err error) {
	ctx, span := tracing.Start(ctx, "inventory.ConfirmStock", attribute.Int("items", len(items)))
	defer func() { tracing.End(span, err) }()

	if err := validateStockItems(items); err != nil {
		return err
	}

	err = uc.applyEach(ctx, items, func(ctx context.Context, tx shared.Tx, item StockItem) (bool, error) {
		return tx.Products().Confirm(ctx, tx.DB(), item.ProductID, item.Quantity)
	})
	metrics.StockOperations.WithLabelValues("confirm", metrics.Result(err)).Inc()
	uc.invalidate(ctx, items)
	return err
}

func (uc *inventoryUseCaseImpl) releaseEach(ctx context.Context, items []StockItem) error {
	return uc.applyEach(ctx, items, func(ctx context.Context, tx shared.Tx, item StockItem) (bool, error) {
		return tx.Products().Release(ctx, tx.DB(), item.ProductID, item.Quantity)
	})
}

type stockUpdate func(ctx context.Context, tx shared.Tx, item StockItem) (bool, error)

func (uc *inventoryUseCaseImpl) applyEach(ctx context.Context, items []StockItem, update stockUpdate) error {
	var failures []error
	for _, item := range items {
		err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			ok, err := update(ctx, tx, item)
			if err != nil || ok {
				return err
			}
			if _, err := loadProduct(ctx, tx.Reads(), item.ProductID); err != nil {
				return err
			}
			return errs.Wrapf(ErrStockNotReserved, "product %s: quantity %d", item.ProductID, item.Quantity)
		})
		if err != nil {
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}

func (uc *inventoryUseCaseImpl) invalidate(ctx context.Context, items []StockItem) {
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	uc.cache.Invalidate(ctx, ids...)
}

func validateStockItems(items []StockItem) error {
	if len(items) == 0 {
		return errs.Mark(errs.New("at least one item is required"), errs.ErrValidation)
	}
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return errs.Mark(errs.New("item product is required"), errs.ErrValidation)
		}
		if item.Quantity <= 0 {
			return errs.Mark(product.ErrInvalidQuantity, errs.ErrValidation)
		}
	}
	return nil
}

func loadProduct(ctx context.Context, reads shared.CommandReads, id uuid.UUID) (*product.Product, error) {
	p, err := reads.ProductByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(ErrProductNotFound, "product %s", id)
		}
		return nil, err
	}
	return p, nil
}
