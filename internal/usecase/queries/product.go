package queries

import (
	"context"
	"time"

	"puente-core/internal/infra"

	"github.com/google/uuid"
)

type ProductReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	ListFirstPage(ctx context.Context, sellerID *uuid.UUID, limit int32) ([]*ProductView, error)
	ListKeyset(ctx context.Context, sellerID *uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ProductView, error)
}

// ProductCache is a read-through cache of product views. Implementations
// swallow their own failures; a miss is always safe. Set must not undo an
// Invalidate that landed after the view was read.
type ProductCache interface {
	Get(ctx context.Context, id uuid.UUID) (*ProductView, bool)
	Set(ctx context.Context, view *ProductView)
	Invalidate(ctx context.Context, ids ...uuid.UUID)
}

type ProductQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	List(ctx context.Context, sellerID *uuid.UUID, cursor *Cursor, limit int) ([]*ProductView, *Cursor, error)
}

type productQueriesImpl struct {
	store ProductReadStore
	cache ProductCache
}

func NewProductQueries(store ProductReadStore, cache ProductCache) ProductQueries {
	return &productQueriesImpl{store: store, cache: cache}
}

func (q *productQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	if v, ok := q.cache.Get(ctx, id); ok {
		return v, nil
	}

	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	q.cache.Set(ctx, v)
	return v, nil
}

func (q *productQueriesImpl) List(ctx context.Context, sellerID *uuid.UUID, cursor *Cursor, limit int) ([]*ProductView, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*ProductView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.ListFirstPage(ctx, sellerID, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.store.ListKeyset(ctx, sellerID, lastCreatedAt, lastID, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	}
	if err != nil {
		return nil, nil, err
	}
	rows, next := page(rows, limit, func(v *ProductView) (time.Time, uuid.UUID) { return v.CreatedAt, v.ID })
	return rows, next, nil
}
