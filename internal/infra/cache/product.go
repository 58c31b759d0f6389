package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"puente-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	productKeyPrefix = "puente:product:"

	// invalidatedMarker replaces an invalidated entry for invalidationHold so
	// a fill that read the row before the write cannot store it back.
	invalidatedMarker = "-"
	invalidationHold  = 5 * time.Second
)

// RedisProductCache stores product views as JSON. Failures are logged and
// treated as misses.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	hold   time.Duration
}

func NewRedisProductCache(client *redis.Client, ttl time.Duration) *RedisProductCache {
	return &RedisProductCache{client: client, ttl: ttl, hold: invalidationHold}
}

func productKey(id uuid.UUID) string {
	return productKeyPrefix + id.String()
}

func (c *RedisProductCache) Get(ctx context.Context, id uuid.UUID) (*queries.ProductView, bool) {
	raw, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "product cache read failed", "product_id", id, "error", err.Error())
		}
		return nil, false
	}
	if string(raw) == invalidatedMarker {
		return nil, false
	}

	var view queries.ProductView
	if err := json.Unmarshal(raw, &view); err != nil {
		slog.WarnContext(ctx, "product cache entry unreadable", "product_id", id, "error", err.Error())
		return nil, false
	}
	return &view, true
}

func (c *RedisProductCache) Set(ctx context.Context, view *queries.ProductView) {
	raw, err := json.Marshal(view)
	if err != nil {
		return
	}
	// SETNX never replaces the marker left by a concurrent invalidation
	if err := c.client.SetNX(ctx, productKey(view.ID), raw, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "product cache write failed", "product_id", view.ID, "error", err.Error())
	}
}

func (c *RedisProductCache) Invalidate(ctx context.Context, ids ...uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			pipe.Set(ctx, productKey(id), invalidatedMarker, c.hold)
		}
		return nil
	})
	if err != nil {
		slog.WarnContext(ctx, "product cache invalidation failed", "products", len(ids), "error", err.Error())
	}
}

// NoopProductCache is used when Redis is not configured.
type NoopProductCache struct{}

func (NoopProductCache) Get(context.Context, uuid.UUID) (*queries.ProductView, bool) { return nil, false }
func (NoopProductCache) Set(context.Context, *queries.ProductView)                   {}
func (NoopProductCache) Invalidate(context.Context, ...uuid.UUID)                     {}
