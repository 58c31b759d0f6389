//go:build unit

package cache_test

import (
	"context"
	"testing"
	"time"

	"puente-core/internal/infra/cache"
	"puente-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNoopProductCache(t *testing.T) {
	ctx := context.Background()
	var c queries.ProductCache = cache.NoopProductCache{}
	view := &queries.ProductView{ID: uuid.New()}

	c.Set(ctx, view)
	c.Invalidate(ctx, view.ID)

	got, ok := c.Get(ctx, view.ID)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRedisProductCache_UnreachableIsAMiss(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	var c queries.ProductCache = cache.NewRedisProductCache(client, time.Minute)
	view := &queries.ProductView{ID: uuid.New()}

	assert.NotPanics(t, func() {
		c.Set(ctx, view)
		c.Invalidate(ctx, view.ID)
	})
	got, ok := c.Get(ctx, view.ID)
	assert.False(t, ok)
	assert.Nil(t, got)
}
