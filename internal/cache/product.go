package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/mercato/mercato/internal/model"
)

// Only catalog reads are cached. Cart lines and ownership checks always
// go to the database: each guarded mutation re-reads authoritative state.
const (
	// productCachePrefix is the Redis key prefix for product details.
	productCachePrefix = "product:detail:"
	// productCacheTTL is the time-to-live for cached products.
	productCacheTTL = 5 * time.Minute
)

func productKey(id int64) string {
	return productCachePrefix + strconv.FormatInt(id, 10)
}

// GetProduct retrieves a cached product by ID.
// Returns nil on a cache miss; a miss is not an error.
func (c *Cache) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	data, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		return nil, nil //nolint:nilerr
	}

	var product model.Product
	if err := json.Unmarshal(data, &product); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &product, nil
}

// SetProduct caches a product detail.
func (c *Cache) SetProduct(ctx context.Context, product *model.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, productKey(product.ID), data, productCacheTTL).Err()
}

// InvalidateProduct drops a product from the cache, e.g. after deletion.
func (c *Cache) InvalidateProduct(ctx context.Context, id int64) error {
	return c.client.Del(ctx, productKey(id)).Err()
}
