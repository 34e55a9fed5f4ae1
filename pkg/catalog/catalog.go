package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tradebinder/tradebinder/pkg/cache"
	"github.com/tradebinder/tradebinder/pkg/logger"
	"github.com/tradebinder/tradebinder/pkg/types"
)

// ProductFetcher is the slice of the marketplace API the catalog needs.
type ProductFetcher interface {
	FetchProduct(ctx context.Context, productID string) (*types.Product, error)
	FetchAllProducts(ctx context.Context) ([]types.Product, error)
}

// Catalog is a read-through product lookup: cache first, marketplace on
// miss. Entries are stored under "product:" keys as JSON and expire after
// the configured TTL, so repeated card detail screens don't re-fetch.
// NOTE: The catalog does not lock across Get calls; concurrent misses for
// the same id may each hit the backend once.
type Catalog struct {
	backend ProductFetcher
	cache   cache.Cache
	ttl     time.Duration
}

// New creates a catalog with the given cache backend and entry TTL.
func New(backend ProductFetcher, c cache.Cache, ttl time.Duration) *Catalog {
	return &Catalog{
		backend: backend,
		cache:   c,
		ttl:     ttl,
	}
}

// productKey returns the prefixed cache key for a product
func (c *Catalog) productKey(productID string) string {
	return "product:" + productID
}

// Get returns the product, serving from cache when possible. Cache write
// failures are logged, not returned; the lookup still succeeds.
func (c *Catalog) Get(ctx context.Context, productID string) (*types.Product, error) {
	key := c.productKey(productID)

	if val, err := c.cache.Get(ctx, key); err == nil {
		product := &types.Product{}
		if err := json.Unmarshal([]byte(val.(string)), product); err == nil {
			return product, nil
		}
		// corrupt entry, fall through to the backend
	}

	product, err := c.backend.FetchProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	c.put(ctx, key, product)
	return product, nil
}

// List fetches the whole catalog from the marketplace and warms the cache
// with each entry.
func (c *Catalog) List(ctx context.Context) ([]types.Product, error) {
	products, err := c.backend.FetchAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		c.put(ctx, c.productKey(products[i].ID), &products[i])
	}
	return products, nil
}

// Invalidate drops the cached entry for a product.
func (c *Catalog) Invalidate(ctx context.Context, productID string) error {
	return c.cache.Delete(ctx, c.productKey(productID))
}

func (c *Catalog) put(ctx context.Context, key string, product *types.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		logger.Logger(ctx).WithError(err).Warn(fmt.Sprintf("failed to marshal product for key %s", key))
		return
	}
	if err := c.cache.Set(ctx, key, string(data), c.ttl); err != nil {
		logger.Logger(ctx).WithError(err).Warn("failed to cache product")
	}
}
