package inmemory

import (
	"context"
	"path"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/tradebinder/tradebinder/pkg/cache"
)

// Config holds the in-memory cache settings, in seconds.
type Config struct {
	DefaultExpiration int `json:"default_expiration" mapstructure:"default_expiration"`
	CleanupInterval   int `json:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// Cache is a process-local cache.Cache backed by patrickmn/go-cache.
type Cache struct {
	store *gocache.Cache
}

var _ cache.Cache = (*Cache)(nil)

// NewCache creates an in-memory cache from cfg. Zero values fall back to
// five-minute expiration with ten-minute cleanup.
func NewCache(cfg *Config) (*Cache, error) {
	defaultExpiration := 5 * time.Minute
	cleanupInterval := 10 * time.Minute
	if cfg != nil {
		if cfg.DefaultExpiration > 0 {
			defaultExpiration = time.Duration(cfg.DefaultExpiration) * time.Second
		}
		if cfg.CleanupInterval > 0 {
			cleanupInterval = time.Duration(cfg.CleanupInterval) * time.Second
		}
	}

	return &Cache{
		store: gocache.New(defaultExpiration, cleanupInterval),
	}, nil
}

func (c *Cache) Get(_ context.Context, key string) (interface{}, error) {
	val, found := c.store.Get(key)
	if !found {
		return nil, cache.ErrKeyNotFound
	}
	return val, nil
}

func (c *Cache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == cache.NoExpiration {
		ttl = gocache.NoExpiration
	}
	c.store.Set(key, value, ttl)
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

func (c *Cache) GetByPattern(_ context.Context, pattern string) (map[string]interface{}, error) {
	results := make(map[string]interface{})
	for key, item := range c.store.Items() {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return nil, err
		}
		if matched {
			results[key] = item.Object
		}
	}
	return results, nil
}
