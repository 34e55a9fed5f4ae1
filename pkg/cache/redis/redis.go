package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	goredis "github.com/redis/go-redis/v9"

	"github.com/tradebinder/tradebinder/pkg/cache"
)

// Config holds the redis connection settings.
type Config struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     int    `json:"port" mapstructure:"port"`
	Password string `json:"password" mapstructure:"password"`
	DB       int    `json:"db" mapstructure:"db"`
}

// Cache is a cache.Cache backed by redis, shared across app processes.
type Cache struct {
	client *goredis.Client
}

var _ cache.Cache = (*Cache)(nil)

// NewCache connects to redis and instruments the client with tracing.
func NewCache(cfg *Config) (*Cache, error) {
	if cfg == nil || cfg.Host == "" {
		return nil, fmt.Errorf("redis cache requires a host")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("failed to instrument redis client: %w", err)
	}

	return &Cache{client: client}, nil
}

// NewCacheWithClient wraps an existing redis client; used by tests running
// against miniredis.
func NewCacheWithClient(client *goredis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Get(ctx context.Context, key string) (interface{}, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, cache.ErrKeyNotFound
		}
		return nil, err
	}
	return val, nil
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == cache.NoExpiration {
		ttl = 0
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *Cache) GetByPattern(ctx context.Context, pattern string) (map[string]interface{}, error) {
	results := make(map[string]interface{})

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		val, err := c.client.Get(ctx, key).Result()
		if err != nil {
			if errors.Is(err, goredis.Nil) {
				continue
			}
			return nil, err
		}
		results[key] = val
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}

	return results, nil
}
