package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small read-through cache for hot listing responses. A nil
// *Redis is valid and disables caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Del(ctx context.Context, keys ...string)
}

type Redis struct {
	rdb *redis.Client
}

// NewRedis connects to redis and verifies the connection with a ping.
func NewRedis(ctx context.Context, addr, password string) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctxPing).Err(); err != nil {
		return nil, err
	}
	return &Redis{rdb: rdb}, nil
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c == nil {
		return
	}
	_ = c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *Redis) Del(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

func (c *Redis) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
