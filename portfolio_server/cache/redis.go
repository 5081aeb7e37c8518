package cache

import (
	"context"
	"errors"
	"fmt"
	redis_pkg "portfolio-server/pkg/db/redis"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldValue   = "value"
	fieldCreated = "created"
	fieldTTL     = "ttl"
)

// redisKVCache keeps each entry in a hash without a redis expiry,
// so expired entries remain readable like in the memory cache.
type redisKVCache struct {
	redisClient *redis.Client
	destroy     func()
	now         func() time.Time
}

func newRedisKVCache(client *redis.Client, destroy func(), now func() time.Time) Cache {
	return &redisKVCache{
		redisClient: client,
		destroy:     destroy,
		now:         now,
	}
}

func (c *redisKVCache) Add(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	key = redis_pkg.GetKey(key)
	return c.redisClient.HSet(ctx, key,
		fieldValue, value,
		fieldCreated, c.now().UnixNano(),
		fieldTTL, int64(ttl),
	).Err()
}

func (c *redisKVCache) Contains(ctx context.Context, key string) (bool, error) {
	key = redis_pkg.GetKey(key)
	n, err := c.redisClient.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *redisKVCache) load(ctx context.Context, key string) (entry, bool, error) {
	res, err := c.redisClient.HGetAll(ctx, redis_pkg.GetKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return entry{}, false, nil
	} else if err != nil {
		return entry{}, false, err
	}
	if len(res) == 0 {
		return entry{}, false, nil
	}
	created, err := strconv.ParseInt(res[fieldCreated], 10, 64)
	if err != nil {
		return entry{}, false, fmt.Errorf("cache key %q: invalid created field: %w", key, err)
	}
	ttl, err := strconv.ParseInt(res[fieldTTL], 10, 64)
	if err != nil {
		return entry{}, false, fmt.Errorf("cache key %q: invalid ttl field: %w", key, err)
	}
	e := entry{
		value:     []byte(res[fieldValue]),
		createdAt: time.Unix(0, created),
		ttl:       time.Duration(ttl),
	}
	return e, true, nil
}

func (c *redisKVCache) IsExpired(ctx context.Context, key string) (bool, error) {
	e, ok, err := c.load(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, keyNotFound(key)
	}
	return e.isExpired(c.now()), nil
}

func (c *redisKVCache) Get(ctx context.Context, key string) ([]byte, error) {
	e, ok, err := c.load(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, keyNotFound(key)
	}
	return e.value, nil
}

func (c *redisKVCache) GetOrNil(ctx context.Context, key string) ([]byte, error) {
	e, ok, err := c.load(ctx, key)
	if err != nil || !ok {
		return nil, err
	}
	return e.value, nil
}

func (c *redisKVCache) TimeDelta(ctx context.Context, key string) (time.Duration, error) {
	e, ok, err := c.load(ctx, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, keyNotFound(key)
	}
	return c.now().Sub(e.createdAt), nil
}

func (c *redisKVCache) Destroy() {
	if c.destroy != nil {
		c.destroy()
	}
}

type redisCacheFactory struct {
	redisPool redis_pkg.RedisPool
	now       func() time.Time
}

func NewRedisCacheFactory(redisPool redis_pkg.RedisPool, opts ...Option) CacheFactory {
	o := newOptions(opts)
	return &redisCacheFactory{
		redisPool: redisPool,
		now:       o.now,
	}
}

func (f *redisCacheFactory) NewKvCache() Cache {
	redisClient := f.redisPool.Get()
	destroy := func() {
		f.redisPool.Put(redisClient)
	}
	return newRedisKVCache(redisClient, destroy, f.now)
}
