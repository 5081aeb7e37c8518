package cache

import (
	"fmt"
	"portfolio-server/pkg/config"
	redis_pkg "portfolio-server/pkg/db/redis"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// NewCacheFactory selects the backend named by cnf.Cache.Backend.
// The redis backend requires an initialized pool.
func NewCacheFactory(cnf *config.Config, pool redis_pkg.RedisPool) (CacheFactory, error) {
	switch cnf.Cache.Backend {
	case "", BackendMemory:
		return NewMemoryCacheFactory(), nil
	case BackendRedis:
		if pool == nil {
			return nil, fmt.Errorf("cache backend %q needs a redis pool", BackendRedis)
		}
		return NewRedisCacheFactory(pool), nil
	}
	return nil, fmt.Errorf("unknown cache backend: %q", cnf.Cache.Backend)
}
