package redis

import (
	"context"
	"fmt"
	"portfolio-server/pkg/config"
	"sync"

	"github.com/redis/go-redis/v9"
)

type RedisPool interface {
	Get() *redis.Client
	Put(client *redis.Client)
}

var (
	pool   RedisPool
	prefix = "portfolio"
)

type redisPool struct {
	pool sync.Pool
}

// Get returns a pooled client and replaces clients that fail a ping.
func (p *redisPool) Get() *redis.Client {
	client := p.pool.Get().(*redis.Client)
	if client.Ping(context.Background()).Err() != nil {
		client.Close()
		client = p.pool.New().(*redis.Client)
	}
	return client
}

func (p *redisPool) Put(client *redis.Client) {
	if client.Ping(context.Background()).Err() != nil {
		client.Close()
		return
	}
	p.pool.Put(client)
}

// NewPool returns a pool of clients connected to addr.
func NewPool(addr, password string) RedisPool {
	return &redisPool{
		pool: sync.Pool{
			New: func() any {
				return redis.NewClient(&redis.Options{
					Addr:     addr,
					Password: password,
				})
			},
		},
	}
}

func InitRedisPool(cnf *config.Config) {
	pool = NewPool(fmt.Sprintf("%s:%d", cnf.Redis.Host, cnf.Redis.Port), cnf.Redis.Pwd)
	if cnf.Redis.Prefix != "" {
		prefix = cnf.Redis.Prefix
	}
}

func GetPool() RedisPool {
	return pool
}

// GetKey namespaces key with the configured prefix.
func GetKey(key string) string {
	return prefix + ":" + key
}
