package counter

import (
	"context"
	"errors"
	"fmt"

	"github.com/gomodule/redigo/redis"

	"github.com/d0ngw/visits/cache"
	c "github.com/d0ngw/visits/common"
)

// RedisStore keeps all counters as the fields of one redis hash
type RedisStore struct {
	redisClient func() *cache.RedisClient
	key         *cache.ParamKey
}

// NewRedisStore create RedisStore, the hash key is cacheParam's prefix + "counter"
func NewRedisStore(redisClientFunc func() *cache.RedisClient, cacheParam *cache.ParamConf) (*RedisStore, error) {
	if c.HasNil(redisClientFunc, cacheParam) {
		return nil, fmt.Errorf("redisClient,cacheParam must be set")
	}
	return &RedisStore{
		redisClient: redisClientFunc,
		key:         cacheParam.NewParamKey(DefaultTable),
	}, nil
}

// Key is the hash key
func (p *RedisStore) Key() string {
	return p.key.Key()
}

func (p *RedisStore) client() (*cache.RedisClient, error) {
	client := p.redisClient()
	if client == nil {
		return nil, fmt.Errorf("redis client not ready")
	}
	return client, nil
}

// Kind implements Store.Kind
func (p *RedisStore) Kind() string {
	return KindRedis
}

// Get implements Store.Get
func (p *RedisStore) Get(ctx context.Context, name string) (int64, error) {
	client, err := p.client()
	if err != nil {
		return 0, err
	}
	visits, err := redis.Int64(client.Do(ctx, cache.HGET, p.key.Key(), name))
	if errors.Is(err, redis.ErrNil) {
		return 0, nil
	}
	return visits, err
}

// Incr implements Store.Incr
func (p *RedisStore) Incr(ctx context.Context, name string) (int64, error) {
	client, err := p.client()
	if err != nil {
		return 0, err
	}
	return redis.Int64(client.Do(ctx, cache.HINCRBY, p.key.Key(), name, 1))
}
