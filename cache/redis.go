package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	c "github.com/d0ngw/visits/common"
)

// Redis commands
const (
	PING    = "PING"
	HGET    = "HGET"
	HINCRBY = "HINCRBY"
	HEXISTS = "HEXISTS"
	DEL     = "DEL"
)

// RedisClient wraps a redigo pool
type RedisClient struct {
	pool *redis.Pool
	addr string
}

// NewRedisClient creates the client and its pool, no connection is made yet
func NewRedisClient(conf *RedisConf) (*RedisClient, error) {
	if conf == nil {
		return nil, fmt.Errorf("no redis conf")
	}
	return &RedisClient{pool: conf.newPool(), addr: conf.Addr()}, nil
}

// Addr of the redis server
func (p *RedisClient) Addr() string {
	return p.addr
}

// Do runs one command on a pooled connection
func (p *RedisClient) Do(ctx context.Context, cmd string, args ...interface{}) (reply interface{}, err error) {
	conn, err := p.pool.GetContext(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	return redis.DoContext(conn, ctx, cmd, args...)
}

// Ping the server
func (p *RedisClient) Ping(ctx context.Context) error {
	_, err := redis.String(p.Do(ctx, PING))
	return err
}

// WaitAvailable pings the server until it answers or wait elapses. A zero wait pings once.
func (p *RedisClient) WaitAvailable(ctx context.Context, wait time.Duration) error {
	var cancel context.CancelFunc
	if wait > 0 {
		ctx, cancel = context.WithTimeout(ctx, wait)
		defer cancel()
	}
	var lastErr error
	for r := c.BeginRetry(); r.Continue(ctx); {
		if lastErr = p.Ping(ctx); lastErr == nil {
			return nil
		}
		if wait <= 0 {
			break
		}
		c.Warnf("wait redis %s,attempt:%d,err:%v", p.addr, r.Attempt(), lastErr)
	}
	if lastErr == nil {
		lastErr = ctx.Err()
	}
	return fmt.Errorf("%w: redis %s: %v", c.ErrUnavailable, p.addr, lastErr)
}

// Close the pool
func (p *RedisClient) Close() error {
	return p.pool.Close()
}
