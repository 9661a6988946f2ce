package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	c "github.com/d0ngw/visits/common"
)

var redisConfData = `
redis:
  host: 127.0.0.1
  port: 6379
  db: 1
  key_prefix: "visits:"
  pool:
    max_active: 10
    max_idle: 3
    idle_timeout: 1000
`

type redisAppConf struct {
	Redis *RedisConf `yaml:"redis"`
}

func TestRedisConf(t *testing.T) {
	conf := &redisAppConf{}
	require.NoError(t, c.LoadYAML([]byte(redisConfData), conf))
	require.NoError(t, c.Parse(conf))
	assert.Equal(t, "127.0.0.1:6379", conf.Redis.Addr())
	assert.Equal(t, "visits:", conf.Redis.KeyPrefix)

	pool := conf.Redis.newPool()
	defer pool.Close()
	assert.Equal(t, 10, pool.MaxActive)
	assert.Equal(t, 3, pool.MaxIdle)
	assert.Equal(t, time.Second, pool.IdleTimeout)
	assert.True(t, pool.Wait)
}

func TestRedisConfInvalid(t *testing.T) {
	assert.Error(t, (&RedisConf{Port: 6379}).Parse())
	assert.Error(t, (&RedisConf{Host: "localhost"}).Parse())
	assert.Error(t, (&RedisConf{Host: "localhost", Port: 6379, WaitSecond: -1}).Parse())

	conf := &RedisConf{Host: "localhost", Port: 6379}
	assert.NoError(t, conf.Parse())
	assert.Equal(t, DefaultMaxActive, conf.Pool.MaxActive)
}

func TestParamConf(t *testing.T) {
	param := NewParamConf("visits:")
	assert.Equal(t, "visits:counter", param.NewParamKey("counter").Key())
	sub := param.NewWithKeyPrefix("h:")
	assert.Equal(t, "visits:h:", sub.KeyPrefix())
	assert.Equal(t, "visits:", param.KeyPrefix())
}
