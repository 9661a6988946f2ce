package cache

import (
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	c "github.com/d0ngw/visits/common"
)

// Redis连接池的默认参数,单位毫秒
const (
	DefaultConnectTimout = 5 * 1000
	DefaultReadTimeout   = 5 * 1000
	DefaultWriteTimeout  = 5 * 1000
	DefaultMaxActive     = 100
	DefaultMaxIdle       = 2
	DefaultIdleTimeout   = 60 * 1000
)

// RedisConfigurer Redis配置器
type RedisConfigurer interface {
	c.Configurer
	RedisConfig() *RedisConf
}

// RedisPoolConf  Redis连接池配置
type RedisPoolConf struct {
	ConnectTimeout int `yaml:"connect_timeout"` //连接超时时间,单位毫秒
	ReadTimeout    int `yaml:"read_timeout"`    //读取超时,单位毫秒
	WriteTimeout   int `yaml:"write_timeout"`   //写取超时,单位毫秒
	MaxIdle        int `yaml:"max_idle"`        //最大空闲连接
	MaxActive      int `yaml:"max_active"`      //最大活跃连接,0表示不限制
	IdleTimeout    int `yaml:"idle_timeout"`    //空闲连接的超时时间,单位毫秒
}

func defaultPoolConf() *RedisPoolConf {
	return &RedisPoolConf{
		ConnectTimeout: DefaultConnectTimout,
		ReadTimeout:    DefaultReadTimeout,
		WriteTimeout:   DefaultWriteTimeout,
		MaxActive:      DefaultMaxActive,
		MaxIdle:        DefaultMaxIdle,
		IdleTimeout:    DefaultIdleTimeout,
	}
}

// RedisConf redis config
type RedisConf struct {
	Host       string         `yaml:"host"`        //Redis主机地址
	Port       int            `yaml:"port"`        //Redis的端口
	Auth       string         `yaml:"auth"`        //Redis认证密码
	DB         int            `yaml:"db"`          //Redis的db
	KeyPrefix  string         `yaml:"key_prefix"`  //key的前缀
	WaitSecond int            `yaml:"wait_second"` //启动时等待Redis可用的时间
	Pool       *RedisPoolConf `yaml:"pool"`        //连接池配置
}

// Parse implements Configurer interface
func (p *RedisConf) Parse() error {
	if c.IsEmpty(p.Host) {
		return fmt.Errorf("invalid redis conf,host must not be empty")
	}
	if p.Port <= 0 {
		return fmt.Errorf("invalid redis conf,port %d", p.Port)
	}
	if p.WaitSecond < 0 {
		return fmt.Errorf("invalid redis conf,wait_second %d", p.WaitSecond)
	}
	if p.Pool == nil {
		p.Pool = defaultPoolConf()
	}
	return nil
}

// RedisConfig implements RedisConfigurer
func (p *RedisConf) RedisConfig() *RedisConf {
	return p
}

// Addr host:port
func (p *RedisConf) Addr() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}

// newPool 使用指定的参数创建连接池
func (p *RedisConf) newPool() *redis.Pool {
	poolConf := p.Pool
	if poolConf == nil {
		poolConf = defaultPoolConf()
	}
	options := []redis.DialOption{
		redis.DialConnectTimeout(time.Duration(poolConf.ConnectTimeout) * time.Millisecond),
		redis.DialReadTimeout(time.Duration(poolConf.ReadTimeout) * time.Millisecond),
		redis.DialWriteTimeout(time.Duration(poolConf.WriteTimeout) * time.Millisecond),
		redis.DialDatabase(p.DB),
	}
	if p.Auth != "" {
		options = append(options, redis.DialPassword(p.Auth))
	}

	var addr = p.Addr()
	return &redis.Pool{
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", addr, options...)
		},
		MaxActive:   poolConf.MaxActive,
		MaxIdle:     poolConf.MaxIdle,
		IdleTimeout: time.Duration(poolConf.IdleTimeout) * time.Millisecond,
		Wait:        true,
	}
}
