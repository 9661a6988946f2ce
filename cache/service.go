package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	c "github.com/d0ngw/visits/common"
)

// RedisService owns a RedisClient for the lifetime of the process
type RedisService struct {
	c.BaseService
	Config RedisConfigurer
	client *RedisClient
	lock   sync.Mutex
}

// NewRedisService create redis service
func NewRedisService(config RedisConfigurer) *RedisService {
	return &RedisService{
		BaseService: c.BaseService{SName: "redis"},
		Config:      config,
	}
}

// Init implements Initable.Init()
func (p *RedisService) Init() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.client != nil {
		return fmt.Errorf("inited")
	}
	if p.Config == nil || p.Config.RedisConfig() == nil {
		return fmt.Errorf("no redis config")
	}
	client, err := NewRedisClient(p.Config.RedisConfig())
	if err != nil {
		return err
	}
	p.client = client
	return nil
}

// Start waits until redis answers
func (p *RedisService) Start() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.client == nil {
		return fmt.Errorf("please init redis client")
	}
	wait := time.Duration(p.Config.RedisConfig().WaitSecond) * time.Second
	c.Infof("Wait redis %s available in %s", p.client.Addr(), wait)
	if err := p.client.WaitAvailable(context.Background(), wait); err != nil {
		p.client.Close()
		p.client = nil
		return err
	}
	return nil
}

// Stop closes the pool
func (p *RedisService) Stop() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}

// Client returns the client, nil before Init or after Stop
func (p *RedisService) Client() *RedisClient {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.client
}
