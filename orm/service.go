package orm

import (
	"context"
	"fmt"
	"sync"
	"time"

	c "github.com/d0ngw/visits/common"
)

// DBService owns a Pool for the lifetime of the process:
// the pool is opened by Init, checked by Start and closed by Stop.
type DBService struct {
	c.BaseService
	Config   DBConfigurer
	poolFunc PoolFunc
	pool     *Pool
	lock     sync.Mutex
}

// NewDBService build db service
func NewDBService(config DBConfigurer, poolFunc PoolFunc) *DBService {
	if poolFunc == nil {
		poolFunc = NewDBPool
	}
	return &DBService{
		BaseService: c.BaseService{SName: "db"},
		Config:      config,
		poolFunc:    poolFunc,
	}
}

// Init implements Initable.Init()
func (p *DBService) Init() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.poolFunc == nil {
		return fmt.Errorf("no pool func")
	}
	if p.pool != nil {
		return fmt.Errorf("inited")
	}
	if p.Config == nil || p.Config.DBConfig() == nil {
		return fmt.Errorf("no db config")
	}

	pool, err := p.poolFunc(p.Config.DBConfig())
	if err != nil {
		return err
	}
	p.pool = pool
	return nil
}

// Start waits until the store answers, the pool is closed when it never does
func (p *DBService) Start() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.pool == nil {
		return fmt.Errorf("please init db pool")
	}
	wait := time.Duration(p.Config.DBConfig().WaitSecond) * time.Second
	c.Infof("Wait %s %s available in %s", p.pool.driver, p.pool.name, wait)
	if err := p.pool.WaitAvailable(context.Background(), wait); err != nil {
		if closeErr := p.pool.Close(); closeErr != nil {
			c.Warnf("close pool %s err:%v", p.pool.name, closeErr)
		}
		p.pool = nil
		return err
	}
	return nil
}

// Stop closes the pool
func (p *DBService) Stop() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.pool == nil {
		return nil
	}
	err := p.pool.Close()
	p.pool = nil
	return err
}

// Pool returns the pool, nil before Init or after Stop
func (p *DBService) Pool() *Pool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.pool
}

// NewOp implements OpCreator.NewOp()
func (p *DBService) NewOp() (*Op, error) {
	pool := p.Pool()
	if pool == nil {
		return nil, fmt.Errorf("please init db pool")
	}
	return pool.NewOp(), nil
}
