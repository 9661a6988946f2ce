// Package app assembles the visits service from its config
package app

import (
	"fmt"
	"net"

	"github.com/d0ngw/visits/api"
	"github.com/d0ngw/visits/cache"
	c "github.com/d0ngw/visits/common"
	"github.com/d0ngw/visits/counter"
	h "github.com/d0ngw/visits/http"
	"github.com/d0ngw/visits/orm"
)

// App is the assembled visits service
type App struct {
	config      *Config
	store       counter.Store
	counter     *counter.Service
	httpService *h.Service
	services    *c.Services
}

// New parses config and builds the store, the counter service and the http service
func New(config *Config) (*App, error) {
	if config == nil {
		return nil, fmt.Errorf("no config")
	}
	if err := config.Parse(); err != nil {
		return nil, err
	}

	var services []c.Service
	store, storeServices, err := newStore(config)
	if err != nil {
		return nil, err
	}
	services = append(services, storeServices...)

	counterService, err := counter.NewService(store)
	if err != nil {
		return nil, err
	}
	controller, err := api.NewCounterController(counterService, "/")
	if err != nil {
		return nil, err
	}

	httpConf := config.HTTP
	if err = httpConf.RegMiddleware(h.AccessLog()); err != nil {
		return nil, err
	}
	if err = httpConf.RegMiddleware(h.Recover()); err != nil {
		return nil, err
	}
	if err = httpConf.RegController(controller); err != nil {
		return nil, err
	}
	httpService := h.NewService(httpConf)
	services = append(services, httpService)

	return &App{
		config:      config,
		store:       store,
		counter:     counterService,
		httpService: httpService,
		services:    c.NewServices(services...),
	}, nil
}

// newStore builds the store of config.Store and the services it depends on
func newStore(config *Config) (counter.Store, []c.Service, error) {
	switch config.Store {
	case counter.KindDB:
		dbService := orm.NewDBService(config.DB, nil)
		store, err := counter.NewDBStore(dbService, config.DB.Driver, config.Table, config.DB.CreateTable)
		if err != nil {
			return nil, nil, err
		}
		return store, []c.Service{dbService, store}, nil
	case counter.KindRedis:
		redisService := cache.NewRedisService(config.Redis)
		store, err := counter.NewRedisStore(redisService.Client, cache.NewParamConf(config.Redis.KeyPrefix))
		if err != nil {
			return nil, nil, err
		}
		return store, []c.Service{redisService}, nil
	case counter.KindMemory:
		return counter.NewMemoryStore(), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown store %s", config.Store)
}

// Start inits and starts the services, the store first and http last.
// Services already running are stopped when one fails.
func (p *App) Start() error {
	c.Infof("Start visits with %s store", p.store.Kind())
	err := p.services.Init()
	if err == nil {
		err = p.services.Start()
	}
	if err != nil {
		if stopErr := p.services.Stop(); stopErr != nil {
			c.Errorf("stop after start failure:%v", stopErr)
		}
		return err
	}
	c.Infof("Visits started at %s", p.httpService.Addr())
	return nil
}

// Stop stops http first and releases the store last
func (p *App) Stop() error {
	return p.services.Stop()
}

// Addr is the http listen address, nil when not running
func (p *App) Addr() net.Addr {
	return p.httpService.Addr()
}

// Counter is the counter service
func (p *App) Counter() *counter.Service {
	return p.counter
}
