package app

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/d0ngw/visits/cache"
	c "github.com/d0ngw/visits/common"
	"github.com/d0ngw/visits/counter"
	h "github.com/d0ngw/visits/http"
	"github.com/d0ngw/visits/orm"
)

// Defaults of the service
const (
	DefaultPort       = 80
	DefaultDBHost     = "edgedb"
	DefaultDBPort     = 3306
	DefaultDBUser     = "root"
	DefaultDBSchema   = "visits"
	DefaultWaitSecond = 120
	DefaultRedisHost  = "redis"
	DefaultRedisPort  = 6379
)

// Config of the visits service
type Config struct {
	c.AppConfig `yaml:",inline"`
	HTTP        *h.Config        `yaml:"http"`
	DB          *orm.DBConfig    `yaml:"db"`
	Redis       *cache.RedisConf `yaml:"redis"`
	// Store is the kind of the counter store: db,redis or memory
	Store string `yaml:"store"`
	// Table of the db store
	Table string `yaml:"table"`
}

// DefaultConfig returns the config used when nothing is configured
func DefaultConfig() *Config {
	return &Config{
		AppConfig: c.AppConfig{LogConfig: &c.LogConfig{Level: string(c.Info)}},
		HTTP:      h.NewConfig(net.JoinHostPort("0.0.0.0", strconv.Itoa(DefaultPort))),
		DB: &orm.DBConfig{
			Driver:      orm.DriverMySQL,
			User:        DefaultDBUser,
			URL:         net.JoinHostPort(DefaultDBHost, strconv.Itoa(DefaultDBPort)),
			Schema:      DefaultDBSchema,
			WaitSecond:  DefaultWaitSecond,
			CreateTable: true,
		},
		Redis: &cache.RedisConf{
			Host:       DefaultRedisHost,
			Port:       DefaultRedisPort,
			KeyPrefix:  "visits:",
			WaitSecond: DefaultWaitSecond,
		},
		Store: counter.KindDB,
		Table: counter.DefaultTable,
	}
}

// LoadConfig loads the yaml file at path over the defaults, an empty path keeps the defaults
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()
	if path == "" {
		return conf, nil
	}
	if err := c.LoadYAMLFromPath(path, conf); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return conf, nil
}

// SetPort makes the http service listen at port on all interfaces
func (p *Config) SetPort(port int) {
	if p.HTTP == nil {
		p.HTTP = h.NewConfig("")
	}
	p.HTTP.Addr = net.JoinHostPort("0.0.0.0", strconv.Itoa(port))
}

// ApplyEnv overrides the config with the VISITS_* environment variables
func (p *Config) ApplyEnv() error {
	c.EnvString("VISITS_STORE", &p.Store)

	var level string
	c.EnvString("VISITS_LOG_LEVEL", &level)
	if level != "" {
		if p.LogConfig == nil {
			p.LogConfig = &c.LogConfig{}
		}
		p.LogConfig.Level = level
	}

	if p.DB == nil {
		p.DB = DefaultConfig().DB
	}
	host, port := splitHostPort(p.DB.URL, DefaultDBHost, strconv.Itoa(DefaultDBPort))
	c.EnvString("VISITS_DB_HOST", &host)
	c.EnvString("VISITS_DB_PORT", &port)
	p.DB.URL = net.JoinHostPort(host, port)
	c.EnvString("VISITS_DB_DRIVER", &p.DB.Driver)
	c.EnvString("VISITS_DB_USER", &p.DB.User)
	c.EnvString("VISITS_DB_PASS", &p.DB.Pass)
	c.EnvString("VISITS_DB_SCHEMA", &p.DB.Schema)
	c.EnvString("VISITS_DB_DSN", &p.DB.DSN)
	if err := c.EnvInt("VISITS_DB_WAIT_SECONDS", &p.DB.WaitSecond); err != nil {
		return err
	}

	var redisAddr string
	c.EnvString("VISITS_REDIS_ADDR", &redisAddr)
	if redisAddr != "" {
		if p.Redis == nil {
			p.Redis = DefaultConfig().Redis
		}
		host, port := splitHostPort(redisAddr, DefaultRedisHost, strconv.Itoa(DefaultRedisPort))
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid VISITS_REDIS_ADDR=%q: %w", redisAddr, err)
		}
		p.Redis.Host, p.Redis.Port = host, portNum
	}
	return nil
}

func splitHostPort(addr, defaultHost, defaultPort string) (host, port string) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		host, port = addr, ""
	}
	if host == "" {
		host = defaultHost
	}
	if port == "" {
		port = defaultPort
	}
	return
}

// Parse implements Configurer, only the config of the selected store is checked
func (p *Config) Parse() error {
	if err := p.AppConfig.Parse(); err != nil {
		return err
	}
	if p.HTTP == nil {
		p.HTTP = h.NewConfig("")
	}
	if err := p.HTTP.Parse(); err != nil {
		return err
	}

	p.Store = strings.ToLower(strings.TrimSpace(p.Store))
	switch p.Store {
	case "":
		p.Store = counter.KindDB
		fallthrough
	case counter.KindDB:
		if p.DB == nil {
			return fmt.Errorf("no db config")
		}
		return p.DB.Parse()
	case counter.KindRedis:
		if p.Redis == nil {
			return fmt.Errorf("no redis config")
		}
		return p.Redis.Parse()
	case counter.KindMemory:
		return nil
	}
	return fmt.Errorf("unknown store %s", p.Store)
}
