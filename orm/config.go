package orm

import (
	"fmt"
	"strings"

	c "github.com/d0ngw/visits/common"
)

// Supported drivers
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

//DBConfig 数据库配置
type DBConfig struct {
	Driver        string `yaml:"driver"`
	User          string `yaml:"user"`
	Pass          string `yaml:"pass"`
	URL           string `yaml:"url"`
	Schema        string `yaml:"schema"`
	DSN           string `yaml:"dsn"`
	MaxConn       int    `yaml:"maxConn"`
	MaxIdle       int    `yaml:"maxIdle"`
	MaxTimeSecond int    `yaml:"maxTimeSecond"`
	Charset       string `yaml:"charset"`
	// WaitSecond is how long Start waits for the store to answer a ping
	WaitSecond  int  `yaml:"waitSecond"`
	CreateTable bool `yaml:"createTable"`
}

// Parse implements DBConfigurer
func (p *DBConfig) Parse() error {
	p.Driver = strings.ToLower(strings.TrimSpace(p.Driver))
	if p.Driver == "" {
		p.Driver = DriverMySQL
	}
	switch p.Driver {
	case DriverMySQL:
		if p.DSN != "" {
			break
		}
		if p.URL == "" {
			return fmt.Errorf("need url")
		}
		if p.Schema == "" {
			return fmt.Errorf("need schema")
		}
	case DriverSQLite:
		if p.DSN == "" {
			return fmt.Errorf("need dsn")
		}
	default:
		return fmt.Errorf("unsupported driver %s", p.Driver)
	}
	if p.WaitSecond < 0 {
		return fmt.Errorf("invalid waitSecond %d", p.WaitSecond)
	}
	return nil
}

// DBConfig implements DBConfigurer
func (p *DBConfig) DBConfig() *DBConfig {
	return p
}

// DBConfigurer DB配置器
type DBConfigurer interface {
	c.Configurer
	DBConfig() *DBConfig
}
