package orm

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	c "github.com/d0ngw/visits/common"
)

const defaultMaxIdle = 2

// Pool 数据库连接池
type Pool struct {
	name      string
	driver    string
	db        *sql.DB
	retryable func(err error) bool
}

// PoolFunc create a pool from config
type PoolFunc func(config *DBConfig) (*Pool, error)

// NewDBPool creates the pool for config.Driver
func NewDBPool(config *DBConfig) (*Pool, error) {
	if config == nil {
		return nil, NewDBError(nil, "Not found config")
	}
	switch config.Driver {
	case DriverMySQL, "":
		return NewMySQLDBPool(config)
	case DriverSQLite:
		return NewSQLiteDBPool(config)
	}
	return nil, NewDBErrorf(nil, "unsupported driver %s", config.Driver)
}

func newPool(driver, dsn string, config *DBConfig) (*Pool, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, NewDBError(err, "Can't open connection")
	}
	maxIdle := config.MaxIdle
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdle
	}
	db.SetMaxIdleConns(maxIdle)
	db.SetMaxOpenConns(config.MaxConn)
	if config.MaxTimeSecond > 0 {
		db.SetConnMaxLifetime(time.Duration(config.MaxTimeSecond) * time.Second)
	}
	return &Pool{name: config.Schema, driver: driver, db: db}, nil
}

// Name of the pool
func (p *Pool) Name() string {
	return p.name
}

// Driver of the pool
func (p *Pool) Driver() string {
	return p.driver
}

// DB sql.DB
func (p *Pool) DB() *sql.DB {
	return p.db
}

// NewOp create Op with the pool
func (p *Pool) NewOp() *Op {
	return &Op{pool: p}
}

// Close closes the underlying sql.DB
func (p *Pool) Close() error {
	return p.db.Close()
}

// WaitAvailable pings the store until it answers or wait elapses. A zero wait pings once.
func (p *Pool) WaitAvailable(ctx context.Context, wait time.Duration) error {
	var cancel context.CancelFunc
	if wait > 0 {
		ctx, cancel = context.WithTimeout(ctx, wait)
		defer cancel()
	}

	var lastErr error
	for r := c.BeginRetry(); r.Continue(ctx); {
		if lastErr = p.db.PingContext(ctx); lastErr == nil {
			return nil
		}
		if wait <= 0 {
			break
		}
		c.Warnf("wait %s store %s,attempt:%d,err:%v", p.driver, p.name, r.Attempt(), lastErr)
	}
	if lastErr == nil {
		lastErr = ctx.Err()
	}
	return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, p.driver, p.name, lastErr)
}

// isRetryable reports whether a statement failed before it was applied and can be sent again
func (p *Pool) isRetryable(err error) bool {
	return err != nil && p.retryable != nil && p.retryable(err)
}
