package orm

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const sqliteBusyTimeoutParam = "_pragma=busy_timeout(10000)"

// NewSQLiteDBPool 构建SQLite数据库连接池,config.DSN是数据库文件路径
func NewSQLiteDBPool(config *DBConfig) (*Pool, error) {
	if config == nil {
		return nil, NewDBError(nil, "Not found config")
	}
	if config.DSN == "" {
		return nil, NewDBError(nil, "Invalid config")
	}
	dsn := config.DSN
	if !strings.Contains(dsn, "busy_timeout") {
		if strings.Contains(dsn, "?") {
			dsn += "&" + sqliteBusyTimeoutParam
		} else {
			dsn += "?" + sqliteBusyTimeoutParam
		}
	}

	conf := *config
	if conf.MaxConn <= 0 {
		// one writer at a time
		conf.MaxConn = 1
	}
	if conf.MaxIdle < conf.MaxConn {
		// an in-memory database lives as long as its connection
		conf.MaxIdle = conf.MaxConn
	}
	if conf.Schema == "" {
		conf.Schema = config.DSN
	}
	pool, err := newPool(DriverSQLite, dsn, &conf)
	if err != nil {
		return nil, err
	}
	pool.retryable = isSQLiteLocked
	return pool, nil
}

func isSQLiteLocked(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code() & 0xff
	return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
}
