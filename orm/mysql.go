package orm

import (
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQLDSN builds the go-sql-driver dsn of config, config.DSN wins when set
func MySQLDSN(config *DBConfig) string {
	if config.DSN != "" {
		return config.DSN
	}
	charset := config.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	cfg := mysql.NewConfig()
	cfg.User = config.User
	cfg.Passwd = config.Pass
	cfg.Net = "tcp"
	cfg.Addr = config.URL
	cfg.DBName = config.Schema
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": charset}
	return cfg.FormatDSN()
}

// NewMySQLDBPool 构建MySql数据库连接池
func NewMySQLDBPool(config *DBConfig) (*Pool, error) {
	if config == nil {
		return nil, NewDBError(nil, "Not found config")
	}
	if config.DSN == "" && (len(config.URL) == 0 || len(config.Schema) == 0) {
		return nil, NewDBError(nil, "Invalid config")
	}
	return newPool(DriverMySQL, MySQLDSN(config), config)
}
