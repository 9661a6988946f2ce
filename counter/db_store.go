package counter

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	c "github.com/d0ngw/visits/common"
	"github.com/d0ngw/visits/orm"
)

// DefaultTable is the default counter table name
const DefaultTable = "counter"

var tableNameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// dialect holds the statements of one driver
type dialect struct {
	createTable string
	// get always returns exactly one row
	get string
	// incr is the single upsert statement
	incr string
	// incrReturning is true when incr returns the visits as a row,
	// otherwise they come back as the statement's insert id
	incrReturning bool
}

func newDialect(driver, table string) (*dialect, error) {
	get := fmt.Sprintf("SELECT COALESCE((SELECT visits FROM %s WHERE name = ?), 0)", table)
	switch driver {
	case orm.DriverMySQL:
		return &dialect{
			createTable: fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (name VARCHAR(255) NOT NULL PRIMARY KEY, visits BIGINT NOT NULL) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4", table),
			get:         get,
			// LAST_INSERT_ID(expr) makes expr the insert id reported for the statement
			incr: fmt.Sprintf("INSERT INTO %s (name, visits) VALUES (?, LAST_INSERT_ID(1)) ON DUPLICATE KEY UPDATE visits = LAST_INSERT_ID(visits + 1)", table),
		}, nil
	case orm.DriverSQLite:
		return &dialect{
			createTable:   fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (name TEXT NOT NULL PRIMARY KEY, visits INTEGER NOT NULL)", table),
			get:           get,
			incr:          fmt.Sprintf("INSERT INTO %s (name, visits) VALUES (?, 1) ON CONFLICT (name) DO UPDATE SET visits = visits + 1 RETURNING visits", table),
			incrReturning: true,
		}, nil
	}
	return nil, fmt.Errorf("unsupported driver %s", driver)
}

// DBStore keeps the counters in a sql table
type DBStore struct {
	c.BaseService
	ops         orm.OpCreator
	table       string
	createTable bool
	dialect     *dialect
}

// NewDBStore create DBStore on table, createTable makes Start create the table when missing
func NewDBStore(ops orm.OpCreator, driver, table string, createTable bool) (*DBStore, error) {
	if c.HasNil(ops) {
		return nil, fmt.Errorf("no op creator")
	}
	if table == "" {
		table = DefaultTable
	}
	if !tableNameRegexp.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	d, err := newDialect(driver, table)
	if err != nil {
		return nil, err
	}
	return &DBStore{
		BaseService: c.BaseService{SName: "counter." + KindDB, Order: 10},
		ops:         ops,
		table:       table,
		createTable: createTable,
		dialect:     d,
	}, nil
}

// Start implements Service.Start, creates the table when asked to
func (p *DBStore) Start() error {
	if !p.createTable {
		return nil
	}
	return p.CreateTable(context.Background())
}

// CreateTable creates the counter table if it does not exist
func (p *DBStore) CreateTable(ctx context.Context) error {
	op, err := p.ops.NewOp()
	if err != nil {
		return err
	}
	_, err = op.DoInTrans(ctx, func(tx *sql.Tx) (interface{}, error) {
		return tx.ExecContext(ctx, p.dialect.createTable)
	})
	if err != nil {
		return fmt.Errorf("create table %s: %w", p.table, err)
	}
	c.Infof("counter table %s ready", p.table)
	return nil
}

// Kind implements Store.Kind
func (p *DBStore) Kind() string {
	return KindDB
}

// Get implements Store.Get
func (p *DBStore) Get(ctx context.Context, name string) (visits int64, err error) {
	op, err := p.ops.NewOp()
	if err != nil {
		return 0, err
	}
	err = op.QueryRow(ctx, p.dialect.get, []interface{}{name}, &visits)
	return
}

// Incr implements Store.Incr
func (p *DBStore) Incr(ctx context.Context, name string) (visits int64, err error) {
	op, err := p.ops.NewOp()
	if err != nil {
		return 0, err
	}
	if p.dialect.incrReturning {
		err = op.QueryRow(ctx, p.dialect.incr, []interface{}{name}, &visits)
		return
	}
	result, err := op.Exec(ctx, p.dialect.incr, name)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}
