package orm

import (
	"context"
	"database/sql"

	c "github.com/d0ngw/visits/common"
)

// OpTxFunc 在事务中处理的函数
type OpTxFunc func(tx *sql.Tx) (interface{}, error)

// OpCreator Op
type OpCreator interface {
	//NewOp create a new Op
	NewOp() (*Op, error)
}

// executor is implemented by both sql.DB and sql.Tx
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Op 数据库操作接口,与sql.DB对应,封装了事务等.
// An Op is not safe for concurrent use, create one per request.
type Op struct {
	pool         *Pool   //数据连接
	tx           *sql.Tx //事务
	txDone       bool    //事务是否结束
	rollbackOnly bool    //是否只回滚
	transDepth   int     //调用的深度
}

// DB sql.DB
func (p *Op) DB() *sql.DB {
	return p.pool.db
}

// Pool pool
func (p *Op) Pool() *Pool {
	return p.pool
}

// PoolName name of pool
func (p *Op) PoolName() string {
	return p.pool.name
}

func (p *Op) executor() executor {
	if p.tx != nil {
		return p.tx
	}
	return p.pool.db
}

// retryable statements run outside of a transaction only,
// a busy error inside a transaction is left to the caller
func (p *Op) canRetry(err error) bool {
	return p.tx == nil && p.pool.isRetryable(err)
}

// Exec executes query as a single statement
func (p *Op) Exec(ctx context.Context, query string, args ...interface{}) (result sql.Result, err error) {
	for r := c.BeginRetry(); r.Continue(ctx); {
		result, err = p.executor().ExecContext(ctx, query, args...)
		if !p.canRetry(err) {
			return
		}
		c.Debugf("retry busy statement,attempt:%d,err:%v", r.Attempt(), err)
	}
	if err == nil {
		err = ctx.Err()
	}
	return
}

// QueryRow executes a query returning at most one row and scans it into dest.
// sql.ErrNoRows is returned as is.
func (p *Op) QueryRow(ctx context.Context, query string, args []interface{}, dest ...interface{}) (err error) {
	for r := c.BeginRetry(); r.Continue(ctx); {
		err = p.executor().QueryRowContext(ctx, query, args...).Scan(dest...)
		if !p.canRetry(err) {
			return
		}
		c.Debugf("retry busy query,attempt:%d,err:%v", r.Attempt(), err)
	}
	if err == nil {
		err = ctx.Err()
	}
	return
}

func (p *Op) close() {
	p.tx = nil
	p.rollbackOnly = false
	p.transDepth = 0
}

//检查事务的状态
func (p *Op) checkTransStatus() error {
	if p.txDone {
		return sql.ErrTxDone
	}
	if p.tx == nil {
		return NewDBError(nil, "Not begin transaction")
	}
	return nil
}

func (p *Op) incrTransDepth() {
	p.transDepth = p.transDepth + 1
}

func (p *Op) decrTransDepth() error {
	p.transDepth = p.transDepth - 1
	if p.transDepth < 0 {
		return NewDBError(nil, "Too many invoke commit or rollback")
	}
	return nil
}

//结束事务
func (p *Op) finishTrans() error {
	if err := p.checkTransStatus(); err != nil {
		return err
	}
	if err := p.decrTransDepth(); err != nil {
		return err
	}
	if p.transDepth > 0 {
		return nil
	}
	defer p.close()
	p.txDone = true
	if p.rollbackOnly {
		return p.tx.Rollback()
	}
	return p.tx.Commit()
}

// BeginTx 开始事务,支持简单的嵌套调用,如果已经开始了事务,则直接返回成功
func (p *Op) BeginTx(ctx context.Context) error {
	if p.tx != nil {
		p.incrTransDepth()
		return nil //事务已经开启
	}
	tx, err := p.DB().BeginTx(ctx, nil)
	if err != nil {
		return NewDBError(err, "Begin transaction")
	}
	p.incrTransDepth()
	p.tx = tx
	p.txDone = false
	return nil
}

// Commit 提交事务
func (p *Op) Commit() error {
	return p.finishTrans()
}

// Rollback 回滚事务
func (p *Op) Rollback() error {
	p.SetRollbackOnly(true)
	return p.finishTrans()
}

// SetRollbackOnly 设置只回滚
func (p *Op) SetRollbackOnly(rollback bool) {
	p.rollbackOnly = rollback
}

// IsRollbackOnly 是否只回滚
func (p *Op) IsRollbackOnly() bool {
	return p.rollbackOnly
}

// DoInTrans 在事务中执行,operation返回错误时回滚
func (p *Op) DoInTrans(ctx context.Context, operation OpTxFunc) (rt interface{}, err error) {
	if err := p.BeginTx(ctx); err != nil {
		return nil, err
	}
	var succ = false
	//结束事务
	defer func() {
		if !succ {
			p.SetRollbackOnly(true)
		}
		transErr := p.finishTrans()
		if transErr != nil {
			c.Errorf("Finish transaction err:%v", transErr)
			rt = nil
			if err == nil {
				err = transErr
			}
		}
	}()
	rt, err = operation(p.tx)
	if err != nil {
		c.Errorf("Operation fail:%v", err)
	} else {
		succ = true
	}
	return
}
