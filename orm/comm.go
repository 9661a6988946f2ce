package orm

import (
	"fmt"

	c "github.com/d0ngw/visits/common"
)

// ErrUnavailable is returned when the database can not be reached within the wait budget
var ErrUnavailable = c.ErrUnavailable

// DBError 数据库操作错误
type DBError struct {
	Msg string
	Err error
}

func (e *DBError) Error() string {
	return fmt.Sprintf("DBError msg:%s,err:%v", e.Msg, e.Err)
}

// Unwrap returns the cause
func (e *DBError) Unwrap() error {
	return e.Err
}

// NewDBError 构建数据库操作错误
func NewDBError(err error, msg string) *DBError {
	return &DBError{Msg: msg, Err: err}
}

// NewDBErrorf 使用fmt.Sprintf构建
func NewDBErrorf(err error, msgFormat string, args ...interface{}) *DBError {
	return &DBError{Msg: fmt.Sprintf(msgFormat, args...), Err: err}
}
