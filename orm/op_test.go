package orm

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestTable(t *testing.T, pool *Pool) {
	t.Helper()
	_, err := pool.NewOp().Exec(context.Background(), "CREATE TABLE IF NOT EXISTS tmodel (id INTEGER PRIMARY KEY, name TEXT NOT NULL)")
	require.NoError(t, err)
}

func countRows(t *testing.T, op *Op) (n int64) {
	t.Helper()
	require.NoError(t, op.QueryRow(context.Background(), "SELECT COUNT(*) FROM tmodel", nil, &n))
	return
}

func TestOpExecAndQuery(t *testing.T) {
	pool := newTestSQLitePool(t)
	setupTestTable(t, pool)
	ctx := context.Background()
	op := pool.NewOp()

	result, err := op.Exec(ctx, "INSERT INTO tmodel (id, name) VALUES (?, ?)", 1, "d0ngw")
	require.NoError(t, err)
	affected, err := result.RowsAffected()
	assert.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	var name string
	assert.NoError(t, op.QueryRow(ctx, "SELECT name FROM tmodel WHERE id = ?", []interface{}{1}, &name))
	assert.Equal(t, "d0ngw", name)

	err = op.QueryRow(ctx, "SELECT name FROM tmodel WHERE id = ?", []interface{}{2}, &name)
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = op.Exec(cctx, "INSERT INTO tmodel (id, name) VALUES (?, ?)", 3, "canceled")
	assert.Error(t, err)
	assert.EqualValues(t, 1, countRows(t, op))
}

func TestOpDoInTrans(t *testing.T) {
	pool := newTestSQLitePool(t)
	setupTestTable(t, pool)
	ctx := context.Background()
	op := pool.NewOp()

	rt, err := op.DoInTrans(ctx, func(tx *sql.Tx) (interface{}, error) {
		if _, err := tx.Exec("INSERT INTO tmodel (id, name) VALUES (?, ?)", 1, "a"); err != nil {
			return nil, err
		}
		return "ok", nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "ok", rt)
	assert.EqualValues(t, 1, countRows(t, op))

	_, err = op.DoInTrans(ctx, func(tx *sql.Tx) (interface{}, error) {
		if _, err := tx.Exec("INSERT INTO tmodel (id, name) VALUES (?, ?)", 2, "b"); err != nil {
			return nil, err
		}
		return nil, errors.New("rollback")
	})
	assert.EqualError(t, err, "rollback")
	assert.EqualValues(t, 1, countRows(t, op))
}

func TestOpNestedTrans(t *testing.T) {
	pool := newTestSQLitePool(t)
	setupTestTable(t, pool)
	ctx := context.Background()
	op := pool.NewOp()

	require.NoError(t, op.BeginTx(ctx))
	require.NoError(t, op.BeginTx(ctx))
	_, err := op.Exec(ctx, "INSERT INTO tmodel (id, name) VALUES (?, ?)", 1, "nested")
	require.NoError(t, err)
	// inner commit only decreases the depth
	assert.NoError(t, op.Commit())
	assert.NotNil(t, op.tx)
	assert.NoError(t, op.Rollback())
	assert.Nil(t, op.tx)
	assert.Equal(t, sql.ErrTxDone, op.Commit())

	assert.EqualValues(t, 0, countRows(t, op))
}
