package orm

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	c "github.com/d0ngw/visits/common"
)

func TestDBService(t *testing.T) {
	conf := &DBConfig{Driver: DriverSQLite, DSN: filepath.Join(t.TempDir(), "svc.db"), WaitSecond: 1}
	require.NoError(t, conf.Parse())

	svc := NewDBService(conf, nil)
	_, err := svc.NewOp()
	assert.Error(t, err)

	services := c.NewServices(svc)
	require.NoError(t, services.Init())
	require.NoError(t, services.Start())
	assert.Equal(t, c.RUNNING, svc.State())

	op, err := svc.NewOp()
	require.NoError(t, err)
	assert.Equal(t, conf.DSN, op.PoolName())

	require.NoError(t, services.Stop())
	assert.Nil(t, svc.Pool())
	assert.Equal(t, c.TERMINATED, svc.State())
}

func TestDBServiceUnavailable(t *testing.T) {
	conf := &DBConfig{Driver: DriverMySQL, URL: "127.0.0.1:1", Schema: "visits"}
	require.NoError(t, conf.Parse())

	svc := NewDBService(conf, NewMySQLDBPool)
	require.NoError(t, c.ServiceInit(svc))
	err := c.ServiceStart(svc)
	assert.True(t, errors.Is(err, ErrUnavailable), "%v", err)
	assert.Equal(t, c.FAILED, svc.State())
	assert.Nil(t, svc.Pool())
}

func TestDBServiceNoConfig(t *testing.T) {
	svc := NewDBService(nil, nil)
	assert.Error(t, svc.Init())
}
