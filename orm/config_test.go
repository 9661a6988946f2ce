package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	c "github.com/d0ngw/visits/common"
)

func TestDBConfigParse(t *testing.T) {
	conf := &DBConfig{URL: "127.0.0.1:3306", Schema: "visits"}
	assert.NoError(t, conf.Parse())
	assert.Equal(t, DriverMySQL, conf.Driver)

	assert.Error(t, (&DBConfig{Schema: "visits"}).Parse())
	assert.Error(t, (&DBConfig{URL: "127.0.0.1:3306"}).Parse())
	assert.NoError(t, (&DBConfig{DSN: "u:p@tcp(h:3306)/s"}).Parse())

	assert.NoError(t, (&DBConfig{Driver: " SQLite ", DSN: "a.db"}).Parse())
	assert.Error(t, (&DBConfig{Driver: DriverSQLite}).Parse())
	assert.Error(t, (&DBConfig{Driver: "postgres", DSN: "x"}).Parse())
	assert.Error(t, (&DBConfig{Driver: DriverSQLite, DSN: "a.db", WaitSecond: -1}).Parse())
}

type dbConf struct {
	c.AppConfig `yaml:",inline"`
	DB          *DBConfig `yaml:"db"`
}

func TestDBConfigYAML(t *testing.T) {
	conf := &dbConf{}
	err := c.LoadYAMLFromPath("testdata/db.yaml", conf)
	require.NoError(t, err)
	require.NoError(t, c.Parse(conf))
	assert.Equal(t, DriverSQLite, conf.DB.Driver)
	assert.Equal(t, ":memory:", conf.DB.DSN)
	assert.Equal(t, 3, conf.DB.WaitSecond)
	assert.True(t, conf.DB.CreateTable)
}
