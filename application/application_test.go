package application

import (
	"testing"

	"price-indexer/models/constants"
	databases "price-indexer/utils/databases"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackedConnection struct {
	databases.SqlConnection
	shutdowns int
}

func (c *trackedConnection) Shutdown() {
	c.shutdowns++
	c.SqlConnection.Shutdown()
}

func setConfig(t *testing.T, values map[string]any) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	for key, value := range constants.GetDefaultConfigValues() {
		viper.SetDefault(key, value)
	}
	for key, value := range values {
		viper.Set(key, value)
	}
}

func TestNewClosesConnectionWhenMigrationFails(t *testing.T) {
	setConfig(t, map[string]any{
		constants.CoinSymbols:  "BTC",
		constants.FiatSymbols:  "",
		constants.DatabaseSync: true,
	})

	db := &trackedConnection{SqlConnection: databases.New(databases.Config{Dialect: databases.DialectSqlite, URL: ":memory:"})}
	require.NoError(t, db.Run())
	// A view named like the coin table makes the table creation fail.
	require.NoError(t, db.GetDB().Exec("CREATE VIEW btc AS SELECT 1 AS price").Error)

	app, err := newWithConnection(db)
	assert.Error(t, err)
	assert.Nil(t, app)
	assert.Equal(t, 1, db.shutdowns)
	assert.False(t, db.IsConnected())
}

func TestNewClosesConnectionOnInvalidPolicy(t *testing.T) {
	setConfig(t, map[string]any{constants.CoinFailurePolicy: "sometimes"})

	db := &trackedConnection{SqlConnection: databases.New(databases.Config{Dialect: databases.DialectSqlite, URL: ":memory:"})}
	_, err := newWithConnection(db)
	assert.Error(t, err)
	assert.Equal(t, 1, db.shutdowns)
}

func TestNewWiresServices(t *testing.T) {
	setConfig(t, map[string]any{
		constants.DatabaseURL: ":memory:",
		constants.ProbePort:   0,
	})

	app, err := New()
	require.NoError(t, err)
	t.Cleanup(app.Shutdown)

	assert.True(t, app.db.IsConnected())
	assert.Len(t, app.scheduler.Jobs(), 2)
}
