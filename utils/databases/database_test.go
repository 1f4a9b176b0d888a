package databases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSqliteInMemory(t *testing.T) {
	db := New(Config{Dialect: DialectSqlite, URL: ":memory:"})
	assert.False(t, db.IsConnected())

	require.NoError(t, db.Run())
	t.Cleanup(db.Shutdown)

	assert.True(t, db.IsConnected())
	assert.NotNil(t, db.GetDB())
}

func TestRunUnknownDialect(t *testing.T) {
	db := New(Config{Dialect: "oracle", URL: "whatever"})
	err := db.Run()
	assert.ErrorIs(t, err, ErrUnknownDialect)
	assert.False(t, db.IsConnected())
}

func TestShutdownWithoutRun(t *testing.T) {
	db := New(Config{Dialect: DialectSqlite, URL: ":memory:"})
	assert.NotPanics(t, db.Shutdown)
}

func TestWithTLS(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{
			name:   "postgres url without tls",
			config: Config{Dialect: DialectPostgres, URL: "postgres://u:p@localhost:5432/prices"},
			want:   "postgres://u:p@localhost:5432/prices?sslmode=disable",
		},
		{
			name:   "postgres url without verification",
			config: Config{Dialect: DialectPostgres, URL: "postgres://u:p@localhost/prices?connect_timeout=5", TLS: true},
			want:   "postgres://u:p@localhost/prices?connect_timeout=5&sslmode=require",
		},
		{
			name:   "postgres key value with verification",
			config: Config{Dialect: DialectPostgres, URL: "host=localhost dbname=prices", TLS: true, TLSVerify: true},
			want:   "host=localhost dbname=prices sslmode=verify-full",
		},
		{
			name:   "postgres explicit sslmode wins",
			config: Config{Dialect: DialectPostgres, URL: "postgres://localhost/prices?sslmode=prefer", TLS: true},
			want:   "postgres://localhost/prices?sslmode=prefer",
		},
		{
			name:   "mysql skip verify",
			config: Config{Dialect: DialectMysql, URL: "u:p@tcp(localhost:3306)/prices?parseTime=true", TLS: true},
			want:   "u:p@tcp(localhost:3306)/prices?parseTime=true&tls=skip-verify",
		},
		{
			name:   "mysql without tls",
			config: Config{Dialect: DialectMysql, URL: "u:p@tcp(localhost:3306)/prices"},
			want:   "u:p@tcp(localhost:3306)/prices",
		},
		{
			name:   "sqlite untouched",
			config: Config{Dialect: DialectSqlite, URL: "prices.db", TLS: true},
			want:   "prices.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, withTLS(tt.config))
		})
	}
}
