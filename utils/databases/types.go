package databases

import (
	"errors"

	"gorm.io/gorm"
)

const (
	DialectSqlite   = "sqlite"
	DialectPostgres = "postgres"
	DialectMysql    = "mysql"
)

var (
	ErrConnection     = errors.New("database connection failed")
	ErrUnknownDialect = errors.New("unknown database dialect")
)

type SqlConnection interface {
	GetDB() *gorm.DB
	IsConnected() bool
	Run() error
	Shutdown()
}

type Config struct {
	Dialect   string
	URL       string
	TLS       bool
	TLSVerify bool
}

type gormConnection struct {
	config Config
	db     *gorm.DB
}
