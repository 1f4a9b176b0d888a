package databases

import (
	"fmt"
	"strings"

	"price-indexer/models/constants"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func New(config Config) SqlConnection {
	return &gormConnection{config: config}
}

func (c *gormConnection) GetDB() *gorm.DB {
	return c.db
}

func (c *gormConnection) IsConnected() bool {
	if c.db == nil {
		return false
	}

	dbSQL, errSQL := c.db.DB()
	if errSQL != nil {
		return false
	}

	if errPing := dbSQL.Ping(); errPing != nil {
		return false
	}

	return true
}

func (c *gormConnection) Run() error {
	dialector, err := c.dialector()
	if err != nil {
		return err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	dbSQL, err := db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	// SQLite allows a single writer; an in-memory database also lives on one connection.
	if c.config.Dialect == DialectSqlite {
		dbSQL.SetMaxOpenConns(1)
	}

	if errPing := dbSQL.Ping(); errPing != nil {
		_ = dbSQL.Close()
		return fmt.Errorf("%w: %v", ErrConnection, errPing)
	}

	c.db = db
	log.Info().Str(constants.LogDialect, c.config.Dialect).Msg("Connected to database")
	return nil
}

func (c *gormConnection) Shutdown() {
	log.Info().Str(constants.LogDialect, c.config.Dialect).Msg("Shutdown the connection to database")
	if c.db == nil {
		return
	}

	dbSQL, err := c.db.DB()
	if err != nil {
		log.Error().Err(err).Msgf("Failed to shutdown database connection")
		return
	}

	if errClose := dbSQL.Close(); errClose != nil {
		log.Error().Err(errClose).Msgf("Failed to shutdown database connection")
	}
}

func (c *gormConnection) dialector() (gorm.Dialector, error) {
	switch c.config.Dialect {
	case DialectSqlite, "":
		c.config.Dialect = DialectSqlite
		return sqlite.Open(c.config.URL), nil
	case DialectPostgres:
		return postgres.Open(withTLS(c.config)), nil
	case DialectMysql:
		return mysql.Open(withTLS(c.config)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, c.config.Dialect)
	}
}

// withTLS appends the TLS settings to the DSN unless the DSN already carries them.
func withTLS(config Config) string {
	dsn := config.URL
	switch config.Dialect {
	case DialectPostgres:
		if strings.Contains(dsn, "sslmode=") {
			return dsn
		}
		mode := "disable"
		if config.TLS {
			mode = "require"
			if config.TLSVerify {
				mode = "verify-full"
			}
		}
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			return appendQuery(dsn, "sslmode="+mode)
		}
		return strings.TrimSpace(dsn + " sslmode=" + mode)
	case DialectMysql:
		if !config.TLS || strings.Contains(dsn, "tls=") {
			return dsn
		}
		mode := "skip-verify"
		if config.TLSVerify {
			mode = "true"
		}
		return appendQuery(dsn, "tls="+mode)
	default:
		return dsn
	}
}

func appendQuery(dsn string, param string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + param
	}
	return dsn + "?" + param
}
