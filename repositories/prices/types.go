package prices

import (
	"errors"

	"price-indexer/models/entities"
	"price-indexer/utils/databases"

	"gorm.io/gorm"
)

const batchSize = 200

var ErrUnknownSymbol = errors.New("symbol has no table")

type Kind int

const (
	KindCoin Kind = iota
	KindFiat
)

type Repository interface {
	Migrate() error
	Transaction(fn func(tx *gorm.DB) error) error
	InsertCoinSamples(tx *gorm.DB, symbol string, day string, samples []entities.CoinPrice) (int, error)
	UpsertFiatQuote(tx *gorm.DB, symbol string, day string, quote entities.FiatPrice) error
	CountForDay(symbol string, day string) (int64, error)
	FetchCoinForDay(symbol string, day string) ([]entities.CoinPrice, error)
	FetchFiatForDay(symbol string, day string) (entities.FiatPrice, error)
}

type table struct {
	name string
	kind Kind
}

type Impl struct {
	db     databases.SqlConnection
	tables map[string]table
}
