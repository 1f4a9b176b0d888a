package prices

import (
	"fmt"
	"strings"

	"price-indexer/models/constants"
	"price-indexer/models/entities"
	"price-indexer/utils/databases"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// New maps every symbol to its own table. The mapping is owned by the repository,
// two repositories never share it.
func New(db databases.SqlConnection, coins []string, fiats []string) *Impl {
	tables := make(map[string]table, len(coins)+len(fiats))
	for _, symbol := range coins {
		tables[symbol] = table{name: TableName(symbol), kind: KindCoin}
	}
	for _, symbol := range fiats {
		tables[symbol] = table{name: TableName(symbol), kind: KindFiat}
	}

	return &Impl{db: db, tables: tables}
}

func TableName(symbol string) string {
	return strings.ToLower(symbol)
}

func (repo *Impl) Migrate() error {
	for symbol, t := range repo.tables {
		log.Debug().Str(constants.LogSymbol, symbol).Str(constants.LogTable, t.name).Msg("Syncing table")

		if err := repo.db.GetDB().Table(t.name).AutoMigrate(t.model()); err != nil {
			return fmt.Errorf("failed to migrate table %s: %w", t.name, err)
		}

		index := fmt.Sprintf("idx_%s_day", t.name)
		if repo.db.GetDB().Migrator().HasIndex(t.name, index) {
			continue
		}

		columns := make([]any, 0, len(t.conflictColumns()))
		for _, c := range t.conflictColumns() {
			columns = append(columns, c)
		}
		err := repo.db.GetDB().Exec("CREATE UNIQUE INDEX ? ON ? ?",
			clause.Table{Name: index}, clause.Table{Name: t.name}, columns).Error
		if err != nil {
			return fmt.Errorf("failed to create index %s: %w", index, err)
		}
	}

	return nil
}

func (repo *Impl) Transaction(fn func(tx *gorm.DB) error) error {
	return repo.db.GetDB().Transaction(fn)
}

// InsertCoinSamples writes the samples of one day and returns the number of distinct rows.
// Samples already stored for the same day and timestamp are overwritten, so a retried day
// never duplicates rows.
func (repo *Impl) InsertCoinSamples(tx *gorm.DB, symbol string, day string, samples []entities.CoinPrice) (int, error) {
	t, err := repo.lookup(symbol, KindCoin)
	if err != nil {
		return 0, err
	}
	if len(samples) == 0 {
		return 0, nil
	}

	// One row per timestamp, the last sample wins like it would on the upsert.
	rows := make([]entities.CoinPrice, 0, len(samples))
	positions := make(map[int64]int, len(samples))
	for _, sample := range samples {
		row := entities.CoinPrice{
			Timestamp: sample.Timestamp,
			UTCDate:   day,
			Price:     sample.Price,
			Volume24h: sample.Volume24h,
		}
		if i, found := positions[sample.Timestamp]; found {
			rows[i] = row
			continue
		}
		positions[sample.Timestamp] = len(rows)
		rows = append(rows, row)
	}

	err = tx.Table(t.name).
		Clauses(clause.OnConflict{
			Columns:   t.conflictColumns(),
			DoUpdates: clause.AssignmentColumns([]string{"price", "volume_24h"}),
		}).
		CreateInBatches(&rows, batchSize).Error
	if err != nil {
		return 0, fmt.Errorf("failed to insert %s samples: %w", symbol, err)
	}

	return len(rows), nil
}

func (repo *Impl) UpsertFiatQuote(tx *gorm.DB, symbol string, day string, quote entities.FiatPrice) error {
	t, err := repo.lookup(symbol, KindFiat)
	if err != nil {
		return err
	}

	row := entities.FiatPrice{
		Timestamp: quote.Timestamp,
		UTCDate:   day,
		PriceUSD:  quote.PriceUSD,
		Volume24h: quote.Volume24h,
	}

	err = tx.Table(t.name).
		Clauses(clause.OnConflict{
			Columns:   t.conflictColumns(),
			DoUpdates: clause.AssignmentColumns([]string{"timestamp", "price_usd", "volume_24h"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert %s quote: %w", symbol, err)
	}

	return nil
}

func (repo *Impl) CountForDay(symbol string, day string) (int64, error) {
	t, found := repo.tables[symbol]
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	count := new(int64)
	err := repo.db.GetDB().Table(t.name).Where("utc_date = ?", day).Count(count).Error

	return *count, err
}

func (repo *Impl) FetchCoinForDay(symbol string, day string) ([]entities.CoinPrice, error) {
	t, err := repo.lookup(symbol, KindCoin)
	if err != nil {
		return nil, err
	}

	var rows []entities.CoinPrice
	result := repo.db.GetDB().Table(t.name).Where("utc_date = ?", day).Order("timestamp").Find(&rows)

	return rows, result.Error
}

func (repo *Impl) FetchFiatForDay(symbol string, day string) (entities.FiatPrice, error) {
	var existing entities.FiatPrice
	t, err := repo.lookup(symbol, KindFiat)
	if err != nil {
		return existing, err
	}

	result := repo.db.GetDB().Table(t.name).Where("utc_date = ?", day).Take(&existing)

	return existing, result.Error
}

func (repo *Impl) lookup(symbol string, kind Kind) (table, error) {
	t, found := repo.tables[symbol]
	if !found || t.kind != kind {
		return table{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}
	return t, nil
}

func (t table) model() any {
	if t.kind == KindFiat {
		return &entities.FiatPrice{}
	}
	return &entities.CoinPrice{}
}

func (t table) conflictColumns() []clause.Column {
	if t.kind == KindFiat {
		return []clause.Column{{Name: "utc_date"}}
	}
	return []clause.Column{{Name: "utc_date"}, {Name: "timestamp"}}
}
