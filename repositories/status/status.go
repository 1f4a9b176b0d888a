package status

import (
	"errors"
	"time"

	"price-indexer/models/entities"
	"price-indexer/utils/databases"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// New keeps the days known as indexed in memory for ttl. A zero ttl disables the cache.
func New(db databases.SqlConnection, ttl time.Duration) *Impl {
	repo := &Impl{db: db}
	if ttl > 0 {
		repo.cache = cache.New(ttl, 2*ttl)
	}
	return repo
}

func (repo *Impl) Migrate() error {
	return repo.db.GetDB().AutoMigrate(&entities.DayStatus{})
}

func (repo *Impl) IsIndexed(day string) (bool, error) {
	if repo.cache != nil {
		if _, found := repo.cache.Get(day); found {
			return true, nil
		}
	}

	var existing entities.DayStatus
	result := repo.db.GetDB().Where(map[string]any{"date": day}).Take(&existing)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}

	if existing.Status && repo.cache != nil {
		repo.cache.SetDefault(day, struct{}{})
	}

	return existing.Status, nil
}

func (repo *Impl) Save(day string, status bool) error {
	err := repo.db.GetDB().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(&entities.DayStatus{Date: day, Status: status}).Error
	if err != nil {
		return err
	}

	if repo.cache != nil {
		if status {
			repo.cache.SetDefault(day, struct{}{})
		} else {
			repo.cache.Delete(day)
		}
	}

	return nil
}
