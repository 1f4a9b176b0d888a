package status

import (
	"price-indexer/utils/databases"

	"github.com/patrickmn/go-cache"
)

type Repository interface {
	Migrate() error
	IsIndexed(day string) (bool, error)
	Save(day string, status bool) error
}

type Impl struct {
	db    databases.SqlConnection
	cache *cache.Cache
}
