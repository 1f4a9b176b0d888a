package application

import (
	"price-indexer/services/daily"
	"price-indexer/services/health"
	"price-indexer/services/indexer"
	databases "price-indexer/utils/databases"
	"price-indexer/utils/insights"

	"github.com/go-co-op/gocron/v2"
)

type Application interface {
	Run()
	Shutdown()
}

type Impl struct {
	scheduler      gocron.Scheduler
	healthService  health.Service
	dailyService   daily.Service
	indexerService indexer.Service
	db             databases.SqlConnection
	probes         insights.Probes
}
