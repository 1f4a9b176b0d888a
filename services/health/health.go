package health

import (
	"price-indexer/models/constants"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Service interface{}

type Impl struct {
	isConnected func() bool
}

func New(scheduler gocron.Scheduler, isConnected func() bool) (*Impl, error) {
	service := Impl{isConnected: isConnected}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.HealthCronTab), true),
		gocron.NewTask(func() { service.echo() }),
		gocron.WithName("Check indexer running"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return &service, nil
}

func (service *Impl) echo() bool {
	if !service.isConnected() {
		log.Warn().Msg("Indexer is running but the database is unreachable")
		return false
	}
	log.Info().Msg("Indexer is running")
	return true
}
