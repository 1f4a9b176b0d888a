package daily

import (
	"context"

	"price-indexer/models/constants"
	"price-indexer/utils/dates"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler, indexer Indexer, clock clockwork.Clock) (*Impl, error) {
	service := &Impl{
		indexer: indexer,
		clock:   clock,
		samples: viper.GetInt(constants.SamplesPerRequest),
	}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.IndexerCronTab), true),
		gocron.NewTask(func() { service.runScheduled() }),
		gocron.WithName(jobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

// RunYesterday indexes the last complete UTC day.
func (service *Impl) RunYesterday(ctx context.Context) error {
	yesterday := service.clock.Now().UTC().AddDate(0, 0, -1)
	log.Info().Str(constants.LogDay, dates.Normalize(yesterday, false)).Msg("Indexing yesterday")

	return service.indexer.Start(ctx, yesterday, yesterday, service.samples)
}

func (service *Impl) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := service.RunYesterday(ctx); err != nil {
		log.Error().Err(err).Str(constants.LogJob, jobName).Msg("Scheduled indexing interrupted")
	}
}
