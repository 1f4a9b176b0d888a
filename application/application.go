package application

import (
	"context"
	"time"

	"price-indexer/models/constants"
	"price-indexer/services/daily"
	"price-indexer/services/health"
	"price-indexer/services/indexer"
	"price-indexer/services/priceapi"
	"price-indexer/services/telegram"
	databases "price-indexer/utils/databases"
	"price-indexer/utils/insights"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New() (*Impl, error) {
	db := databases.New(databases.Config{
		Dialect:   viper.GetString(constants.DatabaseDialect),
		URL:       viper.GetString(constants.DatabaseURL),
		TLS:       viper.GetBool(constants.DatabaseTLS),
		TLSVerify: viper.GetBool(constants.DatabaseTLSVerify),
	})

	return newWithConnection(db)
}

// newWithConnection owns db from now on and closes it on any failure.
func newWithConnection(db databases.SqlConnection) (*Impl, error) {
	api := priceapi.New(priceapi.Config{
		CoinURL:   viper.GetString(constants.CoinAPIURL),
		FiatURL:   viper.GetString(constants.FiatAPIURL),
		AccessKey: viper.GetString(constants.AccessKey),
		Timeout:   viper.GetDuration(constants.HTTPTimeout),
	})

	policy, errPolicy := indexer.ParsePolicy(viper.GetString(constants.CoinFailurePolicy))
	if errPolicy != nil {
		db.Shutdown()
		return nil, errPolicy
	}

	indexerService, errIndexer := indexer.New(db, api, indexer.Options{
		CoinSymbols:    constants.ParseSymbols(viper.GetString(constants.CoinSymbols)),
		FiatSymbols:    constants.ParseSymbols(viper.GetString(constants.FiatSymbols)),
		SyncSchema:     viper.GetBool(constants.DatabaseSync),
		Policy:         policy,
		StatusCacheTTL: viper.GetDuration(constants.StatusCache),
	})
	if errIndexer != nil {
		db.Shutdown()
		return nil, errIndexer
	}

	clock := clockwork.NewRealClock()
	scheduler, errScheduler := gocron.NewScheduler(gocron.WithLocation(time.UTC), gocron.WithClock(clock))
	if errScheduler != nil {
		db.Shutdown()
		return nil, errScheduler
	}

	dailyService, errDaily := daily.New(scheduler, indexerService, clock)
	if errDaily != nil {
		db.Shutdown()
		return nil, errDaily
	}

	healthService, errHealth := health.New(scheduler, db.IsConnected)
	if errHealth != nil {
		db.Shutdown()
		return nil, errHealth
	}

	if token := viper.GetString(constants.TelegramBotToken); token != "" {
		telegramService, errTg := telegram.New(token, viper.GetInt64(constants.TelegramChatID))
		if errTg != nil {
			db.Shutdown()
			return nil, errTg
		}
		indexerService.RegisterObserver(telegramService)
	} else {
		log.Debug().Msg("No telegram token, notifications disabled")
	}

	return &Impl{
		scheduler:      scheduler,
		healthService:  healthService,
		dailyService:   dailyService,
		indexerService: indexerService,
		db:             db,
		probes:         insights.NewProbes(db.IsConnected, viper.GetInt(constants.ProbePort)),
	}, nil
}

func (app *Impl) Run() {
	app.scheduler.Start()
	for _, job := range app.scheduler.Jobs() {
		scheduledTime, err := job.NextRun()
		if err == nil {
			log.Info().Msgf("%v scheduled at %v", job.Name(), scheduledTime)
		}
	}

	app.probes.ListenAndServe()
}

// RunOnce indexes the given range without starting the scheduler.
func (app *Impl) RunOnce(ctx context.Context, from, to time.Time, samples int) error {
	return app.indexerService.Start(ctx, from, to, samples)
}

func (app *Impl) RunYesterday(ctx context.Context) error {
	return app.dailyService.RunYesterday(ctx)
}

func (app *Impl) Shutdown() {
	if err := app.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown scheduler, continuing...")
	}
	app.probes.Shutdown()
	app.db.Shutdown()
	log.Info().Msgf("Application is no longer running")
}
