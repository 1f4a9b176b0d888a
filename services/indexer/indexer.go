package indexer

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"price-indexer/models/constants"
	"price-indexer/models/entities"
	"price-indexer/pkg/observer"
	"price-indexer/repositories/prices"
	"price-indexer/repositories/status"
	"price-indexer/services/priceapi"
	"price-indexer/utils/databases"
	"price-indexer/utils/dates"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

func New(db databases.SqlConnection, api priceapi.Service, opts Options) (*Impl, error) {
	if len(opts.CoinSymbols) == 0 && len(opts.FiatSymbols) == 0 {
		return nil, fmt.Errorf("%w: no coin nor fiat symbol", ErrConfiguration)
	}

	seen := make(map[string]struct{})
	for _, symbol := range slices.Concat(opts.CoinSymbols, opts.FiatSymbols) {
		if !symbolPattern.MatchString(symbol) {
			return nil, fmt.Errorf("%w: invalid symbol %q", ErrConfiguration, symbol)
		}
		if _, found := seen[symbol]; found {
			return nil, fmt.Errorf("%w: duplicated symbol %q", ErrConfiguration, symbol)
		}
		seen[symbol] = struct{}{}
	}

	policy := opts.Policy
	switch policy {
	case "":
		policy = PolicyBestEffort
	case PolicyBestEffort, PolicyStrict:
	default:
		return nil, fmt.Errorf("%w: unknown policy %q", ErrConfiguration, policy)
	}

	if !db.IsConnected() {
		if err := db.Run(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConnection, err)
		}
	}

	coins := slices.Clone(opts.CoinSymbols)
	fiats := slices.Clone(opts.FiatSymbols)
	service := &Impl{
		api:         api,
		prices:      prices.New(db, coins, fiats),
		status:      status.New(db, opts.StatusCacheTTL),
		coinSymbols: coins,
		fiatSymbols: fiats,
		policy:      policy,
		observers:   map[observer.Observer]struct{}{},
	}

	if opts.SyncSchema {
		log.Info().Msg("Syncing database schema")
		if err := service.status.Migrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate status table: %w", err)
		}
		if err := service.prices.Migrate(); err != nil {
			return nil, err
		}
		log.Info().Msg("Database schema synced")
	}

	return service, nil
}

func ParsePolicy(value string) (Policy, error) {
	switch policy := Policy(value); policy {
	case PolicyBestEffort, PolicyStrict:
		return policy, nil
	default:
		return "", fmt.Errorf("%w: unknown policy %q", ErrConfiguration, value)
	}
}

func (service *Impl) RegisterObserver(o observer.Observer) {
	service.observers[o] = struct{}{}
}

func (service *Impl) notify(e observer.Event) {
	for o := range service.observers {
		o.OnNotify(e)
	}
}

// Start indexes every day from `from` to `to`, one day after the other. Failed days
// are logged and left retryable; only a cancelled context stops the run.
func (service *Impl) Start(ctx context.Context, from time.Time, to time.Time, samples int) error {
	logger := log.With().Str(constants.LogRunID, uuid.NewString()).Logger()
	ctx = logger.WithContext(ctx)

	days := []string{dates.Normalize(from, false)}
	if !dates.SameDay(from, to) {
		days = dates.DaysBetween(from, to)
	}
	if len(days) == 0 {
		logger.Warn().
			Str(constants.LogFrom, dates.Normalize(from, false)).
			Str(constants.LogTo, dates.Normalize(to, false)).
			Msg("Empty day range, nothing to index")
		return nil
	}

	logger.Info().
		Str(constants.LogFrom, days[0]).
		Str(constants.LogTo, days[len(days)-1]).
		Strs(constants.LogSymbols, slices.Concat(service.fiatSymbols, service.coinSymbols)).
		Msg("Start indexing")

	started := time.Now()
	var rows, indexed, skipped, failed int
	for _, day := range days {
		if err := ctx.Err(); err != nil {
			return err
		}

		report, err := service.indexDay(ctx, day, samples)
		rows += report.Rows()
		if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
			logger.Warn().Err(err).Str(constants.LogDay, day).Msg("Indexing interrupted, day left for a later run")
			return ctxErr
		}

		switch {
		case err != nil:
			failed++
			logger.Error().Err(err).Str(constants.LogDay, day).Msg("Day not indexed, will retry later")
		case report.Skipped:
			skipped++
		default:
			indexed++
		}
	}

	logger.Info().
		Int("indexed", indexed).
		Int("skipped", skipped).
		Int("failed", failed).
		Msgf("Indexing done: %s rows written in %s", humanize.Comma(int64(rows)), time.Since(started).Round(time.Millisecond))
	return nil
}

func (service *Impl) IndexDay(ctx context.Context, day time.Time, samples int) (Report, error) {
	return service.indexDay(ctx, dates.Normalize(day, false), samples)
}

func (service *Impl) indexDay(ctx context.Context, day string, samples int) (Report, error) {
	logger := loggerFrom(ctx).With().Str(constants.LogDay, day).Logger()
	report := Report{Day: day, CoinRows: map[string]int{}}
	if samples <= 0 {
		samples = defaultSamples
	}

	isIndexed, err := service.status.IsIndexed(day)
	if err != nil {
		return report, fmt.Errorf("failed to read status of %s: %w", day, err)
	}
	if isIndexed {
		logger.Info().Msg("Already indexed")
		report.Skipped = true
		return report, nil
	}

	logger.Info().Msg("Start indexing fiats")
	fiatRows, err := service.pushFiats(ctx, day)
	if err != nil {
		service.notify(observer.NewDayFailedEvent(day, err))
		return report, err
	}
	report.FiatRows = fiatRows

	logger.Info().Strs(constants.LogSymbols, service.coinSymbols).Msg("Start indexing coins")
	var mu sync.Mutex
	var errs error
	var wg conc.WaitGroup
	for _, symbol := range service.coinSymbols {
		wg.Go(func() {
			n, err := service.indexCoin(ctx, symbol, day, samples)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Error().Err(err).Str(constants.LogSymbol, symbol).Msg("Coin not indexed")
				report.FailedSymbols = append(report.FailedSymbols, symbol)
				errs = multierr.Append(errs, err)
				return
			}
			report.CoinRows[symbol] = n
		})
	}
	wg.Wait()
	sort.Strings(report.FailedSymbols)

	// A cancelled run leaves the day unmarked whatever the policy.
	if err := ctx.Err(); err != nil {
		err = fmt.Errorf("%w: %w", ErrIncompleteDay, err)
		service.notify(observer.NewDayFailedEvent(day, err))
		return report, err
	}

	if errs != nil && service.policy == PolicyStrict {
		err := fmt.Errorf("%w: %w", ErrIncompleteDay, errs)
		service.notify(observer.NewDayFailedEvent(day, err))
		return report, err
	}

	if err := service.status.Save(day, true); err != nil {
		err = fmt.Errorf("%w: status of %s: %v", ErrTransaction, day, err)
		service.notify(observer.NewDayFailedEvent(day, err))
		return report, err
	}

	if len(report.FailedSymbols) > 0 {
		logger.Warn().
			Strs(constants.LogSymbols, report.FailedSymbols).
			Str(constants.LogPolicy, string(service.policy)).
			Msg("Day marked as indexed although some coins failed")
		service.notify(observer.NewDayPartialEvent(day, report.FailedSymbols))
		return report, nil
	}

	logger.Info().Int(constants.LogRows, report.Rows()).Msg("Day indexed")
	service.notify(observer.NewDayIndexedEvent(day))
	return report, nil
}

// pushFiats is all-or-nothing: one failing fiat leaves every fiat table untouched.
func (service *Impl) pushFiats(ctx context.Context, day string) (int, error) {
	quotes := make([]priceapi.FiatQuote, 0, len(service.fiatSymbols))
	for _, symbol := range service.fiatSymbols {
		quote, err := service.api.FetchFiatHistory(ctx, symbol, day)
		if err != nil {
			return 0, fmt.Errorf("fiat %s: %w", symbol, err)
		}
		quote.Symbol = symbol
		quotes = append(quotes, quote)
	}
	if len(quotes) == 0 {
		return 0, nil
	}

	err := service.prices.Transaction(func(tx *gorm.DB) error {
		for _, quote := range quotes {
			row := entities.FiatPrice{Timestamp: quote.Timestamp, PriceUSD: quote.PriceUSD, Volume24h: quote.Volume24h}
			if err := service.prices.UpsertFiatQuote(tx, quote.Symbol, day, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: fiats: %v", ErrTransaction, err)
	}

	loggerFrom(ctx).Info().Str(constants.LogDay, day).Int(constants.LogRows, len(quotes)).Msg("Fiats indexed")
	return len(quotes), nil
}

func (service *Impl) indexCoin(ctx context.Context, symbol string, day string, samples int) (int, error) {
	history, err := service.api.FetchCoinHistory(ctx, symbol, day, samples)
	if err != nil {
		return 0, fmt.Errorf("coin %s: %w", symbol, err)
	}

	return service.pushCoin(ctx, symbol, day, history.Samples)
}

func (service *Impl) pushCoin(ctx context.Context, symbol string, day string, samples []priceapi.Sample) (int, error) {
	rows := make([]entities.CoinPrice, len(samples))
	for i, sample := range samples {
		rows[i] = entities.CoinPrice{Timestamp: sample.Timestamp, Price: sample.Price, Volume24h: sample.Volume24h}
	}

	var written int
	err := service.prices.Transaction(func(tx *gorm.DB) error {
		n, err := service.prices.InsertCoinSamples(tx, symbol, day, rows)
		written = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%w: coin %s: %v", ErrTransaction, symbol, err)
	}

	event := loggerFrom(ctx).Debug().
		Str(constants.LogDay, day).
		Str(constants.LogSymbol, symbol).
		Int(constants.LogRows, written)
	if len(samples) > 0 {
		event = event.
			Str(constants.LogFrom, dates.ToISOTimestamp(samples[0].Timestamp)).
			Str(constants.LogTo, dates.ToISOTimestamp(samples[len(samples)-1].Timestamp))
	}
	event.Msg("Coin indexed")
	return written, nil
}

func loggerFrom(ctx context.Context) *zerolog.Logger {
	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}
	return logger
}
