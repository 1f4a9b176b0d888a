package daily

import (
	"context"
	"testing"
	"time"

	"price-indexer/models/constants"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndexer struct {
	from, to time.Time
	samples  int
	calls    int
}

func (f *fakeIndexer) Start(_ context.Context, from time.Time, to time.Time, samples int) error {
	f.calls++
	f.from, f.to, f.samples = from, to, samples
	return nil
}

func TestRunYesterday(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 2, 0, 5, 0, 0, time.UTC))
	indexer := &fakeIndexer{}
	service := &Impl{indexer: indexer, clock: clock, samples: 500}

	require.NoError(t, service.RunYesterday(context.Background()))
	assert.Equal(t, 1, indexer.calls)
	assert.Equal(t, "2024-01-01", indexer.from.Format("2006-01-02"))
	assert.Equal(t, indexer.from, indexer.to)
	assert.Equal(t, 500, indexer.samples)
}

func TestRunYesterdayUsesUTC(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 2, 8, 0, 0, 0, tokyo))
	indexer := &fakeIndexer{}
	service := &Impl{indexer: indexer, clock: clock, samples: 10}

	require.NoError(t, service.RunYesterday(context.Background()))
	assert.Equal(t, "2023-12-31", indexer.from.Format("2006-01-02"))
}

func TestNewRegistersJob(t *testing.T) {
	viper.Set(constants.IndexerCronTab, "5 0 * * *")
	viper.Set(constants.SamplesPerRequest, 1000)
	t.Cleanup(viper.Reset)

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	require.NoError(t, err)
	t.Cleanup(func() { _ = scheduler.Shutdown() })

	service, err := New(scheduler, &fakeIndexer{}, clockwork.NewRealClock())
	require.NoError(t, err)
	assert.Equal(t, 1000, service.samples)

	require.Len(t, scheduler.Jobs(), 1)
	assert.Equal(t, jobName, scheduler.Jobs()[0].Name())
}

func TestNewInvalidCronTab(t *testing.T) {
	viper.Set(constants.IndexerCronTab, "every night")
	t.Cleanup(viper.Reset)

	scheduler, err := gocron.NewScheduler()
	require.NoError(t, err)
	t.Cleanup(func() { _ = scheduler.Shutdown() })

	_, err = New(scheduler, &fakeIndexer{}, clockwork.NewRealClock())
	assert.Error(t, err)
}
