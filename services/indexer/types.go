package indexer

import (
	"context"
	"errors"
	"regexp"
	"time"

	"price-indexer/pkg/observer"
	"price-indexer/repositories/prices"
	"price-indexer/repositories/status"
	"price-indexer/services/priceapi"
)

const defaultSamples = 1000

var (
	ErrConfiguration = errors.New("invalid indexer configuration")
	ErrConnection    = errors.New("indexer cannot reach the database")
	ErrTransaction   = errors.New("transaction failed")
	ErrIncompleteDay = errors.New("day is incomplete")

	symbolPattern = regexp.MustCompile(`^[A-Z0-9]{2,16}$`)
)

// Policy decides what a coin failure does to the day.
type Policy string

const (
	// PolicyBestEffort logs failed coins and still marks the day as indexed.
	PolicyBestEffort Policy = "best-effort"
	// PolicyStrict leaves the day unmarked as soon as one coin fails.
	PolicyStrict Policy = "strict"
)

type Options struct {
	CoinSymbols    []string
	FiatSymbols    []string
	SyncSchema     bool
	Policy         Policy
	StatusCacheTTL time.Duration
}

type Report struct {
	Day           string
	Skipped       bool
	FiatRows      int
	CoinRows      map[string]int
	FailedSymbols []string
}

func (r Report) Rows() int {
	rows := r.FiatRows
	for _, n := range r.CoinRows {
		rows += n
	}
	return rows
}

type Service interface {
	Start(ctx context.Context, from time.Time, to time.Time, samples int) error
	IndexDay(ctx context.Context, day time.Time, samples int) (Report, error)
	RegisterObserver(o observer.Observer)
}

type Impl struct {
	api         priceapi.Service
	prices      prices.Repository
	status      status.Repository
	coinSymbols []string
	fiatSymbols []string
	policy      Policy
	observers   map[observer.Observer]struct{}
}
