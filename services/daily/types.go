package daily

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	jobName    = "Index yesterday prices"
	jobTimeout = 30 * time.Minute
)

type Indexer interface {
	Start(ctx context.Context, from time.Time, to time.Time, samples int) error
}

type Service interface {
	RunYesterday(ctx context.Context) error
}

type Impl struct {
	indexer Indexer
	clock   clockwork.Clock
	samples int
}
