package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrCacheMiss is returned by Cache.Get when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// MetricsRecorder records engine metrics.
type MetricsRecorder interface {
	ObserveComputation(operation string, duration time.Duration, err error)
	RecordCacheResult(operation string, hit bool)
	RecordOverpayment(amount decimal.Decimal)
}
