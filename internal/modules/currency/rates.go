// README: Process-wide exchange-rate cache with an injectable clock.
package currency

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

// DefaultRateTTL is how long a fetched rate table stays valid.
const DefaultRateTTL = time.Hour

// rateRetryInterval spaces refetches after a failed one; never longer than the TTL.
const rateRetryInterval = 5 * time.Minute

var ErrRatesUnavailable = errors.New("exchange rates unavailable")

// RateSource fetches a rate table (units per one unit of base) keyed by ISO code.
type RateSource interface {
	FetchRates(ctx context.Context, base string) (map[string]float64, error)
}

// datedRateSource is a RateSource that knows when its table was fetched
// upstream, so a shared copy is not treated as brand new.
type datedRateSource interface {
	FetchRatesAt(ctx context.Context, base string) (map[string]float64, time.Time, error)
}

type rateSnapshot struct {
	table     map[string]float64
	fetchedAt time.Time
	// failedAt is the last failed refetch; zero after a success.
	failedAt time.Time
}

// RateCache holds the last fetched table and when it was fetched. Reads and
// refetches are not serialised: two callers hitting an expired entry may both
// fetch, and the last successful fetch wins. After a failed fetch the last
// known table is served until the retry interval has passed.
type RateCache struct {
	source RateSource
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
	snap   atomic.Pointer[rateSnapshot]
}

// NewRateCache builds a cache over source. A nil source never fetches, a nil
// clock uses time.Now and a non-positive ttl uses DefaultRateTTL.
func NewRateCache(source RateSource, ttl time.Duration, now func() time.Time, logger *slog.Logger) *RateCache {
	if ttl <= 0 {
		ttl = DefaultRateTTL
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RateCache{source: source, ttl: ttl, now: now, logger: logger}
}

// Rates returns a table keyed by currency code. A fresh table is returned as
// is; otherwise a refetch is attempted and, if it fails, the last known table
// (possibly nil) is returned.
func (c *RateCache) Rates(ctx context.Context) map[string]float64 {
	if c == nil {
		return nil
	}
	now := c.now()
	snap := c.snap.Load()
	if snap != nil && len(snap.table) > 0 && now.Sub(snap.fetchedAt) < c.ttl {
		return snap.table
	}
	if c.source == nil {
		return tableOf(snap)
	}
	if snap != nil && !snap.failedAt.IsZero() && now.Sub(snap.failedAt) < c.retryInterval() {
		return snap.table
	}

	table, fetchedAt, err := c.fetch(ctx, now)
	if err != nil || len(table) == 0 {
		if err == nil {
			err = ErrRatesUnavailable
		}
		c.logger.Warn("exchange rate fetch failed, using last known rates", "error", err)
		failed := &rateSnapshot{failedAt: now}
		if snap != nil {
			failed.table, failed.fetchedAt = snap.table, snap.fetchedAt
		}
		c.snap.Store(failed)
		return failed.table
	}

	c.snap.Store(&rateSnapshot{table: table, fetchedAt: fetchedAt})
	return table
}

func (c *RateCache) fetch(ctx context.Context, now time.Time) (map[string]float64, time.Time, error) {
	if dated, ok := c.source.(datedRateSource); ok {
		table, fetchedAt, err := dated.FetchRatesAt(ctx, types.BaseCurrencyCode)
		if fetchedAt.IsZero() || fetchedAt.After(now) {
			fetchedAt = now
		}
		return table, fetchedAt, err
	}
	table, err := c.source.FetchRates(ctx, types.BaseCurrencyCode)
	return table, now, err
}

func (c *RateCache) retryInterval() time.Duration {
	return min(rateRetryInterval, c.ttl)
}

// FetchedAt reports when the current table was fetched; zero if never.
func (c *RateCache) FetchedAt() time.Time {
	if snap := c.snap.Load(); snap != nil {
		return snap.fetchedAt
	}
	return time.Time{}
}

func tableOf(snap *rateSnapshot) map[string]float64 {
	if snap == nil {
		return nil
	}
	return snap.table
}
