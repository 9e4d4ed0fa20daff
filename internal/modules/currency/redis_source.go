// README: Redis read-through layer sharing one rate table across planner instances.
package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const ratesKeyPrefix = "rates:%s"

// RedisRateSource serves the table stored under rates:<BASE> and falls through
// to next when the key is missing, unreadable or redis is down.
type RedisRateSource struct {
	redis  *redis.Client
	next   RateSource
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisRateSource(client *redis.Client, next RateSource, ttl time.Duration, logger *slog.Logger) *RedisRateSource {
	if ttl <= 0 {
		ttl = DefaultRateTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisRateSource{redis: client, next: next, ttl: ttl, logger: logger}
}

func (s *RedisRateSource) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	table, _, err := s.FetchRatesAt(ctx, base)
	return table, err
}

// FetchRatesAt also reports when the shared table was fetched upstream,
// derived from the key's remaining TTL.
func (s *RedisRateSource) FetchRatesAt(ctx context.Context, base string) (map[string]float64, time.Time, error) {
	key := ratesKey(base)
	now := time.Now()

	var get *redis.StringCmd
	var ttl *redis.DurationCmd
	_, err := s.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.Get(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	switch {
	case err == nil:
		var table map[string]float64
		if jsonErr := json.Unmarshal([]byte(get.Val()), &table); jsonErr == nil && len(table) > 0 {
			return table, sharedFetchedAt(now, s.ttl, ttl.Val()), nil
		}
		s.logger.Warn("discarding unreadable shared rate table", "key", key)
	case !errors.Is(err, redis.Nil):
		s.logger.Warn("shared rate table lookup failed", "key", key, "error", err)
	}

	if s.next == nil {
		return nil, time.Time{}, ErrRatesUnavailable
	}
	table, err := s.next.FetchRates(ctx, base)
	if err != nil {
		return nil, time.Time{}, err
	}

	data, err := json.Marshal(table)
	if err != nil {
		return table, now, nil
	}
	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("storing shared rate table failed", "key", key, "error", err)
	}
	return table, now, nil
}

// sharedFetchedAt turns a key's remaining TTL back into its write time. Keys
// without an expiry (negative remaining) count as fetched now.
func sharedFetchedAt(now time.Time, ttl, remaining time.Duration) time.Time {
	if remaining <= 0 || remaining > ttl {
		return now
	}
	return now.Add(remaining - ttl)
}

func ratesKey(base string) string {
	return fmt.Sprintf(ratesKeyPrefix, base)
}
