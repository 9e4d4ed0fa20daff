package currency

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

// stubRateSource is a test double for RateSource.
type stubRateSource struct {
	mu    sync.Mutex
	table map[string]float64
	err   error
	calls int
}

func (s *stubRateSource) FetchRates(_ context.Context, _ string) (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.table, s.err
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConverter_ConvertIdentityAndZero(t *testing.T) {
	src := &stubRateSource{err: errors.New("should not be called")}
	conv := NewConverter(NewRateCache(src, time.Hour, nil, quietLogger()))
	ctx := context.Background()

	for _, c := range Supported() {
		for _, x := range []float64{0, 1, 12.345, 99999.99} {
			if got := conv.Convert(ctx, x, c, c); got != x {
				t.Errorf("Convert(%v, %s, %s) = %v, want %v", x, c.Code, c.Code, got, x)
			}
		}
	}
	if got := conv.Convert(ctx, 0, mustLookup(t, "USD"), mustLookup(t, "JPY")); got != 0 {
		t.Errorf("zero amount converted to %v", got)
	}
	if src.calls != 0 {
		t.Errorf("identity conversions fetched rates %d times", src.calls)
	}
}

func TestConverter_ConvertTwoHop(t *testing.T) {
	src := &stubRateSource{table: map[string]float64{"EUR": 1, "USD": 2, "GBP": 0.5}}
	conv := NewConverter(NewRateCache(src, time.Hour, nil, quietLogger()))

	got := conv.Convert(context.Background(), 10, mustLookup(t, "USD"), mustLookup(t, "GBP"))
	if got != 2.5 {
		t.Errorf("Convert(10 USD -> GBP) = %v, want 2.5", got)
	}
}

func TestConverter_StaticRatesWhenSourceFails(t *testing.T) {
	src := &stubRateSource{err: errors.New("boom")}
	conv := NewConverter(NewRateCache(src, time.Hour, nil, quietLogger()))

	declared := types.Currency{Code: "USD", Symbol: "$", RateToBase: 2}
	got := conv.Convert(context.Background(), 10, declared, Base())
	if got != 5 {
		t.Errorf("Convert with declared rate = %v, want 5", got)
	}
}

func TestRateCache_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	src := &stubRateSource{table: map[string]float64{"EUR": 1, "USD": 1.1}}
	cache := NewRateCache(src, time.Hour, clock.Now, quietLogger())
	ctx := context.Background()

	cache.Rates(ctx)
	cache.Rates(ctx)
	if src.calls != 1 {
		t.Fatalf("calls within window = %d, want 1", src.calls)
	}

	clock.now = clock.now.Add(59 * time.Minute)
	cache.Rates(ctx)
	if src.calls != 1 {
		t.Fatalf("calls before expiry = %d, want 1", src.calls)
	}

	clock.now = clock.now.Add(2 * time.Minute)
	cache.Rates(ctx)
	if src.calls != 2 {
		t.Fatalf("calls after expiry = %d, want 2", src.calls)
	}
	if !cache.FetchedAt().Equal(clock.now) {
		t.Errorf("FetchedAt = %v, want %v", cache.FetchedAt(), clock.now)
	}
}

func TestRateCache_StaleTableOnFailure(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	src := &stubRateSource{table: map[string]float64{"EUR": 1, "USD": 1.2}}
	cache := NewRateCache(src, time.Hour, clock.Now, quietLogger())
	ctx := context.Background()

	cache.Rates(ctx)
	src.table, src.err = nil, errors.New("rate service down")
	clock.now = clock.now.Add(2 * time.Hour)

	got := cache.Rates(ctx)
	if got["USD"] != 1.2 {
		t.Errorf("stale USD rate = %v, want 1.2", got["USD"])
	}
}

func TestRateCache_FailedFetchIsNotRepeated(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	src := &stubRateSource{err: errors.New("rate service unreachable")}
	conv := NewConverter(NewRateCache(src, time.Hour, clock.Now, quietLogger()))
	ctx := context.Background()
	usd := mustLookup(t, "USD")

	costs := []types.Cost{
		types.NewCost(10, usd),
		types.NewCost(20, usd),
		types.NewCost(30, usd),
		types.NewCost(40, usd),
	}
	got := conv.Sum(ctx, costs, usd)
	if math.Abs(got.Amount-100) > 0.05 || got.Currency.Code != "USD" {
		t.Errorf("Sum = %+v, want ~100 USD", got)
	}
	if src.calls != 1 {
		t.Fatalf("fetches during one Sum = %d, want 1", src.calls)
	}

	clock.now = clock.now.Add(4 * time.Minute)
	conv.Convert(ctx, 10, usd, Base())
	if src.calls != 1 {
		t.Fatalf("fetches inside retry interval = %d, want 1", src.calls)
	}

	clock.now = clock.now.Add(2 * time.Minute)
	conv.Convert(ctx, 10, usd, Base())
	if src.calls != 2 {
		t.Fatalf("fetches after retry interval = %d, want 2", src.calls)
	}
}

func TestRateCache_RecoversAfterFailure(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	src := &stubRateSource{err: errors.New("rate service unreachable")}
	cache := NewRateCache(src, time.Hour, clock.Now, quietLogger())
	ctx := context.Background()

	if got := cache.Rates(ctx); got != nil {
		t.Fatalf("rates after first failure = %v, want nil", got)
	}

	src.table, src.err = map[string]float64{"EUR": 1, "USD": 1.1}, nil
	clock.now = clock.now.Add(10 * time.Minute)
	if got := cache.Rates(ctx); got["USD"] != 1.1 {
		t.Fatalf("USD after recovery = %v, want 1.1", got["USD"])
	}
	cache.Rates(ctx)
	if src.calls != 2 {
		t.Errorf("calls = %d, want 2", src.calls)
	}
}

// datedStubSource reports a fixed upstream fetch time.
type datedStubSource struct {
	stubRateSource
	fetchedAt time.Time
}

func (s *datedStubSource) FetchRatesAt(ctx context.Context, base string) (map[string]float64, time.Time, error) {
	table, err := s.FetchRates(ctx, base)
	return table, s.fetchedAt, err
}

func TestRateCache_KeepsSharedFetchTime(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	src := &datedStubSource{
		stubRateSource: stubRateSource{table: map[string]float64{"EUR": 1, "USD": 1.1}},
		fetchedAt:      clock.now.Add(-50 * time.Minute),
	}
	cache := NewRateCache(src, time.Hour, clock.Now, quietLogger())
	ctx := context.Background()

	cache.Rates(ctx)
	if !cache.FetchedAt().Equal(src.fetchedAt) {
		t.Fatalf("FetchedAt = %v, want %v", cache.FetchedAt(), src.fetchedAt)
	}

	clock.now = clock.now.Add(11 * time.Minute)
	cache.Rates(ctx)
	if src.calls != 2 {
		t.Errorf("calls once the shared table expired = %d, want 2", src.calls)
	}
}

func TestSharedFetchedAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		remaining time.Duration
		want      time.Time
	}{
		{"fresh key", time.Hour, now},
		{"ten minutes left", 10 * time.Minute, now.Add(-50 * time.Minute)},
		{"no expiry", -1, now},
		{"missing key", -2, now},
		{"longer than ttl", 2 * time.Hour, now},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sharedFetchedAt(now, time.Hour, tt.remaining); !got.Equal(tt.want) {
				t.Errorf("sharedFetchedAt = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConverter_Sum(t *testing.T) {
	src := &stubRateSource{table: map[string]float64{"EUR": 1, "USD": 2, "JPY": 100}}
	conv := NewConverter(NewRateCache(src, time.Hour, nil, quietLogger()))
	ctx := context.Background()
	usd := mustLookup(t, "USD")

	t.Run("empty", func(t *testing.T) {
		got := conv.Sum(ctx, nil, usd)
		if got.Amount != 0 || got.Currency.Code != "USD" {
			t.Errorf("Sum(nil) = %+v, want 0 USD", got)
		}
	})

	t.Run("mixed currencies route through base", func(t *testing.T) {
		costs := []types.Cost{
			types.NewCost(10, Base()),
			types.NewCost(20, usd),
			types.NewCost(1000, mustLookup(t, "JPY")),
		}
		// 10 EUR + 10 EUR + 10 EUR = 30 EUR = 60 USD
		got := conv.Sum(ctx, costs, usd)
		if got.Amount != 60 || got.Currency.Code != "USD" {
			t.Errorf("Sum = %+v, want 60 USD", got)
		}
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		cost types.Cost
		want string
	}{
		{types.NewCost(0, mustLookup(t, "JPY")), "Free"},
		{types.NewCost(45, Base()), "€45"},
		{types.NewCost(1500, mustLookup(t, "JPY")), "¥1,500"},
		{types.NewCost(12.5, mustLookup(t, "USD")), "$12.5"},
		{types.NewCost(3.456, mustLookup(t, "CHF")), "CHF3.46"},
	}
	for _, tt := range tests {
		if got := Format(tt.cost); got != tt.want {
			t.Errorf("Format(%+v) = %q, want %q", tt.cost, got, tt.want)
		}
	}
}
