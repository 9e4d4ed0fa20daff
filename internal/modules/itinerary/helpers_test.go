package itinerary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/paramartha-n/travel-planner-v26/internal/maps"
	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

// stubPlaces is a test double for PlaceLookup.
type stubPlaces struct {
	mu      sync.Mutex
	results map[string]*maps.Place
	fail    map[string]bool
	panics  map[string]bool
	calls   []string
}

func (s *stubPlaces) LookupPlace(_ context.Context, name, _ string, _ string) (*maps.Place, error) {
	s.mu.Lock()
	s.calls = append(s.calls, name)
	s.mu.Unlock()
	if s.panics[name] {
		panic("lookup exploded for " + name)
	}
	if s.fail[name] {
		return nil, errors.New("places api error")
	}
	return s.results[name], nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tripRequest(days int) types.TravelRequest {
	arrival := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return types.TravelRequest{
		City:              "Paris",
		Hotel:             "Hotel Lutetia",
		ArrivalDateTime:   arrival,
		DepartureDateTime: arrival.AddDate(0, 0, days),
	}
}
