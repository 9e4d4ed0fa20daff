package maps

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"googlemaps.github.io/maps"

	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

const photoBaseURL = "https://maps.googleapis.com/maps/api/place/photo"

// Place represents a simplified place lookup result.
type Place struct {
	Name       string
	Address    string
	Rating     float32
	PlaceID    string
	PhotoURL   string
	Link       string
	PriceLevel int
	// EstimatedCost is a coarse guess derived from the price level.
	EstimatedCost types.Cost
}

// RatingText formats the rating with one decimal, or "" when unrated.
func (p *Place) RatingText() string {
	if p == nil || p.Rating <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f", p.Rating)
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client *maps.Client
	apiKey string
	memo   *cache.Cache
	logger *slog.Logger
}

// NewPlacesService creates a new PlacesService with the given API Key. Extra
// client options (base URL, HTTP client, rate limit) are applied after the key.
func NewPlacesService(apiKey string, logger *slog.Logger, opts ...maps.ClientOption) (*PlacesService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PlacesService{
		client: client,
		apiKey: apiKey,
		memo:   cache.New(6*time.Hour, time.Hour),
		logger: logger,
	}, nil
}

// LookupPlace resolves a place by id when one is given, otherwise by "name city".
// No match and an unconfigured service both yield (nil, nil). Results, misses
// included, are memoised.
func (s *PlacesService) LookupPlace(ctx context.Context, name, city, placeID string) (*Place, error) {
	if s == nil || s.client == nil {
		return nil, nil
	}

	key := memoKey(name, city, placeID)
	if cached, ok := s.memo.Get(key); ok {
		return cached.(*Place), nil
	}

	var (
		place *Place
		err   error
	)
	if placeID != "" {
		place, err = s.details(ctx, name, city, placeID)
	} else {
		place, err = s.find(ctx, name, city)
	}
	if err != nil {
		return nil, err
	}

	s.memo.Set(key, place, cache.DefaultExpiration)
	return place, nil
}

func (s *PlacesService) find(ctx context.Context, name, city string) (*Place, error) {
	fields, err := searchFields("photos", "formatted_address", "name", "rating", "price_level", "place_id")
	if err != nil {
		return nil, err
	}

	resp, err := s.client.FindPlaceFromText(ctx, &maps.FindPlaceFromTextRequest{
		Input:     strings.TrimSpace(name + " " + city),
		InputType: maps.FindPlaceFromTextInputTypeTextQuery,
		Fields:    fields,
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}
	if len(resp.Candidates) == 0 {
		s.logger.Debug("no place candidates", "name", name, "city", city)
		return nil, nil
	}

	c := resp.Candidates[0]
	return &Place{
		Name:          c.Name,
		Address:       c.FormattedAddress,
		Rating:        c.Rating,
		PlaceID:       c.PlaceID,
		PhotoURL:      s.photoURL(c.Photos),
		Link:          SearchLink(name+" "+city, c.PlaceID),
		PriceLevel:    c.PriceLevel,
		EstimatedCost: PriceLevelCost(c.PriceLevel),
	}, nil
}

func (s *PlacesService) details(ctx context.Context, name, city, placeID string) (*Place, error) {
	fields, err := detailFields("photos", "formatted_address", "name", "rating", "price_level", "url", "place_id")
	if err != nil {
		return nil, err
	}

	res, err := s.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields:  fields,
	})
	if err != nil {
		return nil, fmt.Errorf("place details error: %w", err)
	}

	link := res.URL
	if link == "" {
		link = SearchLink(name+" "+city, "")
	}
	return &Place{
		Name:          res.Name,
		Address:       res.FormattedAddress,
		Rating:        res.Rating,
		PlaceID:       res.PlaceID,
		PhotoURL:      s.photoURL(res.Photos),
		Link:          link,
		PriceLevel:    res.PriceLevel,
		EstimatedCost: PriceLevelCost(res.PriceLevel),
	}, nil
}

func (s *PlacesService) photoURL(photos []maps.Photo) string {
	if len(photos) == 0 || photos[0].PhotoReference == "" {
		return ""
	}
	q := url.Values{}
	q.Set("maxwidth", "800")
	q.Set("photo_reference", photos[0].PhotoReference)
	q.Set("key", s.apiKey)
	return photoBaseURL + "?" + q.Encode()
}

// PriceLevelCost maps a Places price level (0-4) to a EUR estimate.
func PriceLevelCost(level int) types.Cost {
	eur := types.Currency{Code: types.BaseCurrencyCode, Symbol: "€", RateToBase: 1}
	switch level {
	case 0:
		return types.NewCost(15, eur)
	case 1:
		return types.NewCost(30, eur)
	case 2:
		return types.NewCost(50, eur)
	case 3:
		return types.NewCost(100, eur)
	case 4:
		return types.NewCost(200, eur)
	default:
		return types.NewCost(50, eur)
	}
}

func searchFields(names ...string) ([]maps.PlaceSearchFieldMask, error) {
	out := make([]maps.PlaceSearchFieldMask, 0, len(names))
	for _, n := range names {
		f, err := maps.ParsePlaceSearchFieldMask(n)
		if err != nil {
			return nil, fmt.Errorf("place search field %q: %w", n, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func detailFields(names ...string) ([]maps.PlaceDetailsFieldMask, error) {
	out := make([]maps.PlaceDetailsFieldMask, 0, len(names))
	for _, n := range names {
		f, err := maps.ParsePlaceDetailsFieldMask(n)
		if err != nil {
			return nil, fmt.Errorf("place details field %q: %w", n, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func memoKey(name, city, placeID string) string {
	if placeID != "" {
		return "id:" + placeID
	}
	return "q:" + strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(city))
}
