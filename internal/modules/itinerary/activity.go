package itinerary

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/paramartha-n/travel-planner-v26/internal/maps"
	"github.com/paramartha-n/travel-planner-v26/internal/modules/currency"
	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

var ErrUnnamedItem = errors.New("item has no activity name")

const (
	defaultTravelTime      = "15 minutes"
	defaultRecommendedTime = "1 hour"
	defaultDescription     = "Experience this local attraction."

	restaurantImage = "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4"
	museumImage     = "https://images.unsplash.com/photo-1554907984-15263bfd63bd"
	parkImage       = "https://images.unsplash.com/photo-1585320806297-9794b3e4eeae"
	genericImage    = "https://images.unsplash.com/photo-1499856871958-5b9627545d1a"
)

// PlaceLookup resolves a place name to photos, rating and a canonical link.
// A nil place with a nil error means nothing was found.
type PlaceLookup interface {
	LookupPlace(ctx context.Context, name, city, placeID string) (*maps.Place, error)
}

// ActivityBuilder turns an item's fields into an Activity.
type ActivityBuilder struct {
	places PlaceLookup
	logger *slog.Logger
}

func NewActivityBuilder(places PlaceLookup, logger *slog.Logger) *ActivityBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityBuilder{places: places, logger: logger}
}

// Build creates one Activity. prior holds the activities already built for the
// same day; the travel leg starts from the last of them, or from the hotel for
// the first activity of a day. Costs without a recognisable marker are in local.
func (b *ActivityBuilder) Build(ctx context.Context, f Fields, req types.TravelRequest, prior []types.Activity, firstOfDay bool, local types.Currency) (types.Activity, error) {
	name := resolveName(f)
	if name == "" {
		return types.Activity{}, ErrUnnamedItem
	}

	act := types.Activity{
		Name:            name,
		Description:     lo.CoalesceOrEmpty(f.Get(FieldDescription), defaultDescription),
		Cost:            currency.ParseCost(f.Get(FieldCost), local),
		RecommendedTime: lo.CoalesceOrEmpty(f.Get(FieldRecommendedTime), f.Get(FieldDuration), defaultRecommendedTime),
		Category:        f.Get(FieldCategory),
		MustTryFood:     f.Get(FieldMustTry),
	}

	searchQuery := name + " " + req.City
	if isAirport(name) {
		act.Image = airportImage
		act.LocationLink = maps.SearchLink(searchQuery, "")
	} else {
		place := b.lookup(ctx, name, req.City)
		act.Image = lo.CoalesceOrEmpty(placePhoto(place), defaultImage(name, f))
		act.LocationLink = lo.CoalesceOrEmpty(placeLink(place), maps.SearchLink(searchQuery, ""))
		act.Rating = lo.CoalesceOrEmpty(place.RatingText(), matchRatingDecimal(f.Get(FieldRating)))
	}

	act.TravelLeg = types.TravelLeg{
		Time: travelTime(f.Get(FieldTravelTime)),
		Cost: currency.ParseCost(f.Get(FieldTravelCost), local),
		Link: maps.TransitDirectionsLink(previousLocation(prior, req, firstOfDay), searchQuery),
	}
	return act, nil
}

func (b *ActivityBuilder) lookup(ctx context.Context, name, city string) *maps.Place {
	if b.places == nil {
		return nil
	}
	place, err := b.places.LookupPlace(ctx, name, city, "")
	if err != nil {
		b.logger.Warn("place lookup failed, using defaults", "name", name, "city", city, "error", err)
		return nil
	}
	return place
}

// resolveName prefers the Activity field, then Restaurant, then the first
// unlabelled line. Labelled first lines are already captured as fields.
func resolveName(f Fields) string {
	return lo.CoalesceOrEmpty(f.Get(FieldActivity), f.Get(FieldRestaurant), f.FirstLine)
}

func isAirport(name string) bool {
	return strings.Contains(strings.ToLower(name), "airport")
}

func travelTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "n/a") {
		return defaultTravelTime
	}
	return raw
}

func previousLocation(prior []types.Activity, req types.TravelRequest, firstOfDay bool) string {
	if firstOfDay || len(prior) == 0 {
		return req.Hotel
	}
	return prior[len(prior)-1].Name
}

// defaultImage picks a stock photo from the name, the category and whether the
// item was written as a restaurant.
func defaultImage(name string, f Fields) string {
	hint := strings.ToLower(name + " " + f.Get(FieldCategory))
	switch {
	case f.Has(FieldRestaurant), containsAny(hint, "restaurant", "café", "cafe", "dining"):
		return restaurantImage
	case containsAny(hint, "museum", "gallery"):
		return museumImage
	case containsAny(hint, "park", "garden"):
		return parkImage
	default:
		return genericImage
	}
}

func containsAny(s string, subs ...string) bool {
	return lo.SomeBy(subs, func(sub string) bool { return strings.Contains(s, sub) })
}

func placePhoto(p *maps.Place) string {
	if p == nil {
		return ""
	}
	return p.PhotoURL
}

func placeLink(p *maps.Place) string {
	if p == nil {
		return ""
	}
	return p.Link
}
