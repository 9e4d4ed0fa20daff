package itinerary

import (
	"context"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

func newTestParser(places PlaceLookup) *Parser {
	return NewParser(places, nil, quietLogger())
}

func activityNames(day types.DayItinerary) []string {
	names := make([]string, 0, len(day.Activities))
	for _, a := range day.Activities {
		names = append(names, a.Name)
	}
	return names
}

func TestParse_NoDayHeadersEqualsDefault(t *testing.T) {
	req := tripRequest(3)
	got := newTestParser(nil).Parse(context.Background(), "LOCAL_CURRENCY: EUR (€) 1\nSorry, I cannot plan this trip.", req)
	want := Default(req, nil)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse without headers = %+v\nwant %+v", got, want)
	}
}

func TestParse_MissingCurrencyFallsBack(t *testing.T) {
	req := tripRequest(3)
	text := "Day 1:\n- Activity: Louvre\nDay 2:\n- Activity: Orsay\nDay 3:\n- Activity: Airport"

	got := newTestParser(nil).Parse(context.Background(), text, req)
	if len(got.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(got.Days))
	}
	if names := activityNames(got.Days[0]); !reflect.DeepEqual(names, []string{"Paris Airport Arrival", "Hotel Lutetia"}) {
		t.Errorf("first day = %v", names)
	}
	if names := activityNames(got.Days[1]); !reflect.DeepEqual(names, []string{"Paris Airport Departure"}) {
		t.Errorf("last day = %v", names)
	}
	if got.Days[1].Date != "Monday, May 4, 2026" {
		t.Errorf("last day date = %q", got.Days[1].Date)
	}
	if got.Summary.TotalActivitiesCost.Amount != 0 {
		t.Errorf("activities total = %v, want 0", got.Summary.TotalActivitiesCost.Amount)
	}
	if got.Summary.TotalTravelCost.Amount != 60 || got.Summary.TotalTravelCost.Currency.Code != "EUR" {
		t.Errorf("travel total = %+v, want 60 EUR", got.Summary.TotalTravelCost)
	}
}

func TestParse_TwoDayTrip(t *testing.T) {
	req := tripRequest(2)
	text := "LOCAL_CURRENCY: USD ($) 1.08\n" +
		"Day 1:\n" +
		"- Activity: City Airport Arrival\n" +
		"- Activity: Hotel Lutetia\n" +
		"- Activity: Louvre Museum\n  Cost: $20\n  Travel Cost: $3\n" +
		"Day 2:\n" +
		"- Activity: Eiffel Tower\n  Cost: $30\n" +
		"- Activity: City Airport Departure\n"

	got := newTestParser(&stubPlaces{}).Parse(context.Background(), text, req)
	if len(got.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(got.Days))
	}
	if got.Days[0].Date != "Friday, May 1, 2026" || got.Days[1].Date != "Saturday, May 2, 2026" {
		t.Errorf("dates = %q, %q", got.Days[0].Date, got.Days[1].Date)
	}
	wantFirst := []string{"Paris Airport Arrival", "Hotel Lutetia", "Louvre Museum"}
	if names := activityNames(got.Days[0]); !reflect.DeepEqual(names, wantFirst) {
		t.Errorf("day 1 = %v, want %v", names, wantFirst)
	}
	wantLast := []string{"Eiffel Tower", "Paris Airport Departure"}
	if names := activityNames(got.Days[1]); !reflect.DeepEqual(names, wantLast) {
		t.Errorf("day 2 = %v, want %v", names, wantLast)
	}
	if got := directionsOrigin(t, got.Days[1].Activities[0].TravelLeg.Link); got != "Hotel Lutetia" {
		t.Errorf("first leg of day 2 starts at %q, want hotel", got)
	}

	s := got.Summary
	if s.TotalActivitiesCost.Currency.Code != "USD" || s.TotalTravelCost.Currency.Code != "USD" {
		t.Errorf("summary currencies = %s, %s", s.TotalActivitiesCost.Currency.Code, s.TotalTravelCost.Currency.Code)
	}
	if math.Abs(s.TotalActivitiesCost.Amount-50) > 0.05 {
		t.Errorf("activities total = %v, want ~50 USD", s.TotalActivitiesCost.Amount)
	}
	// two 30 EUR transfers at 1.08 plus 3 USD
	if math.Abs(s.TotalTravelCost.Amount-67.8) > 0.05 {
		t.Errorf("travel total = %v, want ~67.8 USD", s.TotalTravelCost.Amount)
	}
}

func TestParse_IndentedFieldsKeepTheirCosts(t *testing.T) {
	req := tripRequest(3)
	text := "LOCAL_CURRENCY: EUR (€) 1\n" +
		"Day 1:\n" +
		"- Activity: Paris Airport Arrival\n" +
		"- Activity: Hotel Lutetia\n" +
		"- Activity: Louvre Museum\n  - Description: Art\n  - Cost: €17\n" +
		"Day 2:\n" +
		"- Restaurant: Le Comptoir\n  - Cost: €40\n" +
		"- Activity: Eiffel Tower\n  - Cost: €29\n"

	got := newTestParser(&stubPlaces{}).Parse(context.Background(), text, req)
	if len(got.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(got.Days))
	}
	wantFirst := []string{"Paris Airport Arrival", "Hotel Lutetia", "Louvre Museum"}
	if names := activityNames(got.Days[0]); !reflect.DeepEqual(names, wantFirst) {
		t.Errorf("day 1 = %v, want %v", names, wantFirst)
	}
	wantSecond := []string{"Le Comptoir", "Eiffel Tower"}
	if names := activityNames(got.Days[1]); !reflect.DeepEqual(names, wantSecond) {
		t.Errorf("day 2 = %v, want %v", names, wantSecond)
	}
	if amount := got.Summary.TotalActivitiesCost.Amount; math.Abs(amount-86) > 0.001 {
		t.Errorf("activities total = %v, want 86", amount)
	}
}

func TestParse_ItemPanicIsIsolated(t *testing.T) {
	req := tripRequest(3)
	places := &stubPlaces{panics: map[string]bool{"Boom Bar": true}}
	text := "LOCAL_CURRENCY: EUR (€) 1\n" +
		"Day 2:\n" +
		"- Activity: Sainte-Chapelle\n" +
		"- Activity: Boom Bar\n" +
		"- Activity: Pantheon\n"

	got := newTestParser(places).Parse(context.Background(), text, req)
	if len(got.Days) != 1 {
		t.Fatalf("days = %d, want 1", len(got.Days))
	}
	want := []string{"Sainte-Chapelle", "Pantheon"}
	if names := activityNames(got.Days[0]); !reflect.DeepEqual(names, want) {
		t.Fatalf("activities = %v, want %v", names, want)
	}
	if origin := directionsOrigin(t, got.Days[0].Activities[1].TravelLeg.Link); origin != "Sainte-Chapelle" {
		t.Errorf("Pantheon leg starts at %q, want last built activity", origin)
	}
}

func TestParse_SortsDaysByDate(t *testing.T) {
	req := tripRequest(4)
	text := "LOCAL_CURRENCY: EUR (€) 1\n" +
		"Day 3:\n- Activity: Versailles\n" +
		"Day 2:\n- Activity: Montmartre\n"

	got := newTestParser(nil).Parse(context.Background(), text, req)
	if len(got.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(got.Days))
	}
	if got.Days[0].Activities[0].Name != "Montmartre" || got.Days[1].Activities[0].Name != "Versailles" {
		t.Errorf("order = %v, %v", activityNames(got.Days[0]), activityNames(got.Days[1]))
	}
}

func TestParse_EmptyDaysDropped(t *testing.T) {
	req := tripRequest(4)
	text := "LOCAL_CURRENCY: EUR (€) 1\nDay 2:\n\nDay 3:\n- Activity: Giverny\n"

	got := newTestParser(nil).Parse(context.Background(), text, req)
	if len(got.Days) != 1 || got.Days[0].Activities[0].Name != "Giverny" {
		t.Errorf("days = %+v", got.Days)
	}
}

func TestParse_SelectedHotel(t *testing.T) {
	req := tripRequest(2)
	req.Hotel = ""
	req.PriceRange = "comfort"
	text := "SELECTED_HOTEL: Le Pavillon | €210 per night | 800m to Louvre | 4.5\n" +
		"LOCAL_CURRENCY: EUR (€) 1\n" +
		"Day 1:\n- Activity: Arrival\n- Activity: Check-in\n- Activity: Tuileries Garden\n" +
		"Day 2:\n- Activity: Departure\n"

	got := newTestParser(nil).Parse(context.Background(), text, req)
	checkIn := got.Days[0].Activities[1]
	if checkIn.Name != "Le Pavillon" || checkIn.Cost.Amount != 210 {
		t.Errorf("check-in = %q %v", checkIn.Name, checkIn.Cost.Amount)
	}
	if !strings.Contains(got.Days[0].Activities[0].TravelLeg.Link, "Le+Pavillon") {
		t.Errorf("arrival leg = %q, want destination Le Pavillon", got.Days[0].Activities[0].TravelLeg.Link)
	}
	if got.Days[0].Activities[2].Image != parkImage {
		t.Errorf("garden image = %q", got.Days[0].Activities[2].Image)
	}

	// without a currency line the selected hotel still shapes the fallback
	fallback := newTestParser(nil).Parse(context.Background(), "SELECTED_HOTEL: Le Pavillon | €210 | 1km | 4.5\n", req)
	if fallback.Days[0].Activities[1].Name != "Le Pavillon" || fallback.Days[0].Activities[1].Cost.Amount != 210 {
		t.Errorf("fallback check-in = %+v", fallback.Days[0].Activities[1])
	}
}

func TestDefault(t *testing.T) {
	t.Run("single day", func(t *testing.T) {
		req := tripRequest(1)
		got := Default(req, nil)
		if len(got.Days) != 1 || len(got.Days[0].Activities) != 2 {
			t.Fatalf("days = %+v", got.Days)
		}
		if got.Days[0].Activities[1].Cost.Amount != defaultNightlyRate {
			t.Errorf("nightly = %v", got.Days[0].Activities[1].Cost.Amount)
		}
	})

	t.Run("price range rate", func(t *testing.T) {
		req := tripRequest(5)
		req.PriceRange = "luxury"
		got := Default(req, nil)
		checkIn := got.Days[0].Activities[1]
		if checkIn.Cost.Amount != 1000 || checkIn.Category != "per night" {
			t.Errorf("check-in = %+v", checkIn)
		}
		if !strings.Contains(checkIn.Description, "5 nights") {
			t.Errorf("description = %q", checkIn.Description)
		}
	})
}

func TestNightlyRate(t *testing.T) {
	cases := map[string]float64{
		"budget": 15, "economy": 35, "standard": 100, "comfort": 225,
		"first_class": 400, "luxury": 1000, "": 150, "palace": 150,
	}
	for pr, want := range cases {
		if got := NightlyRate(pr); got != want {
			t.Errorf("NightlyRate(%q) = %v, want %v", pr, got, want)
		}
	}
}
