// README: Prompt templates. The itinerary prompt is the contract the response parser reads.
package ai

import (
	"fmt"
	"strings"

	"github.com/paramartha-n/travel-planner-v26/internal/modules/currency"
	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

const (
	promptDateLayout     = "January 2, 2006"
	promptDateTimeLayout = "January 2, 2006 15:04"
)

type priceBand struct {
	min, max int
}

var priceBands = map[string]priceBand{
	"budget":      {5, 20},
	"economy":     {20, 50},
	"standard":    {50, 150},
	"comfort":     {150, 300},
	"first_class": {300, 500},
	"luxury":      {500, 5000},
}

// defaultPriceBand applies to hotel searches with an unknown range.
var defaultPriceBand = priceBand{50, 300}

// PriceRangeText renders a price range as "€min-€max per night", "" when unknown.
func PriceRangeText(priceRange string) string {
	b, ok := priceBands[priceRange]
	if !ok {
		return ""
	}
	return b.text()
}

func (b priceBand) text() string {
	return fmt.Sprintf("€%d-€%d per night", b.min, b.max)
}

// ItineraryPrompt renders the itinerary request for req.
func ItineraryPrompt(req types.TravelRequest) string {
	days := req.TotalDays()
	var sb strings.Builder

	if req.PriceRange != "" {
		fmt.Fprintf(&sb, `First, find a suitable hotel in %s that matches these criteria:
- Price Range: %s
- Check-in: %s
- Check-out: %s

REQUIREMENTS:
1. Must be a real, currently operating hotel
2. Must be within 3km of city center
3. Must have 8.0+ rating on Booking.com
4. Must be well-connected to public transport
5. Must be in a safe, tourist-friendly area
6. Must have 24/7 reception
7. Must have air conditioning and Wi-Fi
8. Must have recent reviews (within last 6 months)

Return the selected hotel in this EXACT format:
SELECTED_HOTEL: [Hotel Name] | [Price per Night] | [Distance to Center] | [Rating]

Example:
SELECTED_HOTEL: Grand Hotel Palace | €180 | 0.5 km from center | 9.2

`, req.City, PriceRangeText(req.PriceRange),
			req.ArrivalDateTime.Format(promptDateLayout), req.DepartureDateTime.Format(promptDateLayout))
	}

	hotel := req.Hotel
	if hotel == "" {
		hotel = "[the selected hotel]"
	}

	fmt.Fprintf(&sb, `Create a detailed %d-day travel itinerary for %s.

First line must be in this EXACT format:
LOCAL_CURRENCY: [Currency Code] ([Symbol]) [Exchange Rate to EUR]
Example: LOCAL_CURRENCY: JPY (¥) 161.29
The local currency of %s is most likely %s.

Key Details:
- Arrival: %s
- Hotel: %s
- Departure: %s
- Price Range: %s
- Total Days: %d

Format each day EXACTLY as shown below:

Day 1:
- Activity: [Name]
  Description: [2-3 short sentences]
  Recommended Time: [Duration]
  Cost: [Amount in local currency with symbol] ([Amount in EUR with €])
  Travel Time: [Duration from previous location]
  Travel Cost: [Amount in local currency with symbol] ([Amount in EUR with €])

- Restaurant: [Name] (Lunch)
  Description: [2-3 short sentences]
  Must-Try: [Signature dish]
  Cost: [Amount in local currency with symbol] ([Amount in EUR with €])
  Rating: [4.0+ rating]
  Category: [Cheap Eats/Mid-range/Fine Dining]
  Travel Time: [Duration from previous location]
  Travel Cost: [Amount in local currency with symbol] ([Amount in EUR with €])

Day 2:
[Follow same format as Day 1]

[Continue for remaining days...]

Guidelines:
1. Start Day 1 with airport arrival and hotel check-in
2. End the last day with airport departure
3. Include exactly 4 activities per day (2 activities + lunch + dinner)
4. All restaurants must be currently operating with 4.0+ rating
5. Vary restaurant price categories throughout the trip
6. All costs must be in both local currency and EUR
7. Travel times and costs must be realistic for the city
8. Consider opening hours for all venues

Remember:
- Only include real, operating venues
- Verify all locations exist on Google Maps
- Include clear travel costs for all movements
- Mark meals clearly with (Lunch) or (Dinner)
- Keep descriptions concise and informative`,
		days, req.City,
		req.City, currency.DetectLocal(req.City),
		req.ArrivalDateTime.Format(promptDateTimeLayout), hotel, req.DepartureDateTime.Format(promptDateTimeLayout),
		orNotSpecified(PriceRangeText(req.PriceRange)), days)

	return sb.String()
}

// HotelPrompt renders the hotel concierge request.
func HotelPrompt(s types.HotelSearch) string {
	band, ok := priceBands[s.PriceRange]
	if !ok {
		band = defaultPriceBand
	}
	nights := s.Nights()

	return fmt.Sprintf(`Act as an expert hotel concierge. Find a real, currently operating hotel in %s that matches these criteria:

SEARCH CRITERIA:
- City: %s
- Check-in: %s
- Check-out: %s (%d nights)
- Price Range: %s (Total budget up to €%d)
- Location: Within 3km of city center
- Rating: Minimum 8.0/10 on Booking.com
- Must be currently operational and accepting reservations

IMPORTANT:
1. Do NOT suggest hotels that are permanently or temporarily closed
2. Do NOT suggest hotels under renovation
3. Do NOT make up or invent hotel names
4. Price must be within specified range
5. Must be an actual hotel (not apartment or guesthouse)

Return ONLY the hotel name in this exact format:
HOTEL: [Full Hotel Name]

Example response:
HOTEL: The Ritz-Carlton Berlin`,
		s.City, s.City,
		s.ArrivalDateTime.Format(promptDateLayout), s.DepartureDateTime.Format(promptDateLayout), nights,
		band.text(), band.max*nights)
}

func orNotSpecified(s string) string {
	if s == "" {
		return "not specified"
	}
	return s
}
