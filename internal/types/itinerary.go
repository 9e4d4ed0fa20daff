// README: Itinerary aggregate produced by the response parser.
package types

import "time"

// TravelRequest is the immutable input of a planning call.
type TravelRequest struct {
	City              string    `json:"city"`
	Hotel             string    `json:"hotel"`
	ArrivalDateTime   time.Time `json:"arrivalDateTime"`
	DepartureDateTime time.Time `json:"departureDateTime"`
	PriceRange        string    `json:"priceRange,omitempty"`
}

// TotalDays is the number of started 24h periods between arrival and departure.
func (r TravelRequest) TotalDays() int {
	gap := r.DepartureDateTime.Sub(r.ArrivalDateTime)
	if gap <= 0 {
		return 0
	}
	days := int(gap / (24 * time.Hour))
	if gap%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// TravelLeg describes the movement to an activity from the previous one.
type TravelLeg struct {
	Time string `json:"time"`
	Cost Cost   `json:"cost"`
	Link string `json:"link"`
}

type Activity struct {
	Name            string    `json:"name"`
	Image           string    `json:"image"`
	Description     string    `json:"description"`
	Cost            Cost      `json:"cost"`
	RecommendedTime string    `json:"recommendedTime,omitempty"`
	LocationLink    string    `json:"locationLink"`
	Rating          string    `json:"rating,omitempty"`
	MustTryFood     string    `json:"mustTryFood,omitempty"`
	Category        string    `json:"category,omitempty"`
	TravelLeg       TravelLeg `json:"travelLeg"`
}

// DayItinerary holds the activities of one calendar day in visiting order.
type DayItinerary struct {
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
}

type Summary struct {
	TotalActivitiesCost Cost `json:"totalActivitiesCost"`
	TotalTravelCost     Cost `json:"totalTravelCost"`
}

type TravelItinerary struct {
	Days    []DayItinerary `json:"days"`
	Summary Summary        `json:"summary"`
}

// DayDateLayout is the display format of DayItinerary.Date.
const DayDateLayout = "Monday, January 2, 2006"

func FormatDayDate(t time.Time) string {
	return t.Format(DayDateLayout)
}

func ParseDayDate(s string) (time.Time, error) {
	return time.Parse(DayDateLayout, s)
}

// HotelSearch asks for one hotel recommendation matching a price range.
type HotelSearch struct {
	City              string    `json:"city"`
	ArrivalDateTime   time.Time `json:"arrivalDateTime"`
	DepartureDateTime time.Time `json:"departureDateTime"`
	PriceRange        string    `json:"priceRange"`
}

// Nights is the number of started 24h periods of the stay.
func (s HotelSearch) Nights() int {
	return TravelRequest{ArrivalDateTime: s.ArrivalDateTime, DepartureDateTime: s.DepartureDateTime}.TotalDays()
}
