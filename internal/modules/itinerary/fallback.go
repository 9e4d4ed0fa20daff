package itinerary

import (
	"github.com/paramartha-n/travel-planner-v26/internal/modules/currency"
	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

// Default builds the model-independent itinerary: arrival and check-in on the
// arrival date, and departure on the departure date when the trip spans more
// than one day. Totals are fixed to the two airport transfers.
func Default(req types.TravelRequest, hotel *SelectedHotel) types.TravelItinerary {
	days := []types.DayItinerary{{
		Date: types.FormatDayDate(req.ArrivalDateTime),
		Activities: []types.Activity{
			arrivalActivity(req),
			hotelCheckInActivity(req, selectedPrice(hotel)),
		},
	}}

	if req.TotalDays() > 1 {
		days = append(days, types.DayItinerary{
			Date:       types.FormatDayDate(req.DepartureDateTime),
			Activities: []types.Activity{departureActivity(req)},
		})
	}

	return types.TravelItinerary{
		Days: days,
		Summary: types.Summary{
			TotalActivitiesCost: types.NewCost(0, currency.Base()),
			TotalTravelCost:     types.NewCost(2*airportTransferCost, currency.Base()),
		},
	}
}
