package itinerary

import (
	"fmt"

	"github.com/paramartha-n/travel-planner-v26/internal/maps"
	"github.com/paramartha-n/travel-planner-v26/internal/modules/currency"
	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

const (
	airportImage = "https://images.unsplash.com/photo-1436491865332-7a61a109cc05"
	hotelImage   = "https://images.unsplash.com/photo-1566073771259-6a8506099945"

	airportTransferTime = "45 minutes"
	airportTransferCost = 30
	defaultNightlyRate  = 150
)

var nightlyRates = map[string]float64{
	"budget":      15,
	"economy":     35,
	"standard":    100,
	"comfort":     225,
	"first_class": 400,
	"luxury":      1000,
}

// NightlyRate is the EUR per-night hotel estimate for a price range.
func NightlyRate(priceRange string) float64 {
	if rate, ok := nightlyRates[priceRange]; ok {
		return rate
	}
	return defaultNightlyRate
}

func airportName(req types.TravelRequest) string {
	return req.City + " Airport"
}

func airportTransfer(origin, destination string) types.TravelLeg {
	return types.TravelLeg{
		Time: airportTransferTime,
		Cost: types.NewCost(airportTransferCost, currency.Base()),
		Link: maps.TransitDirectionsLink(origin, destination),
	}
}

func arrivalActivity(req types.TravelRequest) types.Activity {
	return types.Activity{
		Name:            req.City + " Airport Arrival",
		Image:           airportImage,
		Description:     "Welcome to your destination! After landing, collect your luggage and prepare for your adventure.",
		Cost:            types.NewCost(0, currency.Base()),
		RecommendedTime: "1 hour",
		LocationLink:    maps.SearchLink(airportName(req), ""),
		TravelLeg:       airportTransfer(airportName(req), req.Hotel),
	}
}

// hotelCheckInActivity uses pricePerNight when positive, else the price-range estimate.
// Its travel leg repeats the arrival transfer.
func hotelCheckInActivity(req types.TravelRequest, pricePerNight float64) types.Activity {
	if pricePerNight <= 0 {
		pricePerNight = NightlyRate(req.PriceRange)
	}
	return types.Activity{
		Name:  req.Hotel,
		Image: hotelImage,
		Description: fmt.Sprintf("Your accommodation for %d nights. The hotel offers comfortable rooms with modern amenities "+
			"including air conditioning and Wi-Fi. Located in a convenient area with easy access to public transport.", req.TotalDays()),
		Cost:            types.NewCost(pricePerNight, currency.Base()),
		RecommendedTime: "30 minutes",
		LocationLink:    maps.SearchLink(req.Hotel, ""),
		Category:        "per night",
		TravelLeg:       airportTransfer(airportName(req), req.Hotel),
	}
}

func departureActivity(req types.TravelRequest) types.Activity {
	return types.Activity{
		Name:            req.City + " Airport Departure",
		Image:           airportImage,
		Description:     "Time to head home. Make your way to the airport for your departure flight.",
		Cost:            types.NewCost(0, currency.Base()),
		RecommendedTime: "1 hour",
		LocationLink:    maps.SearchLink(airportName(req), ""),
		TravelLeg:       airportTransfer(req.Hotel, airportName(req)),
	}
}

func selectedPrice(hotel *SelectedHotel) float64 {
	if hotel == nil {
		return 0
	}
	return float64(hotel.PricePerNight)
}
