package service

import (
	"errors"
	"strings"

	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

// MaxTripDays is the longest trip a single request may plan.
const MaxTripDays = 14

var ErrValidation = errors.New("invalid travel request")

// ValidationError names the offending request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ValidateRequest checks dates, trip length, city and hotel. A request with a
// price range may leave the hotel empty; one is then searched for.
func ValidateRequest(req types.TravelRequest) error {
	if req.ArrivalDateTime.IsZero() || req.DepartureDateTime.IsZero() {
		return &ValidationError{Field: "dates", Message: "Invalid date format. Please check your dates."}
	}
	if !req.ArrivalDateTime.Before(req.DepartureDateTime) {
		return &ValidationError{Field: "departureDateTime", Message: "Departure date must be after arrival date."}
	}
	if req.TotalDays() > MaxTripDays {
		return &ValidationError{Field: "departureDateTime", Message: "Maximum trip duration is 14 days. Please adjust your dates."}
	}
	if strings.TrimSpace(req.City) == "" {
		return &ValidationError{Field: "city", Message: "City is required."}
	}
	if strings.TrimSpace(req.Hotel) == "" && req.PriceRange == "" {
		return &ValidationError{Field: "hotel", Message: "Hotel is required."}
	}
	return nil
}

func fallbackHotel(city string) string {
	return "Hotel in " + strings.TrimSpace(city)
}

// normalizeRequest trims text fields and fills the placeholder hotel.
func normalizeRequest(req types.TravelRequest) types.TravelRequest {
	req.City = strings.TrimSpace(req.City)
	req.Hotel = strings.TrimSpace(req.Hotel)
	req.PriceRange = strings.TrimSpace(req.PriceRange)
	if req.Hotel == "" {
		req.Hotel = fallbackHotel(req.City)
	}
	return req
}
