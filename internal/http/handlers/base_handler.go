// README: Base handler utilities (JSON helpers, error mapping, request decoding).
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paramartha-n/travel-planner-v26/internal/ai"
	"github.com/paramartha-n/travel-planner-v26/internal/modules/trips"
	"github.com/paramartha-n/travel-planner-v26/internal/service"
	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePlannerError maps validation and upstream failures to distinct statuses.
func writePlannerError(c *gin.Context, err error) {
	var ve *service.ValidationError
	var ue *ai.UpstreamError
	switch {
	case errors.As(err, &ve):
		writeError(c, http.StatusBadRequest, ve.Message)
	case errors.As(err, &ue):
		writeError(c, upstreamStatus(ue.Kind), ue.UserMessage())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func upstreamStatus(k ai.Kind) int {
	switch k {
	case ai.KindTimeout:
		return http.StatusGatewayTimeout
	case ai.KindQuotaExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

func writeTripsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trips.ErrInvalidID), errors.Is(err, trips.ErrEmptyItinerary):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trips.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// travelRequestBody accepts the browser's datetime-local values as well as RFC 3339.
type travelRequestBody struct {
	City              string `json:"city"`
	Hotel             string `json:"hotel"`
	ArrivalDateTime   string `json:"arrivalDateTime"`
	DepartureDateTime string `json:"departureDateTime"`
	PriceRange        string `json:"priceRange"`
}

var requestTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseRequestTime returns the zero time for empty or unreadable values;
// validation reports those.
func parseRequestTime(v string) time.Time {
	v = strings.TrimSpace(v)
	for _, layout := range requestTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (b travelRequestBody) toRequest() types.TravelRequest {
	return types.TravelRequest{
		City:              b.City,
		Hotel:             b.Hotel,
		ArrivalDateTime:   parseRequestTime(b.ArrivalDateTime),
		DepartureDateTime: parseRequestTime(b.DepartureDateTime),
		PriceRange:        b.PriceRange,
	}
}
