package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/paramartha-n/travel-planner-v26/internal/modules/trips"
	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

// Planner is the part of service.TripPlanner the handlers use.
type Planner interface {
	PlanTrip(ctx context.Context, req types.TravelRequest) (types.TravelItinerary, error)
	RecommendHotel(ctx context.Context, search types.HotelSearch) (string, error)
}

// TripStore is the part of trips.Service the handlers use.
type TripStore interface {
	Save(ctx context.Context, req types.TravelRequest, itin types.TravelItinerary) (uuid.UUID, error)
	Get(ctx context.Context, id string) (trips.SavedItinerary, error)
	Calendar(ctx context.Context, id string) (string, error)
}

type ItineraryHandler struct {
	planner Planner
	trips   TripStore
}

// NewItineraryHandler accepts a nil store; the persistence routes then answer 503.
func NewItineraryHandler(planner Planner, store TripStore) *ItineraryHandler {
	return &ItineraryHandler{planner: planner, trips: store}
}

// Generate handles POST /api/itineraries/generate.
func (h *ItineraryHandler) Generate(c *gin.Context) {
	var body travelRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	itin, err := h.planner.PlanTrip(c.Request.Context(), body.toRequest())
	if err != nil {
		writePlannerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, itin)
}

type saveItineraryReq struct {
	Request   travelRequestBody     `json:"request"`
	Itinerary types.TravelItinerary `json:"itinerary"`
}

// Save handles POST /api/itineraries.
func (h *ItineraryHandler) Save(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	var req saveItineraryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	id, err := h.trips.Save(c.Request.Context(), req.Request.toRequest(), req.Itinerary)
	if err != nil {
		writeTripsError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{"id": id})
}

// Get handles GET /api/itineraries/:id.
func (h *ItineraryHandler) Get(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	saved, err := h.trips.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeTripsError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, saved)
}

// Calendar handles GET /api/itineraries/:id/calendar.ics.
func (h *ItineraryHandler) Calendar(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	doc, err := h.trips.Calendar(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeTripsError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="itinerary.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(doc))
}

func (h *ItineraryHandler) storeReady(c *gin.Context) bool {
	if h.trips == nil {
		writeError(c, http.StatusServiceUnavailable, "itinerary storage is not configured")
		return false
	}
	return true
}
