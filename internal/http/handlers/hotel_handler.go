package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

type HotelHandler struct {
	planner Planner
}

func NewHotelHandler(planner Planner) *HotelHandler {
	return &HotelHandler{planner: planner}
}

type hotelSearchReq struct {
	City              string `json:"city"`
	ArrivalDateTime   string `json:"arrivalDateTime"`
	DepartureDateTime string `json:"departureDateTime"`
	PriceRange        string `json:"priceRange"`
}

// Recommend handles POST /api/hotels/recommend.
func (h *HotelHandler) Recommend(c *gin.Context) {
	var req hotelSearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	hotel, err := h.planner.RecommendHotel(c.Request.Context(), types.HotelSearch{
		City:              req.City,
		ArrivalDateTime:   parseRequestTime(req.ArrivalDateTime),
		DepartureDateTime: parseRequestTime(req.DepartureDateTime),
		PriceRange:        req.PriceRange,
	})
	if err != nil {
		writePlannerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"hotel": hotel})
}
