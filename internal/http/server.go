// README: API gateway; registers gin routes and delegates to the planner and trips services.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paramartha-n/travel-planner-v26/internal/http/handlers"
	"github.com/paramartha-n/travel-planner-v26/internal/http/middleware"
)

type ServerDeps struct {
	Planner handlers.Planner
	// Trips is optional; without it the persistence routes answer 503.
	Trips  handlers.TripStore
	Logger *slog.Logger
}

type Server struct {
	planner handlers.Planner
	trips   handlers.TripStore
	logger  *slog.Logger
}

func NewServer(deps ServerDeps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{planner: deps.Planner, trips: deps.Trips, logger: logger}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(s.logger), middleware.Logging(s.logger))

	itineraries := handlers.NewItineraryHandler(s.planner, s.trips)
	r.POST("/api/itineraries/generate", itineraries.Generate)
	r.POST("/api/itineraries", itineraries.Save)
	r.GET("/api/itineraries/:id", itineraries.Get)
	r.GET("/api/itineraries/:id/calendar.ics", itineraries.Calendar)

	hotels := handlers.NewHotelHandler(s.planner)
	r.POST("/api/hotels/recommend", hotels.Recommend)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
