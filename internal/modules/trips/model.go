package trips

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

var (
	ErrNotFound       = errors.New("itinerary not found")
	ErrInvalidID      = errors.New("invalid itinerary id")
	ErrEmptyItinerary = errors.New("itinerary has no days")
)

// SavedItinerary is a persisted plan together with the request that produced it.
type SavedItinerary struct {
	ID        uuid.UUID             `json:"id"`
	Request   types.TravelRequest   `json:"request"`
	Itinerary types.TravelItinerary `json:"itinerary"`
	CreatedAt time.Time             `json:"createdAt"`
}
