// README: Saves generated itineraries and serves them back, including as iCalendar.
package trips

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

// Repository is the persistence port; *Store implements it.
type Repository interface {
	Insert(ctx context.Context, saved SavedItinerary) error
	Get(ctx context.Context, id uuid.UUID) (SavedItinerary, error)
}

type Service struct {
	repo   Repository
	now    func() time.Time
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, now: time.Now, logger: logger}
}

// Save persists itin under a new id.
func (s *Service) Save(ctx context.Context, req types.TravelRequest, itin types.TravelItinerary) (uuid.UUID, error) {
	if len(itin.Days) == 0 {
		return uuid.Nil, ErrEmptyItinerary
	}
	saved := SavedItinerary{
		ID:        uuid.New(),
		Request:   req,
		Itinerary: itin,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, saved); err != nil {
		return uuid.Nil, fmt.Errorf("save itinerary: %w", err)
	}
	s.logger.Info("itinerary saved", "id", saved.ID, "city", req.City, "days", len(itin.Days))
	return saved.ID, nil
}

// Get loads a saved itinerary by its textual id.
func (s *Service) Get(ctx context.Context, id string) (SavedItinerary, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return SavedItinerary{}, ErrInvalidID
	}
	return s.repo.Get(ctx, parsed)
}

// Calendar renders a saved itinerary as an iCalendar document.
func (s *Service) Calendar(ctx context.Context, id string) (string, error) {
	saved, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return BuildCalendar(saved), nil
}
