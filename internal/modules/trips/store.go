package trips

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

// Store handles itinerary persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Insert writes the itinerary, its days (numbered from 1) and their
// activities (ordered from 1) in one transaction.
func (s *Store) Insert(ctx context.Context, saved SavedItinerary) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	req, summary := saved.Request, saved.Itinerary.Summary
	if _, err := tx.Exec(ctx, `
		INSERT INTO itineraries (id, city, hotel, arrival_at, departure_at, price_range,
			total_activities_cost, total_travel_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, saved.ID, req.City, req.Hotel, req.ArrivalDateTime, req.DepartureDateTime, req.PriceRange,
		summary.TotalActivitiesCost, summary.TotalTravelCost, saved.CreatedAt); err != nil {
		return fmt.Errorf("insert itinerary: %w", err)
	}

	for i, day := range saved.Itinerary.Days {
		var dayID int64
		if err := tx.QueryRow(ctx, `
			INSERT INTO itinerary_days (itinerary_id, day_number, date_label)
			VALUES ($1, $2, $3)
			RETURNING id
		`, saved.ID, i+1, day.Date).Scan(&dayID); err != nil {
			return fmt.Errorf("insert day %d: %w", i+1, err)
		}

		batch := &pgx.Batch{}
		for j, a := range day.Activities {
			batch.Queue(`
				INSERT INTO activities (day_id, activity_order, name, image, description, cost,
					recommended_time, location_link, rating, must_try_food, category, travel_leg)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			`, dayID, j+1, a.Name, a.Image, a.Description, a.Cost,
				a.RecommendedTime, a.LocationLink, a.Rating, a.MustTryFood, a.Category, a.TravelLeg)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert activities of day %d: %w", i+1, err)
		}
	}

	return tx.Commit(ctx)
}

// Get loads a saved itinerary with its days and activities in order.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (SavedItinerary, error) {
	saved := SavedItinerary{ID: id}
	req := &saved.Request
	summary := &saved.Itinerary.Summary

	err := s.db.QueryRow(ctx, `
		SELECT city, hotel, arrival_at, departure_at, price_range,
			total_activities_cost, total_travel_cost, created_at
		FROM itineraries WHERE id = $1
	`, id).Scan(&req.City, &req.Hotel, &req.ArrivalDateTime, &req.DepartureDateTime, &req.PriceRange,
		&summary.TotalActivitiesCost, &summary.TotalTravelCost, &saved.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return SavedItinerary{}, ErrNotFound
	}
	if err != nil {
		return SavedItinerary{}, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT d.day_number, d.date_label,
			a.name, a.image, a.description, a.cost, a.recommended_time, a.location_link,
			a.rating, a.must_try_food, a.category, a.travel_leg
		FROM itinerary_days d
		JOIN activities a ON a.day_id = d.id
		WHERE d.itinerary_id = $1
		ORDER BY d.day_number, a.activity_order
	`, id)
	if err != nil {
		return SavedItinerary{}, err
	}
	defer rows.Close()

	lastDay := 0
	for rows.Next() {
		var (
			dayNumber int
			date      string
			a         types.Activity
		)
		if err := rows.Scan(&dayNumber, &date,
			&a.Name, &a.Image, &a.Description, &a.Cost, &a.RecommendedTime, &a.LocationLink,
			&a.Rating, &a.MustTryFood, &a.Category, &a.TravelLeg); err != nil {
			return SavedItinerary{}, err
		}
		if dayNumber != lastDay {
			saved.Itinerary.Days = append(saved.Itinerary.Days, types.DayItinerary{Date: date})
			lastDay = dayNumber
		}
		last := &saved.Itinerary.Days[len(saved.Itinerary.Days)-1]
		last.Activities = append(last.Activities, a)
	}
	if err := rows.Err(); err != nil {
		return SavedItinerary{}, err
	}
	return saved, nil
}
