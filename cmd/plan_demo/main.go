// README: Demo runner; plans one trip (or parses a saved model response offline) and prints it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/paramartha-n/travel-planner-v26/internal/ai"
	"github.com/paramartha-n/travel-planner-v26/internal/config"
	"github.com/paramartha-n/travel-planner-v26/internal/modules/currency"
	"github.com/paramartha-n/travel-planner-v26/internal/modules/itinerary"
	"github.com/paramartha-n/travel-planner-v26/internal/service"
	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

func main() {
	city := flag.String("city", "Paris", "destination city")
	hotel := flag.String("hotel", "", "hotel name (empty with -price asks for a recommendation)")
	arrive := flag.String("arrive", time.Now().Add(24*time.Hour).Format("2006-01-02T15:04"), "arrival, 2006-01-02T15:04")
	days := flag.Int("days", 3, "trip length in days")
	price := flag.String("price", "", "hotel price range: budget, mid, luxury")
	response := flag.String("response", "", "parse this saved model response instead of calling the model")
	display := flag.String("display", "", "also show totals in this currency code")
	flag.Parse()

	_ = godotenv.Load()

	arrival, err := time.Parse("2006-01-02T15:04", *arrive)
	if err != nil {
		log.Fatalf("arrive: %v", err)
	}
	req := types.TravelRequest{
		City:              *city,
		Hotel:             *hotel,
		ArrivalDateTime:   arrival,
		DepartureDateTime: arrival.Add(time.Duration(*days) * 24 * time.Hour),
		PriceRange:        *price,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conv := currency.NewConverter(nil)
	parser := itinerary.NewParser(nil, conv, nil)

	var itin types.TravelItinerary
	if *response != "" {
		text, err := os.ReadFile(*response)
		if err != nil {
			log.Fatalf("read response: %v", err)
		}
		if req.Hotel == "" {
			req.Hotel = "Hotel in " + req.City
		}
		itin = parser.Parse(ctx, string(text), req)
	} else {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal(err)
		}
		provider, err := newProvider(ctx, cfg.AI)
		if err != nil {
			log.Fatalf("Failed to initialize AI provider: %v", err)
		}
		defer provider.Close()

		planner := service.NewTripPlanner(provider, parser, cfg.AI.Timeout, nil)
		itin, err = planner.PlanTrip(ctx, req)
		if err != nil {
			log.Fatalf("plan: %v", err)
		}
	}

	for _, day := range itin.Days {
		fmt.Printf("\n== %s ==\n", day.Date)
		for _, a := range day.Activities {
			fmt.Printf("- %s (%s)", a.Name, currency.Format(a.Cost))
			if a.Rating != "" {
				fmt.Printf(" ★%s", a.Rating)
			}
			fmt.Println()
			if a.TravelLeg.Time != "" {
				fmt.Printf("    travel: %s, %s\n", a.TravelLeg.Time, currency.Format(a.TravelLeg.Cost))
			}
		}
	}

	fmt.Println("\n== Summary ==")
	fmt.Printf("Activities: %s\n", currency.Format(itin.Summary.TotalActivitiesCost))
	fmt.Printf("Travel:     %s\n", currency.Format(itin.Summary.TotalTravelCost))

	if target, ok := currency.Lookup(*display); ok {
		acts := conv.Convert(ctx, itin.Summary.TotalActivitiesCost.Amount, itin.Summary.TotalActivitiesCost.Currency, target)
		travel := conv.Convert(ctx, itin.Summary.TotalTravelCost.Amount, itin.Summary.TotalTravelCost.Currency, target)
		all := conv.Sum(ctx, []types.Cost{itin.Summary.TotalActivitiesCost, itin.Summary.TotalTravelCost}, target)
		fmt.Printf("In %s: activities %s, travel %s, total %s\n", target.Code,
			currency.Format(types.NewCost(acts, target)), currency.Format(types.NewCost(travel, target)), currency.Format(all))
	}
}

func newProvider(ctx context.Context, cfg config.AIConfig) (ai.LLMProvider, error) {
	if cfg.Provider == "openai" {
		return ai.NewOpenAIProvider(cfg.OpenAIKey, cfg.Model), nil
	}
	return ai.NewGeminiProvider(ctx, cfg.GeminiKey, cfg.Model)
}
