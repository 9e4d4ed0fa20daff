// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/paramartha-n/travel-planner-v26/internal/ai"
	"github.com/paramartha-n/travel-planner-v26/internal/config"
	httptransport "github.com/paramartha-n/travel-planner-v26/internal/http"
	"github.com/paramartha-n/travel-planner-v26/internal/http/handlers"
	"github.com/paramartha-n/travel-planner-v26/internal/infra"
	"github.com/paramartha-n/travel-planner-v26/internal/maps"
	"github.com/paramartha-n/travel-planner-v26/internal/modules/currency"
	"github.com/paramartha-n/travel-planner-v26/internal/modules/itinerary"
	"github.com/paramartha-n/travel-planner-v26/internal/modules/trips"
	"github.com/paramartha-n/travel-planner-v26/internal/service"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rateSource currency.RateSource = currency.NewExchangeRateAPI(cfg.Rates.APIKey, cfg.Rates.BaseURL)
	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			logger.Warn("redis unavailable, rates fetched per process", "error", err)
		} else {
			defer redisClient.Close()
			rateSource = currency.NewRedisRateSource(redisClient, rateSource, cfg.Rates.TTL, logger)
		}
	}
	rates := currency.NewRateCache(rateSource, cfg.Rates.TTL, nil, logger)

	var places *maps.PlacesService
	if cfg.Maps.APIKey != "" {
		places, err = maps.NewPlacesService(cfg.Maps.APIKey, logger)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
	} else {
		logger.Warn("GOOGLE_MAPS_API_KEY not set, activities use default images and search links")
	}

	parser := itinerary.NewParser(places, currency.NewConverter(rates), logger)

	provider, err := newProvider(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("ai init: %v", err)
	}
	defer provider.Close()

	planner := service.NewTripPlanner(provider, parser, cfg.AI.Timeout, logger)

	var store handlers.TripStore
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		store = trips.NewService(trips.NewStore(dbPool), logger)
	} else {
		logger.Warn("db dsn not set, itinerary persistence disabled")
	}

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Planner: planner,
		Trips:   store,
		Logger:  logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	logger.Info("listening", "addr", cfg.HTTP.Addr, "provider", cfg.AI.Provider)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func newProvider(ctx context.Context, cfg config.AIConfig) (ai.LLMProvider, error) {
	switch cfg.Provider {
	case "openai":
		return ai.NewOpenAIProvider(cfg.OpenAIKey, cfg.Model), nil
	default:
		return ai.NewGeminiProvider(ctx, cfg.GeminiKey, cfg.Model)
	}
}
