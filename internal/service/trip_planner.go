package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/paramartha-n/travel-planner-v26/internal/ai"
	"github.com/paramartha-n/travel-planner-v26/internal/modules/itinerary"
	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

// DefaultLLMTimeout bounds one language-model call.
const DefaultLLMTimeout = 30 * time.Second

// ItineraryParser turns model text into an itinerary. It never fails.
type ItineraryParser interface {
	Parse(ctx context.Context, text string, req types.TravelRequest) types.TravelItinerary
}

// TripPlanner orchestrates the prompt, the model call and the response parser.
type TripPlanner struct {
	llm     ai.LLMProvider
	parser  ItineraryParser
	timeout time.Duration
	logger  *slog.Logger
}

// NewTripPlanner creates a TripPlanner with initialized dependencies.
func NewTripPlanner(llm ai.LLMProvider, parser ItineraryParser, timeout time.Duration, logger *slog.Logger) *TripPlanner {
	if timeout <= 0 {
		timeout = DefaultLLMTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TripPlanner{llm: llm, parser: parser, timeout: timeout, logger: logger}
}

// PlanTrip validates req, asks the model for an itinerary and parses it.
// Only *ValidationError and *ai.UpstreamError are returned.
func (p *TripPlanner) PlanTrip(ctx context.Context, req types.TravelRequest) (types.TravelItinerary, error) {
	if err := ValidateRequest(req); err != nil {
		return types.TravelItinerary{}, err
	}
	req = normalizeRequest(req)

	text, err := p.generate(ctx, ai.ItineraryPrompt(req))
	if err != nil {
		p.logger.Error("itinerary generation failed", "city", req.City, "days", req.TotalDays(), "error", err)
		return types.TravelItinerary{}, err
	}

	itin := p.parser.Parse(ctx, text, req)
	p.logger.Info("itinerary planned", "city", req.City, "days", len(itin.Days))
	return itin, nil
}

// RecommendHotel asks the model for one hotel. Any failure yields "Hotel in <city>".
func (p *TripPlanner) RecommendHotel(ctx context.Context, search types.HotelSearch) (string, error) {
	if strings.TrimSpace(search.City) == "" {
		return "", &ValidationError{Field: "city", Message: "City is required."}
	}
	fallback := fallbackHotel(search.City)

	text, err := p.generate(ctx, ai.HotelPrompt(search))
	if err != nil {
		p.logger.Warn("hotel recommendation failed, using placeholder", "city", search.City, "error", err)
		return fallback, nil
	}
	if name, ok := itinerary.ExtractHotelName(text); ok {
		return name, nil
	}
	if line := firstLine(text); line != "" {
		return line, nil
	}
	return fallback, nil
}

type generation struct {
	text string
	err  error
}

// generate races the model call against the timeout. The first result wins;
// a call that loses keeps running and its result is dropped.
func (p *TripPlanner) generate(ctx context.Context, prompt string) (string, error) {
	done := make(chan generation, 1)
	go func() {
		text, err := p.llm.GenerateText(ctx, prompt)
		done <- generation{text: text, err: err}
	}()

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		if res.err != nil {
			return "", ai.Classify("llm", res.err)
		}
		if strings.TrimSpace(res.text) == "" {
			return "", ai.NewUpstreamError("llm", ai.KindUnavailable, errors.New("empty model response"))
		}
		return res.text, nil
	case <-timer.C:
		return "", ai.NewUpstreamError("llm", ai.KindTimeout, fmt.Errorf("no response within %s", p.timeout))
	case <-ctx.Done():
		return "", ai.Classify("llm", ctx.Err())
	}
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
