// README: Turns a model response into a TravelItinerary, degrading to Default on structural failure.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/paramartha-n/travel-planner-v26/internal/modules/currency"
	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

var (
	ErrNoCurrency = errors.New("response has no LOCAL_CURRENCY declaration")
	ErrNoDays     = errors.New("response has no day sections")
)

// ParseDegradation reports one item that could not become an Activity.
// It is logged and the item is left out; it never reaches the caller.
type ParseDegradation struct {
	Day  int
	Item int
	Err  error
}

func (e *ParseDegradation) Error() string {
	return fmt.Sprintf("day %d item %d: %v", e.Day+1, e.Item, e.Err)
}

func (e *ParseDegradation) Unwrap() error { return e.Err }

// Parser assembles itineraries from model responses.
type Parser struct {
	builder *ActivityBuilder
	conv    *currency.Converter
	logger  *slog.Logger
}

// NewParser wires a parser. places may be nil (no lookups); a nil converter
// only uses static and declared rates.
func NewParser(places PlaceLookup, conv *currency.Converter, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if conv == nil {
		conv = currency.NewConverter(nil)
	}
	return &Parser{
		builder: NewActivityBuilder(places, logger),
		conv:    conv,
		logger:  logger,
	}
}

// assembly carries the running state of one Parse call.
type assembly struct {
	req           types.TravelRequest
	hotel         *SelectedHotel
	local         types.Currency
	totalDays     int
	activityCosts []types.Cost
	travelCosts   []types.Cost
}

// Parse never fails: a response it cannot read yields Default(req, ...).
func (p *Parser) Parse(ctx context.Context, text string, req types.TravelRequest) (itin types.TravelItinerary) {
	st := &assembly{req: req, totalDays: req.TotalDays()}
	stage := "init"

	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("structural fallback after panic", "stage", stage, "panic", r)
			itin = Default(st.req, st.hotel)
		}
	}()

	if req.PriceRange != "" {
		if hotel, ok := matchSelectedHotel(text); ok {
			st.hotel = &hotel
			st.req.Hotel = hotel.Name
		}
	}

	local, ok := currency.ParseDeclaration(text)
	if !ok {
		p.logger.Warn("structural fallback", "stage", stage, "error", ErrNoCurrency)
		return Default(st.req, st.hotel)
	}
	st.local = local
	stage = "currency_resolved"

	blocks := SegmentDays(text)
	if len(blocks) == 0 {
		p.logger.Warn("structural fallback", "stage", stage, "error", ErrNoDays)
		return Default(st.req, st.hotel)
	}
	stage = "days_segmented"

	days := make([]types.DayItinerary, 0, len(blocks))
	for _, block := range blocks {
		stage = fmt.Sprintf("day_%d", block.Index+1)
		day := p.assembleDay(ctx, st, block)
		if len(day.Activities) == 0 {
			continue
		}
		days = append(days, day)
	}
	stage = "aggregated"

	sortDays(days)
	return types.TravelItinerary{
		Days: days,
		Summary: types.Summary{
			TotalActivitiesCost: p.conv.Sum(ctx, st.activityCosts, st.local),
			TotalTravelCost:     p.conv.Sum(ctx, st.travelCosts, st.local),
		},
	}
}

// assembleDay adds the bookends of the first and last day and builds the
// remaining items in order. On the first day the two leading items are taken
// to be the arrival and check-in the model was asked to write, and on the last
// day the final item the departure; they are skipped in favour of the
// synthetic bookends.
func (p *Parser) assembleDay(ctx context.Context, st *assembly, block DayBlock) types.DayItinerary {
	var activities []types.Activity
	isFirstDay := block.Index == 0
	isLastDay := block.Index == st.totalDays-1

	if isFirstDay {
		arrival := arrivalActivity(st.req)
		activities = append(activities, arrival, hotelCheckInActivity(st.req, selectedPrice(st.hotel)))
		st.addTravel(arrival.TravelLeg.Cost)
	}

	for i, item := range block.Items {
		if isFirstDay && i < 2 {
			continue
		}
		if isLastDay && i == len(block.Items)-1 {
			continue
		}

		act, err := p.buildItem(ctx, st, item, activities, i == 0 && !isFirstDay)
		if err != nil {
			p.logger.Warn("skipping item", "day", block.Index+1, "item", i, "error", &ParseDegradation{Day: block.Index, Item: i, Err: err})
			continue
		}
		activities = append(activities, act)
		st.addActivity(act.Cost)
		st.addTravel(act.TravelLeg.Cost)
	}

	if isLastDay {
		departure := departureActivity(st.req)
		activities = append(activities, departure)
		st.addTravel(departure.TravelLeg.Cost)
	}

	return types.DayItinerary{
		Date:       types.FormatDayDate(st.req.ArrivalDateTime.AddDate(0, 0, block.Index)),
		Activities: activities,
	}
}

// buildItem isolates one item: a panic while building it becomes an error.
func (p *Parser) buildItem(ctx context.Context, st *assembly, item string, prior []types.Activity, firstOfDay bool) (act types.Activity, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while building activity: %v", r)
		}
	}()
	return p.builder.Build(ctx, ExtractFields(item), st.req, prior, firstOfDay, st.local)
}

func (st *assembly) addActivity(c types.Cost) {
	if !c.IsFree() {
		st.activityCosts = append(st.activityCosts, c)
	}
}

func (st *assembly) addTravel(c types.Cost) {
	if !c.IsFree() {
		st.travelCosts = append(st.travelCosts, c)
	}
}

// sortDays orders days by calendar date; unparseable dates keep their place.
func sortDays(days []types.DayItinerary) {
	slices.SortStableFunc(days, func(a, b types.DayItinerary) int {
		ta, errA := types.ParseDayDate(a.Date)
		tb, errB := types.ParseDayDate(b.Date)
		if errA != nil || errB != nil {
			return 0
		}
		return ta.Compare(tb)
	})
}
