package trips

import (
	"fmt"
	"strings"

	ics "github.com/arran4/golang-ical"

	"github.com/paramartha-n/travel-planner-v26/internal/modules/currency"
	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

const calendarProductID = "-//travel-planner//itinerary//EN"

// BuildCalendar emits one all-day event per day listing its activities.
// Days whose date label cannot be parsed are left out.
func BuildCalendar(saved SavedItinerary) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)

	for i, day := range saved.Itinerary.Days {
		date, err := types.ParseDayDate(day.Date)
		if err != nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s-day-%d@travel-planner", saved.ID, i+1))
		event.SetDtStampTime(saved.CreatedAt)
		event.SetSummary(fmt.Sprintf("%s day %d", saved.Request.City, i+1))
		event.SetLocation(saved.Request.City)
		event.SetAllDayStartAt(date)
		event.SetAllDayEndAt(date.AddDate(0, 0, 1))
		event.SetDescription(dayDescription(day))
	}

	return cal.Serialize()
}

func dayDescription(day types.DayItinerary) string {
	lines := make([]string, 0, len(day.Activities))
	for _, a := range day.Activities {
		line := fmt.Sprintf("%s (%s)", a.Name, currency.Format(a.Cost))
		if a.RecommendedTime != "" {
			line += ", " + a.RecommendedTime
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
