package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

var printer = message.NewPrinter(language.English)

// Format renders a cost for display. It never converts.
func Format(cost types.Cost) string {
	if cost.Amount == 0 {
		return "Free"
	}
	return cost.Currency.Symbol + printer.Sprintf("%v", number.Decimal(cost.Amount, number.MaxFractionDigits(2)))
}
