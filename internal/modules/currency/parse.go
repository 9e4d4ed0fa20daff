// README: Text extraction for the currency declaration line and cost strings.
package currency

import (
	"regexp"
	"strconv"
	"strings"

	xcurrency "golang.org/x/text/currency"

	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

// LOCAL_CURRENCY: CODE (SYMBOL) RATE
var declarationPattern = regexp.MustCompile(`LOCAL_CURRENCY:\s*(\w+)\s*\((.+?)\)\s*([\d.]+)`)

// A leading non-digit marker followed by a digit run with optional thousands
// separators and decimal part.
var costAmountPattern = regexp.MustCompile(`^([^\d]*)(\d+(?:,\d+)*(?:\.\d+)?)`)

// ParseDeclaration reads the LOCAL_CURRENCY line of a model response. The
// declared symbol and rate override the table values; non-ISO codes and codes
// outside the supported set resolve to the base currency.
func ParseDeclaration(text string) (types.Currency, bool) {
	m := declarationPattern.FindStringSubmatch(text)
	if m == nil {
		return types.Currency{}, false
	}

	unit, err := xcurrency.ParseISO(strings.ToUpper(m[1]))
	if err != nil {
		return Base(), true
	}
	c := LookupOrBase(unit.String())
	if c.Code != unit.String() {
		return c, true
	}
	if symbol := strings.TrimSpace(m[2]); symbol != "" {
		c.Symbol = symbol
	}
	if rate, err := strconv.ParseFloat(m[3], 64); err == nil && rate > 0 {
		c.RateToBase = rate
	}
	return c, true
}

// ParseCost normalises a free-text cost. Empty, "free" and "n/a" are zero in
// the fallback currency; otherwise the marker in front of the first number
// selects the currency.
func ParseCost(raw string, fallback types.Currency) types.Cost {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "", "free", "n/a":
		return types.NewCost(0, fallback)
	}

	m := costAmountPattern.FindStringSubmatch(s)
	if m == nil {
		return types.NewCost(0, fallback)
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
	if err != nil {
		return types.NewCost(0, fallback)
	}
	return types.NewCost(amount, ByMarker(m[1], fallback))
}
