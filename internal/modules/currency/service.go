// README: Currency conversion and aggregation routed through the base currency.
package currency

import (
	"context"
	"math"

	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

// Converter converts amounts with the cached rate table, falling back to each
// currency's own rate when the table does not know it.
type Converter struct {
	rates *RateCache
}

// NewConverter accepts a nil cache, in which case only static or declared rates are used.
func NewConverter(rates *RateCache) *Converter {
	return &Converter{rates: rates}
}

// Convert returns amount expressed in to, rounded to 2 decimals.
func (c *Converter) Convert(ctx context.Context, amount float64, from, to types.Currency) float64 {
	if amount == 0 || from.Code == to.Code {
		return amount
	}
	table := c.rates.Rates(ctx)
	return round2(amount / rateOf(table, from) * rateOf(table, to))
}

// Sum converts every cost to the base currency, adds them up and converts the
// total once into target.
func (c *Converter) Sum(ctx context.Context, costs []types.Cost, target types.Currency) types.Cost {
	base := Base()
	var total float64
	for _, cost := range costs {
		if cost.Currency.Code == "" {
			continue
		}
		total += c.Convert(ctx, cost.Amount, cost.Currency, base)
	}
	return types.NewCost(round2(c.Convert(ctx, total, base, target)), target)
}

func rateOf(table map[string]float64, cur types.Currency) float64 {
	if r, ok := table[cur.Code]; ok && r > 0 {
		return r
	}
	if cur.RateToBase > 0 {
		return cur.RateToBase
	}
	if known, ok := Lookup(cur.Code); ok {
		return known.RateToBase
	}
	return 1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
