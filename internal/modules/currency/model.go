// README: Supported currency table, marker resolution and city -> currency hints.
package currency

import (
	"strings"

	"github.com/paramartha-n/travel-planner-v26/internal/types"
)

// supported lists every currency a Cost may carry, in marker-resolution
// priority order (JPY wins an ambiguous "¥" over CNY).
// Rates are static reference rates per 1 EUR, only used when neither a fetched
// table nor a declared rate knows the currency.
var supported = []types.Currency{
	{Code: "EUR", Symbol: "€", RateToBase: 1},
	{Code: "USD", Symbol: "$", RateToBase: 1.08},
	{Code: "GBP", Symbol: "£", RateToBase: 0.85},
	{Code: "JPY", Symbol: "¥", RateToBase: 161.29},
	{Code: "CHF", Symbol: "CHF", RateToBase: 0.95},
	{Code: "AUD", Symbol: "A$", RateToBase: 1.65},
	{Code: "CAD", Symbol: "C$", RateToBase: 1.47},
	{Code: "CNY", Symbol: "¥", RateToBase: 7.8},
	{Code: "HKD", Symbol: "HK$", RateToBase: 8.45},
	{Code: "SGD", Symbol: "S$", RateToBase: 1.45},
	{Code: "THB", Symbol: "฿", RateToBase: 39.5},
}

// Base returns the reference currency (rate 1).
func Base() types.Currency {
	return supported[0]
}

// Supported returns a copy of the supported currency table.
func Supported() []types.Currency {
	out := make([]types.Currency, len(supported))
	copy(out, supported)
	return out
}

// Lookup finds a supported currency by ISO code, case-insensitively.
func Lookup(code string) (types.Currency, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range supported {
		if c.Code == code {
			return c, true
		}
	}
	return types.Currency{}, false
}

// LookupOrBase is Lookup with the base currency for unknown codes.
func LookupOrBase(code string) types.Currency {
	if c, ok := Lookup(code); ok {
		return c
	}
	return Base()
}

// ByMarker resolves the text in front of an amount ("€", "CHF", "approx. HK$")
// to a currency. The longest code or symbol that ends the marker wins; the
// fallback currency wins ties and is returned when nothing matches.
func ByMarker(marker string, fallback types.Currency) types.Currency {
	m := strings.ToUpper(strings.TrimSpace(marker))
	if m == "" {
		return fallback
	}
	best, bestLen := fallback, markerMatchLen(m, fallback)
	for _, c := range supported {
		if l := markerMatchLen(m, c); l > bestLen {
			best, bestLen = c, l
		}
	}
	return best
}

func markerMatchLen(marker string, c types.Currency) int {
	n := 0
	for _, token := range []string{c.Code, c.Symbol} {
		token = strings.ToUpper(token)
		if token != "" && strings.HasSuffix(marker, token) && len(token) > n {
			n = len(token)
		}
	}
	return n
}

var cityToCurrency = []struct {
	city string
	code string
}{
	{"Paris", "EUR"}, {"London", "GBP"}, {"Rome", "EUR"}, {"Madrid", "EUR"},
	{"Berlin", "EUR"}, {"Amsterdam", "EUR"}, {"Zurich", "CHF"}, {"Geneva", "CHF"},
	{"Tokyo", "JPY"}, {"Kyoto", "JPY"}, {"Hong Kong", "HKD"}, {"Singapore", "SGD"},
	{"Bangkok", "THB"}, {"Shanghai", "CNY"}, {"Beijing", "CNY"},
	{"New York", "USD"}, {"Los Angeles", "USD"}, {"Chicago", "USD"},
	{"Toronto", "CAD"}, {"Vancouver", "CAD"},
	{"Sydney", "AUD"}, {"Melbourne", "AUD"},
}

// DetectLocal guesses the local currency code of a city, defaulting to the base currency.
func DetectLocal(city string) string {
	clean := strings.ToLower(city)
	for _, word := range []string{"city", "town", "village", "municipality"} {
		if i := strings.Index(clean, word); i >= 0 {
			clean = clean[:i] + clean[i+len(word):]
			break
		}
	}
	clean = strings.TrimSpace(clean)

	for _, entry := range cityToCurrency {
		if strings.ToLower(entry.city) == clean {
			return entry.code
		}
	}
	for _, entry := range cityToCurrency {
		if strings.Contains(clean, strings.ToLower(entry.city)) {
			return entry.code
		}
	}
	return types.BaseCurrencyCode
}
