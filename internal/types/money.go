// README: Common money value objects shared by the parser, currency module and persistence.
package types

// BaseCurrencyCode is the reference currency every conversion is routed through.
const BaseCurrencyCode = "EUR"

// Currency describes one supported currency. RateToBase is the number of units
// of this currency per one unit of the base currency.
type Currency struct {
	Code       string  `json:"code"`
	Symbol     string  `json:"symbol"`
	RateToBase float64 `json:"rate"`
}

// Cost is a non-negative amount in a currency. A zero amount means free.
type Cost struct {
	Amount   float64  `json:"amount"`
	Currency Currency `json:"currency"`
}

func NewCost(amount float64, c Currency) Cost {
	if amount < 0 {
		amount = 0
	}
	return Cost{Amount: amount, Currency: c}
}

func (c Cost) IsFree() bool {
	return c.Amount == 0
}
